package conf

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/zeptools/gw-intern/contract"
	"github.com/zeptools/gw-intern/db"
	"github.com/zeptools/gw-intern/db/kvdb"
	"github.com/zeptools/gw-intern/db/kvdb/impls/redis"
	"github.com/zeptools/gw-intern/db/sqldb"
	"github.com/zeptools/gw-intern/db/sqldb/impls/mysql"
	"github.com/zeptools/gw-intern/db/sqldb/impls/pgsql"
	"github.com/zeptools/gw-intern/records"
)

// DefaultTemplatePath, relative to the app root
const DefaultTemplatePath = "pdf/AppStateInternshipContractNew.pdf"

// Core - common config
type Core struct {
	AppName             string                     `json:"app_name"`
	TemplatePath        string                     `json:"template_path"`     // contract template, absolute or relative to AppRoot
	EmailDomain         string                     `json:"email_domain"`      // appended to student and faculty usernames
	CacheTTLSeconds     int                        `json:"cache_ttl_seconds"` // rendered contract cache. 0 = default
	DebugOpts           DebugOpts                  `json:"debug_opts"`        // Debug Options
	AppRoot             string                     `json:"-"`                 // given to BaseInit
	RootCtx             context.Context            `json:"-"`                 // Global Context with RootCancel
	RootCancel          context.CancelFunc         `json:"-"`                 // CancelFunc for RootCtx
	KVDBConf            kvdb.Conf                  `json:"-"`                 // loadKVDBConf
	BackendKVDBClient   kvdb.Client                `json:"-"`                 // prepareKVDBClient
	SQLDBConfs          map[string]*sqldb.Conf     `json:"-"`                 // loadSQLDBConfs
	BackendSQLDBClients map[string]sqldb.Client    `json:"-"`                 // prepareSQLDBClients
	RawStores           map[string]*sqldb.RawStore `json:"-"`                 // per db type, PrepareSQLDatabases
}

type DebugOpts struct {
	LogPlacements bool `json:"log_placements"` // log every drawn field
}

// BaseInit - 1st step for initialization
// 1. set AppRoot
// 2. load config/.core.json file
// 3. Start ShutdownSignalListener
func (c *Core) BaseInit(appRoot string, rootCtx context.Context, rootCancel context.CancelFunc) error {
	c.AppRoot = appRoot
	envBytes, err := os.ReadFile(c.confPath(".core.json"))
	if err != nil {
		return err
	}
	if err = json.Unmarshal(envBytes, c); err != nil {
		return fmt.Errorf(".core.json: %w", err)
	}
	if c.TemplatePath == "" {
		c.TemplatePath = DefaultTemplatePath
	}
	if c.EmailDomain == "" {
		c.EmailDomain = contract.DefaultEmailDomain
	}
	c.RootCtx = rootCtx
	c.RootCancel = rootCancel
	c.startShutdownSignalListener()
	return nil
}

func (c *Core) confPath(name string) string {
	return filepath.Join(c.AppRoot, "config", name)
}

var once sync.Once

func (c *Core) startShutdownSignalListener() {
	once.Do(func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigs
			log.Printf("[INFO] got signal [%s]. shutting down app [%s] ...", sig, c.AppName)
			c.RootCancel() // every blocking call holds a child of RootCtx
		}()
	})
	log.Printf("[INFO][CORE] shutdown signal listener started")
}

// ContractTemplatePath resolves TemplatePath against AppRoot
func (c *Core) ContractTemplatePath() string {
	if filepath.IsAbs(c.TemplatePath) {
		return c.TemplatePath
	}
	return filepath.Join(c.AppRoot, c.TemplatePath)
}

func (c *Core) ContractOptions() contract.Options {
	opts := contract.DefaultOptions()
	opts.EmailDomain = c.EmailDomain
	opts.Creator = c.AppName
	return opts
}

func (c *Core) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// HasKVDBConf reports whether config/.kv-databases.json exists
func (c *Core) HasKVDBConf() bool {
	_, err := os.Stat(c.confPath(".kv-databases.json"))
	return err == nil
}

func (c *Core) PrepareKVDatabase() error {
	if err := c.loadKVDBConf(); err != nil {
		return err
	}
	return c.prepareKVDBClient()
}

func (c *Core) loadKVDBConf() error {
	confBytes, err := os.ReadFile(c.confPath(".kv-databases.json"))
	if err != nil {
		return err
	}
	if err = json.Unmarshal(confBytes, &c.KVDBConf); err != nil {
		return fmt.Errorf(".kv-databases.json: %w", err)
	}
	if c.KVDBConf.Prefix == "" {
		c.KVDBConf.Prefix = c.AppName + ":"
	}
	return nil
}

func (c *Core) prepareKVDBClient() error {
	redis.Register()
	client, err := kvdb.New(&c.KVDBConf)
	if err != nil {
		return err
	}
	if err = client.Init(); err != nil {
		return err
	}
	c.BackendKVDBClient = client
	return nil
}

func (c *Core) loadSQLDBConfs() error {
	confBytes, err := os.ReadFile(c.confPath(".sql-databases.json"))
	if err != nil {
		return err
	}
	c.SQLDBConfs = make(map[string]*sqldb.Conf)
	if err = json.Unmarshal(confBytes, &c.SQLDBConfs); err != nil {
		return fmt.Errorf(".sql-databases.json: %w", err)
	}
	return nil
}

// prepareSQLDBClients - Build & Init SQL DB Clients
// Use after loadSQLDBConfs
func (c *Core) prepareSQLDBClients() error {
	c.BackendSQLDBClients = make(map[string]sqldb.Client)

	// Registering Supported Implementations
	pgsql.Register()
	mysql.Register()

	for dbName, sqlDBConf := range c.SQLDBConfs {
		dbClient, err := sqldb.New(sqlDBConf)
		if err != nil {
			return fmt.Errorf("sql database %q: %w", dbName, err)
		}
		if err = dbClient.Init(); err != nil {
			return fmt.Errorf("sql database %q: %w", dbName, err)
		}
		c.BackendSQLDBClients[dbName] = dbClient
	}
	return nil
}

// PrepareSQLDatabases for SQL DB Clients & RawSQL Stores
func (c *Core) PrepareSQLDatabases() error {
	if err := c.loadSQLDBConfs(); err != nil {
		return err
	}
	if len(c.SQLDBConfs) == 0 {
		return nil
	}
	if err := c.prepareSQLDBClients(); err != nil {
		return err
	}
	return c.loadRawStores()
}

// loadRawStores fills one store per database type from sqldb.RawStoreRegistry
func (c *Core) loadRawStores() error {
	c.RawStores = make(map[string]*sqldb.RawStore)
	for _, client := range c.BackendSQLDBClients {
		dbType := client.GetConf().Type
		if _, ok := c.RawStores[dbType]; ok {
			continue
		}
		store := sqldb.NewRawStore()
		if err := sqldb.LoadRawStmtsToStore(store, sqldb.RawStoreRegistry, dbType, client.PlaceholderPrefix()); err != nil {
			return err
		}
		c.RawStores[dbType] = store
	}
	return nil
}

// SQLRecordSource reads records through the named SQL database
func (c *Core) SQLRecordSource(dbName string) (*records.SQLSource, error) {
	client, ok := c.BackendSQLDBClients[dbName]
	if !ok {
		return nil, fmt.Errorf("sql database %q not configured", dbName)
	}
	store, ok := c.RawStores[client.GetConf().Type]
	if !ok {
		return nil, errors.New("raw sql stores not loaded")
	}
	return records.NewSQLSource(client.GetHandle(), store)
}

func (c *Core) ResourceCleanUp() {
	log.Println("[INFO] App Resource Cleaning Up...")
	if c.BackendKVDBClient != nil {
		db.CloseClient("kv database", c.BackendKVDBClient)
	}
	for name, sqlDBClient := range c.BackendSQLDBClients {
		db.CloseClient(fmt.Sprintf("%s sql database %s", sqlDBClient.GetConf().Type, name), sqlDBClient)
	}
	log.Println("[INFO] App Resource Cleanup Complete")
}

// IsNotConfigured reports whether err comes from a missing config file
func IsNotConfigured(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
