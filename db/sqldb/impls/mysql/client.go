package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql" // side-effect

	"github.com/zeptools/gw-intern/db/sqldb"
)

const DBType = "mysql"

const DefaultPlaceholderPrefix byte = '?'

const defaultMaxConns = 10

// Register adds the implementation to the factory registry
func Register() {
	sqldb.RegisterFactory(DBType, func(conf *sqldb.Conf) (sqldb.Client, error) {
		return &Client{Conf: conf}, nil
	})
}

type Client struct {
	Handle // [Embedded] for Promoted Methods
	Conf   *sqldb.Conf
	dsn    string
}

// Ensure mysql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

func (c *Client) Init() error {
	var err error
	if c.Conf.DSN != "" {
		c.dsn = c.Conf.DSN
	} else {
		c.dsn = DSN(c.Conf)
	}
	if c.DB, err = sql.Open("mysql", c.dsn); err != nil {
		return err
	}
	maxConns := defaultMaxConns
	if c.Conf.MaxConns > 0 {
		maxConns = c.Conf.MaxConns
	}
	c.DB.SetConnMaxLifetime(3 * time.Minute)
	c.DB.SetMaxOpenConns(maxConns)
	c.DB.SetMaxIdleConns(maxConns)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = c.Ping(ctx); err != nil {
		return fmt.Errorf("mysql ping failed: %w", err)
	}
	log.Println("[INFO] mysql client initialized")
	return nil
}

// DSN builds the go-sql-driver data source name from conf
func DSN(conf *sqldb.Conf) string {
	loc := conf.TZ
	if loc == "" {
		loc = "UTC"
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=%s&sql_mode=ANSI_QUOTES",
		conf.User,
		conf.PW,
		conf.Host,
		conf.Port,
		conf.DB,
		loc,
	)
}

func (c *Client) Ping(ctx context.Context) error {
	if c.DB == nil {
		return fmt.Errorf("mysql client not initialized")
	}
	return c.DB.PingContext(ctx)
}

func (c *Client) Close() error {
	if c.DB == nil {
		return nil
	}
	log.Println("[INFO] closing mysql client")
	if err := c.DB.Close(); err != nil {
		return err
	}
	log.Println("[INFO] mysql client closed")
	return nil
}

func (c *Client) GetHandle() sqldb.Handle {
	return &Handle{DB: c.DB}
}

func (c *Client) GetConf() *sqldb.Conf {
	return c.Conf
}

func (c *Client) GetDSN() string {
	return c.dsn
}

func (c *Client) PlaceholderPrefix() byte {
	return DefaultPlaceholderPrefix
}
