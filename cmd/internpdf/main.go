// Command internpdf renders internship contracts and change histories.
//
//	internpdf contract -id 42 -out contract.pdf
//	internpdf history -id 42
//	internpdf contract -id 42 -bundle records.json -root /srv/intern
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/zeptools/gw-intern/conf"
	"github.com/zeptools/gw-intern/contract"
	"github.com/zeptools/gw-intern/contractcache"
	"github.com/zeptools/gw-intern/db/kvdb"
	"github.com/zeptools/gw-intern/history"
	"github.com/zeptools/gw-intern/records"
)

const usage = `usage: internpdf <contract|history> -id N [flags]`

var errUsage = errors.New(usage)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		log.Fatalf("[ERROR] %v", err)
	}
}

type options struct {
	root    string
	dbName  string
	bundle  string
	noCache bool
	id      int64
	out     string
}

func parse(args []string) (string, options, error) {
	var o options
	if len(args) == 0 {
		return "", o, errUsage
	}
	cmd := args[0]
	if cmd != "contract" && cmd != "history" {
		return "", o, fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&o.root, "root", ".", "app root holding config/")
	fs.StringVar(&o.dbName, "db", "main", "SQL database name in config/.sql-databases.json")
	fs.StringVar(&o.bundle, "bundle", "", "JSON bundle to read records from instead of SQL")
	fs.BoolVar(&o.noCache, "no-cache", false, "always render, skip the key-value cache")
	fs.Int64Var(&o.id, "id", 0, "internship ID")
	fs.StringVar(&o.out, "out", "", "output file (stdout if empty)")
	if err := fs.Parse(args[1:]); err != nil {
		return "", o, fmt.Errorf("%w: %v", errUsage, err)
	}
	if o.id <= 0 {
		return "", o, fmt.Errorf("%w: -id is required", errUsage)
	}
	return cmd, o, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cmd, o, err := parse(args)
	if err != nil {
		return err
	}
	rootCtx, rootCancel := context.WithCancel(ctx)
	defer rootCancel()

	core := &conf.Core{}
	if err = core.BaseInit(o.root, rootCtx, rootCancel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer core.ResourceCleanUp()

	src, err := openSource(core, o)
	if err != nil {
		return err
	}
	switch cmd {
	case "contract":
		return runContract(core, src, o, stdout)
	default:
		return runHistory(core, src, o, stdout)
	}
}

func openSource(core *conf.Core, o options) (records.Source, error) {
	if o.bundle != "" {
		return records.LoadFileSource(o.bundle)
	}
	if err := core.PrepareSQLDatabases(); err != nil {
		return nil, fmt.Errorf("sql databases: %w", err)
	}
	return core.SQLRecordSource(o.dbName)
}

func openCache(core *conf.Core, o options) *contractcache.Cache {
	var kv kvdb.Client
	if !o.noCache && core.HasKVDBConf() {
		if err := core.PrepareKVDatabase(); err != nil {
			log.Printf("[WARN][CACHE] disabled: %v", err)
		} else {
			kv = core.BackendKVDBClient
		}
	}
	return contractcache.New(kv, core.KVDBConf.Prefix, core.CacheTTL())
}

func runContract(core *conf.Core, src records.Source, o options, stdout io.Writer) error {
	tpl, err := contract.LoadTemplate(core.ContractTemplatePath())
	if err != nil {
		return err
	}
	in, err := records.LoadContractInput(core.RootCtx, src, o.id)
	if err != nil {
		return err
	}
	opts := core.ContractOptions()
	if core.DebugOpts.LogPlacements {
		for _, p := range contract.Plan(in, opts) {
			log.Printf("[DEBUG][CONTRACT] page %d %-18s (%g, %g) %q", p.Page, p.Field, p.Slot.X, p.Slot.Y, p.Text)
		}
	}
	pdf, err := openCache(core, o).Document(core.RootCtx, tpl, in, opts)
	if err != nil {
		return err
	}
	if o.out == "" {
		_, err = stdout.Write(pdf)
		return err
	}
	if err = os.WriteFile(o.out, pdf, 0o644); err != nil {
		return err
	}
	log.Printf("[INFO] contract of internship %d written to %s (%d bytes)", o.id, o.out, len(pdf))
	return nil
}

func runHistory(core *conf.Core, src records.Source, o options, stdout io.Writer) error {
	if _, err := src.Internship(core.RootCtx, o.id); err != nil {
		return err
	}
	changes, err := src.Changes(core.RootCtx, o.id)
	if err != nil {
		return err
	}
	r, err := history.NewRenderer()
	if err != nil {
		return err
	}
	text, err := r.Render(changes, time.Now())
	if err != nil {
		return err
	}
	if text == "" {
		log.Printf("[INFO] no changes recorded for internship %d", o.id)
		return nil
	}
	if o.out != "" {
		return os.WriteFile(o.out, []byte(text), 0o644)
	}
	_, err = io.WriteString(stdout, text)
	return err
}
