package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/tuannm99/novatuple/internal"
	"github.com/tuannm99/novatuple/internal/catalog"
	"github.com/tuannm99/novatuple/internal/engine"
	"github.com/tuannm99/novatuple/internal/record"
)

const usage = `usage: tupledump [-config file] [-debug] <command> [args]

commands:
  tables                       list tables and their schemas
  schema <table>               print one table schema and its record size
  scan <table>                 print every record as TID<TAB>fields
  insert <table> <value>...    insert one record, values in column order
  dump <table> <page>          hex/ASCII dump of one page
`

var errUsage = errors.New("bad usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		slog.Error("tupledump failed", "err", err)
		os.Exit(1)
	}
}

// closeInto closes c and reports its error through errp unless an earlier
// error is already there.
func closeInto(c io.Closer, errp *error) {
	if cerr := c.Close(); cerr != nil {
		if *errp == nil {
			*errp = cerr
			return
		}
		slog.Error("close after failure", "err", cerr)
	}
}

func run(args []string, out io.Writer) (err error) {
	fs := flag.NewFlagSet("tupledump", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfgPath := fs.String("config", "novatuple.yaml", "path to the YAML config")
	debug := fs.Bool("debug", false, "enable debug logging")
	if perr := fs.Parse(args); perr != nil {
		return fmt.Errorf("%w: %v", errUsage, perr)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	rest := fs.Args()
	if len(rest) == 0 {
		return errUsage
	}

	cfg, err := internal.LoadConfig(*cfgPath)
	if err != nil {
		return err
	}
	cat, err := catalog.FromSpecs(cfg.Tables)
	if err != nil {
		return err
	}
	db := engine.NewDatabase(cfg.Storage.Workdir, cfg.Storage.PageSize, cat)
	defer closeInto(db, &err)

	switch cmd := rest[0]; cmd {
	case "tables":
		for _, name := range cat.Names() {
			s, _ := cat.SchemaOf(name)
			fmt.Fprintf(out, "%s\t%s\n", name, s)
		}
		return nil

	case "schema":
		if len(rest) != 2 {
			return errUsage
		}
		meta, err := cat.Table(rest[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n", meta.Schema)
		fmt.Fprintf(out, "columns: %d, record size: %d bytes\n", meta.Schema.Len(), meta.Schema.ByteSize())
		return nil

	case "scan":
		if len(rest) != 2 {
			return errUsage
		}
		tbl, err := db.OpenTable(rest[1])
		if err != nil {
			return err
		}
		return tbl.Scan(func(r *record.Record) error {
			loc, _ := r.Location()
			_, err := fmt.Fprintf(out, "%s\t%s\n", loc, r)
			return err
		})

	case "insert":
		if len(rest) < 2 {
			return errUsage
		}
		tbl, err := db.OpenTable(rest[1])
		if err != nil {
			return err
		}
		r, err := parseRecord(tbl.Schema, rest[2:])
		if err != nil {
			return err
		}
		tid, err := tbl.Insert(r)
		if err != nil {
			return err
		}
		slog.Info("inserted record", "table", rest[1], "tid", tid.String())
		fmt.Fprintf(out, "%s\n", tid)
		return nil

	case "dump":
		if len(rest) != 3 {
			return errUsage
		}
		pageID, err := strconv.ParseUint(rest[2], 10, 32)
		if err != nil {
			return fmt.Errorf("%w: page id %q", errUsage, rest[2])
		}
		tbl, err := db.OpenTable(rest[1])
		if err != nil {
			return err
		}
		p, err := tbl.ReadPage(uint32(pageID))
		if err != nil {
			return err
		}
		return p.Debug(out)

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func parseRecord(s *record.Schema, values []string) (*record.Record, error) {
	if len(values) != s.Len() {
		return nil, fmt.Errorf("%w: %d values for %d columns", errUsage, len(values), s.Len())
	}
	r := record.New(s)
	for i, v := range values {
		t, err := s.TypeAt(i)
		if err != nil {
			return nil, err
		}
		f, err := record.ParseField(t, v)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		if err := r.SetFieldChecked(i, f); err != nil {
			return nil, err
		}
	}
	return r, nil
}
