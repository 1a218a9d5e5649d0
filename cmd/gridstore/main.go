// Command gridstore loads records into a grid store and prints a page of it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/maruel/gridstore/internal/config"
	"github.com/maruel/gridstore/internal/grid"
	"github.com/maruel/gridstore/internal/records"
	"github.com/maruel/gridstore/internal/render"
)

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "gridstore: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	var filters, sorts listFlag
	configPath := flag.String("config", "", "Grid configuration file (.yaml, .toml or .json); columns are inferred from the data when empty")
	dataPath := flag.String("data", "", "Records file (.jsonl, .json or .csv)")
	flag.Var(&filters, "filter", "Filter as column:op:value, op one of eq, ne, contain, not_contain, start, end, gt, lt, gte, lte, empty, not_empty (repeatable)")
	flag.Var(&sorts, "sort", "Sort as column or column:desc (repeatable, later flags break ties)")
	page := flag.Int("page", 1, "Page to print")
	perPage := flag.Int("per-page", 0, "Rows per page; 0 keeps the configured paging")
	format := flag.String("format", "", "Output format (table, plain, json); defaults to table on a terminal")
	export := flag.String("export", "", "Also write the records of the printed page as JSONL to this file")
	watch := flag.Bool("watch", false, "Reprint whenever the data file changes")
	schema := flag.Bool("schema", false, "Print the JSON Schema of the configuration file and exit")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()
	if len(flag.Args()) > 0 {
		return fmt.Errorf("unknown arguments: %v", flag.Args())
	}

	if *schema {
		b, err := config.Schema()
		if err != nil {
			return err
		}
		_, err = fmt.Printf("%s\n", b)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()
	slog.SetDefault(initLogger(*logLevel))

	if *dataPath == "" {
		return errors.New("-data is required")
	}
	out := render.Table
	if *format != "" {
		f, err := render.ParseFormat(*format)
		if err != nil {
			return err
		}
		out = f
	} else if !isatty.IsTerminal(os.Stdout.Fd()) {
		out = render.Plain
	}
	v, err := parseView(filters, sorts, *page)
	if err != nil {
		return err
	}

	recs, err := records.Load(*dataPath)
	if err != nil {
		return err
	}
	opts, err := loadOptions(*configPath, recs)
	if err != nil {
		return err
	}
	if *perPage > 0 {
		po := grid.PageOptions{}
		if opts.PageOptions != nil {
			po = *opts.PageOptions
		}
		po.UseClient = true
		po.PerPage = *perPage
		opts.PageOptions = &po
	}
	opts.Logger = slog.Default()
	s, err := grid.New(recs, opts)
	if err != nil {
		return err
	}
	slog.DebugContext(ctx, "Loaded", "path", *dataPath, "rows", s.RowCount())
	v.apply(s)
	show := func() error {
		if err := render.Write(os.Stdout, s, out); err != nil {
			return err
		}
		if *export == "" {
			return nil
		}
		return exportPage(*export, s)
	}
	if err := show(); err != nil {
		return err
	}
	if !*watch {
		return nil
	}
	return watchFile(ctx, *dataPath, func() error {
		recs, err := records.Load(*dataPath)
		if err != nil {
			return err
		}
		s.ResetData(recs)
		v.apply(s)
		slog.InfoContext(ctx, "Reloaded", "path", *dataPath, "rows", s.RowCount())
		return show()
	})
}

// exportPage writes the records of the current page to path.
func exportPage(path string, s *grid.Store) error {
	rows := s.PageRows()
	recs := make([]grid.Record, len(rows))
	for i, v := range rows {
		recs[i] = v.Row().Record()
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := records.WriteJSONL(f, recs); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// loadOptions reads the configuration file, or infers one column per field
// when path is empty.
func loadOptions(path string, recs []grid.Record) (grid.Options, error) {
	if path == "" {
		return grid.Options{
			Columns:    inferColumns(recs),
			RowHeaders: []string{grid.RowNumColumn},
		}, nil
	}
	f, err := config.Load(path)
	if err != nil {
		return grid.Options{}, err
	}
	return f.Options()
}

// inferColumns returns a sortable text column for every field found in recs,
// in order of first appearance.
func inferColumns(recs []grid.Record) []grid.Column {
	var names []string
	seen := map[string]bool{}
	for _, rec := range recs {
		var keys []string
		for k := range rec {
			if !seen[k] && !strings.HasPrefix(k, "_") && k != "rowKey" && k != grid.SortKeyColumn {
				keys = append(keys, k)
			}
		}
		// Map order is random; sort the fields a record adds.
		slices.Sort(keys)
		for _, k := range keys {
			seen[k] = true
			names = append(names, k)
		}
	}
	cols := make([]grid.Column, len(names))
	for i, n := range names {
		cols[i] = grid.Column{Name: n, Editor: "text", Sortable: true}
	}
	return cols
}

// initLogger installs a tint handler, with color on a terminal.
func initLogger(level string) *slog.Logger {
	ll := &slog.LevelVar{}
	switch level {
	case "debug":
		ll.Set(slog.LevelDebug)
	case "warn":
		ll.Set(slog.LevelWarn)
	case "error":
		ll.Set(slog.LevelError)
	default:
		ll.Set(slog.LevelInfo)
	}
	return slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			skip := false
			switch t := a.Value.Any().(type) {
			case string:
				skip = t == ""
			case bool:
				skip = !t
			case int64:
				skip = t == 0 && a.Key != "rows"
			case time.Duration:
				skip = t == 0
			case nil:
				skip = true
			}
			if skip {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// listFlag collects every occurrence of a repeatable flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}
