package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/CTAG07/lodexport/pkg/dictionary"
	"github.com/CTAG07/lodexport/pkg/lexicon"
	"github.com/CTAG07/lodexport/pkg/store"
	"github.com/CTAG07/lodexport/pkg/templating"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// flags are the command line options of one run.
type flags struct {
	configPath  string
	eventID     int
	styles      []string
	directions  []string
	language    string
	importPath  string
	timestamp   string
	importOnly  bool
	showVersion bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (*flags, error) {
	var f flags
	flagSet := pflag.NewFlagSet("lodexport", pflag.ContinueOnError)
	flagSet.StringVarP(&f.configPath, "config", "c", "./config.json", "path to the JSON config file (created with defaults when missing)")
	flagSet.IntVarP(&f.eventID, "event", "e", 0, "lexical event id to export (default: latest event)")
	flagSet.StringSliceVarP(&f.styles, "style", "s", []string{string(lexicon.StyleNormal)}, "document styles to generate (normal, ultra)")
	flagSet.StringSliceVarP(&f.directions, "direction", "d", []string{string(dictionary.DirectionLoglan), string(dictionary.DirectionEnglish)}, "dictionary directions to generate (loglan, english)")
	flagSet.StringVarP(&f.language, "language", "l", "", "key language of the English-side dictionary (default from config)")
	flagSet.StringVar(&f.importPath, "import", "", "import a JSON corpus dump into the database before exporting")
	flagSet.BoolVar(&f.importOnly, "import-only", false, "stop after --import")
	flagSet.StringVar(&f.timestamp, "timestamp", "", "YYMMDDHHmm stamp for the output file names (default: now)")
	flagSet.BoolVar(&f.showVersion, "version", false, "print version information")

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if f.timestamp != "" {
		if _, err := time.Parse("0601021504", f.timestamp); err != nil {
			return nil, fmt.Errorf("invalid --timestamp %q: expected YYMMDDHHmm", f.timestamp)
		}
	}
	if f.importOnly && f.importPath == "" {
		return nil, fmt.Errorf("--import-only requires --import")
	}
	return &f, nil
}

// jobs expands the requested directions and styles into documents, in
// direction order.
func (f *flags) jobs() ([]dictionary.Job, error) {
	var jobs []dictionary.Job
	for _, d := range f.directions {
		direction, err := dictionary.ParseDirection(d)
		if err != nil {
			return nil, err
		}
		for _, s := range f.styles {
			style, err := lexicon.ParseStyle(s)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, dictionary.Job{Direction: direction, Style: style})
		}
	}
	return jobs, nil
}

// run loads the configuration, prepares the database and generates the
// requested dictionaries.
func run(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if f.showVersion {
		fmt.Printf("lodexport %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		return nil
	}

	config, err := LoadConfig(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if f.language != "" {
		config.Export.Language = f.language
	}
	jobs, err := f.jobs()
	if err != nil {
		return err
	}

	logLevel, _ := parseLevel(config.App.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if config.Export.ExportDir != "" {
		if err = os.MkdirAll(config.Export.ExportDir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	source := dataSource(config.App.DatabaseURL)
	db, err := initDB(source)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		logger.Info("Closing database connection.")
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()
	if source == ":memory:" {
		// Every connection would open its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err = store.SetupSchema(db); err != nil {
		return fmt.Errorf("failed to setup corpus schema: %w", err)
	}
	st, err := store.New(db)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer st.Close()
	st.SetLogger(logger)

	if f.importPath != "" {
		if err = importCorpus(ctx, st, f.importPath); err != nil {
			return err
		}
		if f.importOnly {
			return nil
		}
	}

	stats, err := st.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read corpus stats: %w", err)
	}
	logger.Info("Corpus loaded",
		"events", stats.Events,
		"words", stats.Words,
		"definitions", stats.Definitions,
		"keys", stats.Keys,
	)

	tm, err := templating.NewTemplateManager(logger, &config.Templates)
	if err != nil {
		return fmt.Errorf("failed to create template manager: %w", err)
	}

	builder := dictionary.NewBuilder(st, tm)
	builder.SetLogger(logger)
	generator := dictionary.NewGenerator(builder, tm, dictionary.Options{
		ExportDir: config.Export.ExportDir,
		Style:     lexicon.Style(config.Export.Style),
		Language:  config.Export.Language,
	})
	generator.SetLogger(logger)

	snap, err := generator.Snapshot(ctx, f.eventID)
	if err != nil {
		return err
	}
	if f.timestamp != "" {
		snap.Timestamp = f.timestamp
	}

	paths, err := generator.GenerateAll(ctx, snap, jobs)
	for _, p := range paths {
		logger.Info("Generated", "file", p)
	}
	return err
}

func importCorpus(ctx context.Context, st *store.Store, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open corpus dump: %w", err)
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	if err = st.ImportCorpus(ctx, file); err != nil {
		return fmt.Errorf("failed to import corpus dump %s: %w", path, err)
	}
	return nil
}
