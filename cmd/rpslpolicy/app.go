package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/SichangHe/parse-rpsl-policy/pkg/cli"
	"github.com/SichangHe/parse-rpsl-policy/pkg/config"
	"github.com/SichangHe/parse-rpsl-policy/pkg/ingest"
	"github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/parser"
	"github.com/SichangHe/parse-rpsl-policy/pkg/rpsl"
	"github.com/SichangHe/parse-rpsl-policy/pkg/source"
	"github.com/SichangHe/parse-rpsl-policy/pkg/store"
	"github.com/SichangHe/parse-rpsl-policy/pkg/store/retention"
	"github.com/SichangHe/parse-rpsl-policy/pkg/telemetry/logging"
	"github.com/SichangHe/parse-rpsl-policy/pkg/telemetry/metrics"
	"github.com/SichangHe/parse-rpsl-policy/pkg/telemetry/tracing"
)

// app builds what the commands need from the active configuration.
type app struct{}

// logOutput is where logs go; tests silence it.
var logOutput io.Writer = os.Stderr

// setup loads the configuration, makes it the active one and installs the
// default logger.
func setup() (*app, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("config", err.Error())
	}
	if err := installLogger(cfg); err != nil {
		return nil, err
	}
	config.SetConfig(cfg)

	return &app{}, nil
}

// installLogger applies the global flag overrides to cfg and makes the
// logger it describes the default.
func installLogger(cfg *config.Config) error {
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
		Writer:    logOutput,
	})
	if err != nil {
		return cli.NewConfigError("logging", err.Error())
	}
	logger.SetDefault()
	return nil
}

// cfg returns the active configuration. watch replaces it when the config
// file changes.
func (a *app) cfg() *config.Config {
	return config.MustGetConfig()
}

func (a *app) parser() *parser.Parser {
	pc := a.cfg().Parser
	return parser.NewParser().
		WithMaxInputSize(pc.MaxInputBytes).
		WithMaxDepth(pc.MaxDepth)
}

func (a *app) rpslOptions() rpsl.Options {
	opts := rpsl.DefaultOptions()
	rc := a.cfg().RPSL
	opts.Encoding = rc.Encoding
	if rc.Workers > 0 {
		opts.Workers = rc.Workers
	}
	opts.Attributes = rc.Attributes
	opts.Parser = a.parser()
	return opts
}

func (a *app) openStore() (store.Store, error) {
	sc := a.cfg().Store
	if sc.Backend == "memory" {
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewSQLiteStore(&store.SQLiteConfig{
		Path:        sc.Path,
		WALMode:     sc.WALEnabled(),
		BusyTimeout: sc.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func (a *app) collector() *metrics.Collector {
	mc := a.cfg().Metrics
	return metrics.NewCollector(&mc, nil)
}

// tracer starts span export when tracing.enabled is set. The tracer must
// be shut down to flush the last spans.
func (a *app) tracer() (*tracing.Tracer, error) {
	tc := a.cfg().Tracing
	t, err := tracing.New(&tc)
	if err != nil {
		return nil, fmt.Errorf("start tracing: %w", err)
	}
	return t, nil
}

func (a *app) ingester(st store.Store, col *metrics.Collector, tracer *tracing.Tracer) *ingest.Ingester {
	cfg := ingest.DefaultConfig()
	cfg.RPSL = a.rpslOptions()
	cfg.Tracer = tracer
	return ingest.NewIngester(st, col, cfg)
}

func (a *app) pruner(st store.Store, col *metrics.Collector) *retention.Pruner {
	sc := a.cfg().Store
	p := retention.NewPruner(st, &retention.Config{
		RetentionDays: sc.RetentionDays,
		MaxRuns:       sc.MaxRuns,
		PruneSchedule: sc.PruneSchedule,
	})
	p.OnPrune = col.RecordPruned
	return p
}

// sourceFlags selects the dumps of lint and import.
type sourceFlags struct {
	file    string
	dir     string
	gitRepo string
	rev     string
	gitDir  string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "dump file (.gz and .lz4 are decompressed)")
	cmd.Flags().StringVarP(&f.dir, "dir", "d", "", "directory searched recursively for dumps")
	cmd.Flags().StringVar(&f.gitRepo, "git-repo", "", "local git repository holding dumps")
	cmd.Flags().StringVar(&f.rev, "rev", "", "git revision to read (default HEAD)")
	cmd.Flags().StringVar(&f.gitDir, "git-dir", "", "subdirectory of the git tree to read")
}

func (f *sourceFlags) source(extensions []string) (source.Source, error) {
	set := 0
	for _, v := range []string{f.file, f.dir, f.gitRepo} {
		if v != "" {
			set++
		}
	}
	switch {
	case set == 0:
		return nil, cli.NewConfigError("source", "one of --file, --dir or --git-repo must be specified")
	case set > 1:
		return nil, cli.NewConfigError("source", "--file, --dir and --git-repo are mutually exclusive")
	case (f.rev != "" || f.gitDir != "") && f.gitRepo == "":
		return nil, cli.NewConfigError("rev", "--rev and --git-dir require --git-repo")
	}

	switch {
	case f.file != "":
		return &source.FileSource{Path: f.file}, nil
	case f.dir != "":
		return &source.FileSource{Path: f.dir, Extensions: extensions}, nil
	default:
		return &source.GitSource{
			Repository: f.gitRepo,
			Revision:   f.rev,
			Dir:        f.gitDir,
			Extensions: extensions,
		}, nil
	}
}

// printResult writes data to the command output in the given format.
func printResult(cmd *cobra.Command, format string, data any) error {
	f, err := cli.ParseFormat(format)
	if err != nil {
		return err
	}
	return cli.NewFormatter(f).FormatTo(cmd.OutOrStdout(), data)
}
