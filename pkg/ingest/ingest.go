package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/SichangHe/parse-rpsl-policy/pkg/rpsl"
	"github.com/SichangHe/parse-rpsl-policy/pkg/source"
	"github.com/SichangHe/parse-rpsl-policy/pkg/store"
	"github.com/SichangHe/parse-rpsl-policy/pkg/telemetry/logging"
	"github.com/SichangHe/parse-rpsl-policy/pkg/telemetry/metrics"
	"github.com/SichangHe/parse-rpsl-policy/pkg/telemetry/tracing"
)

// ErrNoDumps is returned when a source provides no dump files.
var ErrNoDumps = errors.New("no dumps found")

// Config configures an Ingester.
type Config struct {
	// RPSL is passed to rpsl.ParseDump for every dump.
	// Default: rpsl.DefaultOptions()
	RPSL rpsl.Options

	// BatchSize is the number of records written per store call.
	// Default: 1000
	BatchSize int

	// StopOnError stops at the first dump that cannot be read.
	// Default: false
	StopOnError bool

	// Progress, when set, is called with done=0 once the dumps are listed
	// and again after each dump.
	Progress func(done, total int)

	// Tracer receives a span per run and per dump. nil disables tracing.
	Tracer *tracing.Tracer
}

// DefaultConfig returns the default ingest configuration.
func DefaultConfig() *Config {
	return &Config{
		RPSL:      rpsl.DefaultOptions(),
		BatchSize: 1000,
	}
}

// Ingester runs ingest passes over sources.
type Ingester struct {
	store     store.Store
	collector *metrics.Collector
	config    *Config
	logger    *slog.Logger
}

// NewIngester creates an ingester writing to st. st may be nil when only
// Lint is used; collector may be nil.
func NewIngester(st store.Store, collector *metrics.Collector, config *Config) *Ingester {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 1000
	}

	return &Ingester{
		store:     st,
		collector: collector,
		config:    config,
		logger:    slog.Default().With("component", "ingest"),
	}
}

// DumpResult is one dump of a source after parsing.
type DumpResult struct {
	Name     string
	Revision string
	Dump     *rpsl.Dump
}

// Ingest parses every dump of src and stores the results as a new run.
// The run is returned even when err is set; its status tells whether it
// completed.
func (i *Ingester) Ingest(ctx context.Context, src source.Source) (*store.Run, error) {
	if i.store == nil {
		return nil, fmt.Errorf("ingest: no store configured")
	}

	run := store.NewRun(src.String())
	if err := i.store.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	ctx, span := i.config.Tracer.Start(ctx, "ingest.run")
	defer span.End()
	tracing.SetRunAttributes(span, run.ID, src.String())

	ctx = logging.WithSource(logging.WithRunID(ctx, run.ID), src.String())
	i.logger.InfoContext(ctx, "ingest started", "trace_id", tracing.TraceID(ctx))

	err := i.scan(ctx, src, func(res *DumpResult) error {
		run.Dumps++
		if run.Revision == "" {
			run.Revision = res.Revision
		}
		run.Objects += res.Dump.Objects
		run.AutNums += len(res.Dump.AutNums)
		total, failed := res.Dump.ImportCounts()
		run.Imports += total
		run.Failed += failed

		records, err := Records(run.ID, res)
		if err != nil {
			return err
		}
		return i.save(ctx, records)
	})

	run.Finish(err)
	if ferr := i.store.FinishRun(context.WithoutCancel(ctx), run); ferr != nil {
		err = multierror.Append(err, fmt.Errorf("finish run: %w", ferr))
	}
	i.collector.RecordRun(string(run.Status), run.Duration(), run.Imports, run.Failed)
	tracing.SetCounts(span, tracing.Counts{
		Dumps:   run.Dumps,
		Objects: run.Objects,
		AutNums: run.AutNums,
		Imports: run.Imports,
		Failed:  run.Failed,
	})
	tracing.SetStatus(span, err)

	if err != nil {
		i.logger.ErrorContext(ctx, "ingest failed",
			"error", err,
			"dumps", run.Dumps,
			"duration", run.Duration(),
		)
		return run, err
	}

	i.logger.InfoContext(ctx, "ingest completed",
		"dumps", run.Dumps,
		"objects", run.Objects,
		"aut_nums", run.AutNums,
		"imports", run.Imports,
		"failed", run.Failed,
		"duration", run.Duration(),
	)
	return run, nil
}

func (i *Ingester) save(ctx context.Context, records []*store.Record) error {
	for start := 0; start < len(records); start += i.config.BatchSize {
		end := min(start+i.config.BatchSize, len(records))
		if err := i.store.AddRecords(ctx, records[start:end]); err != nil {
			return fmt.Errorf("store records: %w", err)
		}
	}
	return nil
}

// scan parses the dumps of src one by one and hands each to fn. Read
// failures are collected; an error from fn stops the scan.
func (i *Ingester) scan(ctx context.Context, src source.Source, fn func(*DumpResult) error) error {
	dumps, err := src.Dumps(ctx)
	if err != nil {
		return fmt.Errorf("list dumps of %s: %w", src, err)
	}
	if len(dumps) == 0 {
		return fmt.Errorf("%s: %w", src, ErrNoDumps)
	}

	i.progress(0, len(dumps))

	var result *multierror.Error
	for n, d := range dumps {
		if err := ctx.Err(); err != nil {
			return multierror.Append(result, err).ErrorOrNil()
		}

		res, err := i.parseDump(ctx, d)
		i.progress(n+1, len(dumps))
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("dump %s: %w", d.Name, err))
			if i.config.StopOnError {
				break
			}
			continue
		}
		if err := fn(res); err != nil {
			return multierror.Append(result, err).ErrorOrNil()
		}
	}
	return result.ErrorOrNil()
}

func (i *Ingester) progress(done, total int) {
	if i.config.Progress != nil {
		i.config.Progress(done, total)
	}
}

func (i *Ingester) parseDump(ctx context.Context, d *source.Dump) (res *DumpResult, err error) {
	ctx = logging.WithDump(ctx, d.Name)
	ctx, span := i.config.Tracer.Start(ctx, "ingest.dump")
	defer func() {
		tracing.SetStatus(span, err)
		span.End()
	}()
	tracing.SetDumpAttributes(span, d.Name, d.Revision, d.Size)

	rc, err := d.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	opts := i.config.RPSL
	opts.Logger = i.logger.With("dump", d.Name)

	dump, err := rpsl.ParseDump(ctx, rc, opts)
	if err != nil {
		return nil, err
	}
	total, failed := dump.ImportCounts()
	tracing.SetCounts(span, tracing.Counts{
		Objects:   dump.Objects,
		AutNums:   len(dump.AutNums),
		Imports:   total,
		Failed:    failed,
		Malformed: dump.Malformed,
	})

	i.collector.RecordObjects(dump.Classes, dump.Malformed)
	if i.collector.Enabled() {
		for _, an := range dump.AutNums {
			for _, imp := range an.Imports {
				kind := ""
				if !imp.OK() {
					kind = string(imp.Err.Kind)
				}
				i.collector.RecordParse(imp.Attribute, kind, imp.Duration)
			}
		}
	}

	if dump.Malformed > 0 {
		i.logger.WarnContext(ctx, "dump has malformed lines", "malformed", dump.Malformed)
	}
	i.logger.DebugContext(ctx, "dump read",
		"size", d.Size,
		"objects", dump.Objects,
		"duration", dump.Duration.Round(time.Millisecond),
	)

	return &DumpResult{Name: d.Name, Revision: d.Revision, Dump: dump}, nil
}
