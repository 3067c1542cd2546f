package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/SichangHe/parse-rpsl-policy/pkg/config"
	"github.com/SichangHe/parse-rpsl-policy/pkg/ingest"
	"github.com/SichangHe/parse-rpsl-policy/pkg/source"
	"github.com/SichangHe/parse-rpsl-policy/pkg/store"
	"github.com/SichangHe/parse-rpsl-policy/pkg/telemetry/tracing"
)

// ErrNotImported is reported by Check until the first import finishes.
var ErrNotImported = errors.New("no import finished yet")

// Importer stores one ingest run of a source.
type Importer interface {
	Ingest(ctx context.Context, src source.Source) (*store.Run, error)
}

// Watcher re-imports a dump path whenever it changes.
type Watcher struct {
	files    *FileWatcher
	importer Importer
	source   source.Source
	config   config.WatchConfig
	logger   *slog.Logger

	// newBackOff is replaced in tests to avoid real sleeps.
	newBackOff func() backoff.BackOff

	imports atomic.Int64

	mu      sync.Mutex
	lastErr error

	// OnImport is called after every re-import attempt sequence, with the
	// final run and error.
	OnImport func(*store.Run, error)

	// Tracer, when set, wraps every import sequence in a span so the run
	// spans of its attempts share a trace.
	Tracer *tracing.Tracer
}

// New creates a watcher for cfg.Path. The path must exist.
func New(cfg config.WatchConfig, importer Importer) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, errors.New("watch: no path configured")
	}
	if importer == nil {
		return nil, errors.New("watch: no importer")
	}
	if _, err := isDirectory(cfg.Path); err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	logger := slog.Default().With("component", "watch")
	files, err := NewFileWatcher(&FileWatcherConfig{
		Path:             cfg.Path,
		DebounceInterval: cfg.Debounce,
		Extensions:       cfg.Extensions,
		SkipHidden:       true,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		files:    files,
		importer: importer,
		source:   &source.FileSource{Path: cfg.Path, Extensions: cfg.Extensions},
		config:   cfg,
		logger:   logger,
		lastErr:  ErrNotImported,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}, nil
}

// Run imports the path once and then again after every change, until ctx
// is cancelled. The initial import failing is logged, not returned.
func (w *Watcher) Run(ctx context.Context) error {
	w.Import(ctx, "initial")
	return w.files.Watch(ctx, func(path string) {
		if ctx.Err() != nil {
			return
		}
		w.Import(ctx, path)
	})
}

// Import runs one import with retries and returns the final run.
func (w *Watcher) Import(ctx context.Context, trigger string) (*store.Run, error) {
	attempts := max(w.config.MaxRetries, 1)
	w.logger.Info("re-import triggered", "trigger", trigger, "max_attempts", attempts)

	ctx, span := w.Tracer.Start(ctx, "watch.import")
	defer span.End()
	span.SetAttributes(attribute.String(tracing.AttrTrigger, trigger))

	run, err := backoff.Retry(ctx, func() (*store.Run, error) {
		run, err := w.importer.Ingest(ctx, w.source)
		if errors.Is(err, ingest.ErrNoDumps) {
			return run, backoff.Permanent(err)
		}
		return run, err
	},
		backoff.WithBackOff(w.newBackOff()),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			w.logger.Warn("import failed, retrying", "error", err, "retry_in", next)
		}),
	)
	w.imports.Add(1)
	tracing.SetStatus(span, err)
	w.mu.Lock()
	w.lastErr = err
	w.mu.Unlock()

	if err != nil {
		w.logger.Error("re-import failed", "trigger", trigger, "error", err)
	} else {
		w.logger.Info("re-import completed",
			"trigger", trigger,
			"run_id", run.ID,
			"imports", run.Imports,
			"failed", run.Failed,
		)
	}
	if w.OnImport != nil {
		w.OnImport(run, err)
	}
	return run, err
}

// Check returns the error of the last import sequence, or ErrNotImported
// before the first one finishes. It serves as a readiness check.
func (w *Watcher) Check(context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Imports returns how many import sequences have run.
func (w *Watcher) Imports() int64 {
	return w.imports.Load()
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.files.Stop()
}
