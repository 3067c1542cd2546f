package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/SichangHe/parse-rpsl-policy/pkg/config"
	"github.com/SichangHe/parse-rpsl-policy/pkg/ingest"
	"github.com/SichangHe/parse-rpsl-policy/pkg/source"
	"github.com/SichangHe/parse-rpsl-policy/pkg/store"
	"github.com/SichangHe/parse-rpsl-policy/pkg/telemetry/tracing"
)

// fakeImporter fails the first failures calls, then succeeds.
type fakeImporter struct {
	mu       sync.Mutex
	calls    int
	failures int
	err      error
	sources  []string
}

func (f *fakeImporter) Ingest(ctx context.Context, src source.Source) (*store.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.sources = append(f.sources, src.String())
	if f.calls <= f.failures {
		return nil, f.err
	}
	run := store.NewRun(src.String())
	run.Imports = 5
	run.Finish(nil)
	return run, nil
}

func (f *fakeImporter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestWatcher(t *testing.T, path string, imp Importer) *Watcher {
	t.Helper()

	cfg := config.WatchConfig{
		Path:       path,
		Debounce:   20 * time.Millisecond,
		Extensions: []string{".db", ".gz"},
		MaxRetries: 3,
	}
	w, err := New(cfg, imp)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestNew_Errors(t *testing.T) {
	imp := &fakeImporter{}
	tests := []struct {
		name string
		cfg  config.WatchConfig
		imp  Importer
	}{
		{"no path", config.WatchConfig{}, imp},
		{"missing path", config.WatchConfig{Path: filepath.Join(t.TempDir(), "nope")}, imp},
		{"no importer", config.WatchConfig{Path: t.TempDir()}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(tt.cfg, tt.imp)
			if err == nil {
				_ = w.Close()
				t.Fatal("New() error = nil, want error")
			}
		})
	}
}

func TestWatcher_Import_Retries(t *testing.T) {
	imp := &fakeImporter{failures: 2, err: errors.New("database is locked")}
	w := newTestWatcher(t, t.TempDir(), imp)

	run, err := w.Import(context.Background(), "test")
	if err != nil {
		t.Fatalf("Import() error = %v, want nil", err)
	}
	if run == nil || run.Imports != 5 {
		t.Errorf("Import() run = %+v, want run with 5 imports", run)
	}
	if imp.Calls() != 3 {
		t.Errorf("importer calls = %d, want 3", imp.Calls())
	}
	if w.Imports() != 1 {
		t.Errorf("Imports() = %d, want 1", w.Imports())
	}
}

func TestWatcher_Check(t *testing.T) {
	imp := &fakeImporter{failures: 3, err: errors.New("disk full")}
	w := newTestWatcher(t, t.TempDir(), imp)
	ctx := context.Background()

	if err := w.Check(ctx); !errors.Is(err, ErrNotImported) {
		t.Errorf("Check() before import = %v, want ErrNotImported", err)
	}
	w.Import(ctx, "test")
	if err := w.Check(ctx); err == nil {
		t.Error("Check() after failed import = nil, want error")
	}
	w.Import(ctx, "test")
	if err := w.Check(ctx); err != nil {
		t.Errorf("Check() after successful import = %v", err)
	}
}

func TestWatcher_Import_GivesUp(t *testing.T) {
	imp := &fakeImporter{failures: 10, err: errors.New("disk full")}
	w := newTestWatcher(t, t.TempDir(), imp)

	var gotErr error
	w.OnImport = func(_ *store.Run, err error) { gotErr = err }

	if _, err := w.Import(context.Background(), "test"); err == nil {
		t.Fatal("Import() error = nil, want error")
	}
	if imp.Calls() != 3 {
		t.Errorf("importer calls = %d, want 3", imp.Calls())
	}
	if gotErr == nil {
		t.Error("OnImport did not receive the error")
	}
}

func TestWatcher_Import_Traced(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tracer, err := tracing.NewWithExporter(&config.TracingConfig{
		Enabled:     true,
		Sampler:     tracing.SamplerAlways,
		ServiceName: "watch-test",
	}, exporter)
	if err != nil {
		t.Fatalf("NewWithExporter() failed: %v", err)
	}
	defer tracer.Shutdown(context.Background())

	w := newTestWatcher(t, t.TempDir(), &fakeImporter{failures: 1, err: errors.New("database is locked")})
	w.Tracer = tracer

	if _, err := w.Import(context.Background(), "ripe.db"); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	tracer.Flush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "watch.import" || spans[0].Status.Code != codes.Ok {
		t.Errorf("span = %s %+v", spans[0].Name, spans[0].Status)
	}
	var trigger string
	for _, kv := range spans[0].Attributes {
		if kv.Key == tracing.AttrTrigger {
			trigger = kv.Value.AsString()
		}
	}
	if trigger != "ripe.db" {
		t.Errorf("%s = %q, want ripe.db", tracing.AttrTrigger, trigger)
	}
}

func TestWatcher_Import_NoDumpsIsPermanent(t *testing.T) {
	imp := &fakeImporter{failures: 10, err: fmt.Errorf("dir: %w", ingest.ErrNoDumps)}
	w := newTestWatcher(t, t.TempDir(), imp)

	_, err := w.Import(context.Background(), "test")
	if !errors.Is(err, ingest.ErrNoDumps) {
		t.Errorf("Import() error = %v, want ErrNoDumps", err)
	}
	if imp.Calls() != 1 {
		t.Errorf("importer calls = %d, want 1", imp.Calls())
	}
}

func TestWatcher_Import_UsesFileSource(t *testing.T) {
	dir := t.TempDir()
	imp := &fakeImporter{}
	w := newTestWatcher(t, dir, imp)

	if _, err := w.Import(context.Background(), "test"); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	want := (&source.FileSource{Path: dir}).String()
	if len(imp.sources) != 1 || imp.sources[0] != want {
		t.Errorf("sources = %v, want [%s]", imp.sources, want)
	}
}

func TestWatcher_Run_ReimportsOnChange(t *testing.T) {
	dir := t.TempDir()
	imp := &fakeImporter{}
	w := newTestWatcher(t, dir, imp)

	var done atomic.Int64
	reimported := make(chan struct{}, 4)
	w.OnImport = func(*store.Run, error) {
		done.Add(1)
		reimported <- struct{}{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	waitFor(t, reimported, "initial import")

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "ripe.db"), []byte("aut-num: AS1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, reimported, "re-import after change")

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
	if done.Load() < 2 {
		t.Errorf("imports = %d, want at least 2", done.Load())
	}
}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}
