package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrAlreadyRunning is returned when Watch is called twice.
var ErrAlreadyRunning = errors.New("watcher already running")

// FileWatcher watches dump files for changes and triggers a callback.
// Bursts of events are debounced into a single call.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *FileWatcherConfig
	debounce *Debouncer

	mu      sync.Mutex
	running bool
	closed  bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// FileWatcherConfig contains configuration for the file watcher.
type FileWatcherConfig struct {
	// Path is the file or directory to watch
	Path string

	// DebounceInterval is the quiet period after the last event before
	// the callback runs (default: 2s)
	DebounceInterval time.Duration

	// Extensions is the list of file extensions that count as dumps.
	// Empty means every file.
	Extensions []string

	// SkipHidden ignores dot files and dot directories
	SkipHidden bool
}

// DefaultFileWatcherConfig returns the default watcher configuration.
func DefaultFileWatcherConfig() *FileWatcherConfig {
	return &FileWatcherConfig{
		DebounceInterval: 2 * time.Second,
		Extensions:       []string{".db", ".gz", ".lz4", ".txt"},
		SkipHidden:       true,
	}
}

// NewFileWatcher creates a new file watcher.
func NewFileWatcher(config *FileWatcherConfig, logger *slog.Logger) (*FileWatcher, error) {
	if config == nil {
		config = DefaultFileWatcherConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger,
		config:   config,
		debounce: NewDebouncer(config.DebounceInterval),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is cancelled or Stop is called, running
// onChange after every debounced burst of relevant events. onChange runs
// on the debouncer's goroutine; calls never overlap.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func(path string)) error {
	fw.mu.Lock()
	if fw.running || fw.closed {
		fw.mu.Unlock()
		return ErrAlreadyRunning
	}
	fw.running = true
	fw.mu.Unlock()
	defer close(fw.doneCh)

	if err := fw.addPath(fw.config.Path); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	fw.logger.Info("file watcher started",
		"path", fw.config.Path,
		"debounce_ms", fw.config.DebounceInterval.Milliseconds(),
	)

	var callMu sync.Mutex
	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("file watcher stopped", "reason", "context cancelled")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}

			// New directories are not covered by the recursive add.
			if event.Op.Has(fsnotify.Create) {
				if isDir, _ := isDirectory(event.Name); isDir && !fw.skipHidden(event.Name) {
					if err := fw.addDirectory(event.Name); err != nil {
						fw.logger.Warn("cannot watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}

			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug("file event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			name := event.Name
			fw.debounce.Trigger(func() {
				callMu.Lock()
				defer callMu.Unlock()
				onChange(name)
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop stops a running watcher and releases its resources. It is safe to
// call Stop on a watcher that never ran.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if fw.closed {
		fw.mu.Unlock()
		return nil
	}
	fw.closed = true
	running := fw.running
	fw.mu.Unlock()

	close(fw.stopCh)
	if running {
		<-fw.doneCh
	}
	fw.debounce.Stop()

	if err := fw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

func (fw *FileWatcher) addPath(path string) error {
	isDir, err := isDirectory(path)
	if err != nil {
		return err
	}
	if isDir {
		return fw.addDirectory(path)
	}
	// Watch the parent so that replace-by-rename of the file is seen.
	return fw.watcher.Add(filepath.Dir(path))
}

// addDirectory adds a directory and all subdirectories to the watcher.
func (fw *FileWatcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && fw.skipHidden(path) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		fw.logger.Debug("watching directory", "path", path)
		return nil
	})
}

// shouldProcessEvent determines if an event should trigger a re-import.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if fw.skipHidden(event.Name) {
		return false
	}

	// A single watched file only reacts to itself, not its siblings.
	if isDir, _ := isDirectory(fw.config.Path); !isDir {
		return filepath.Clean(event.Name) == filepath.Clean(fw.config.Path)
	}
	return fw.hasValidExtension(event.Name)
}

func (fw *FileWatcher) skipHidden(path string) bool {
	return fw.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".")
}

func (fw *FileWatcher) hasValidExtension(name string) bool {
	if len(fw.config.Extensions) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range fw.config.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Debouncer collects rapid events and runs the latest callback only after
// a quiet period.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopped  bool
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger (re)starts the quiet period. callback replaces any callback
// from an earlier Trigger that has not fired yet.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.callback = callback
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	cb := d.callback
	d.callback = nil
	stopped := d.stopped
	d.mu.Unlock()

	if cb != nil && !stopped {
		cb()
	}
}

// Stop cancels any pending callback. Later Triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}

func isDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
