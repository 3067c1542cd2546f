package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/SichangHe/parse-rpsl-policy/pkg/config"
	"github.com/SichangHe/parse-rpsl-policy/pkg/watch"
)

// reloadDebounce folds the writes of one editor save into one reload.
var reloadDebounce = 500 * time.Millisecond

// reloadOnChange re-reads the config file at path after every change
// until ctx is done.
func reloadOnChange(ctx context.Context, path string) error {
	logger := slog.Default().With("component", "config")
	fw, err := watch.NewFileWatcher(&watch.FileWatcherConfig{
		Path:             path,
		DebounceInterval: reloadDebounce,
	}, logger)
	if err != nil {
		return err
	}
	defer fw.Stop()

	return fw.Watch(ctx, func(string) { reloadConfig(path) })
}

// reloadConfig makes the configuration at path active and reinstalls the
// logger from it. A file that does not load or validate is ignored.
func reloadConfig(path string) {
	if err := config.ReloadConfig(path); err != nil {
		slog.Warn("config reload failed, keeping the active configuration", "path", path, "error", err)
		return
	}
	cfg := config.GetConfig()
	if err := installLogger(cfg); err != nil {
		slog.Warn("config reload: logger not replaced", "path", path, "error", err)
		return
	}
	slog.Info("configuration reloaded", "path", path, "log_level", cfg.Logging.Level)
}
