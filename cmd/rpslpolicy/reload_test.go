package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SichangHe/parse-rpsl-policy/pkg/config"
)

// withConfigFile writes content to a temporary config file, points
// --config at it and restores the global state after the test.
func withConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rpslpolicy.yaml")
	writeFile(t, path, content)

	oldCfg, oldLogger := config.GetConfig(), slog.Default()
	oldFile, oldLevel, oldVerbose := cfgFile, logLevel, verbose
	t.Cleanup(func() {
		config.SetConfig(oldCfg)
		slog.SetDefault(oldLogger)
		cfgFile, logLevel, verbose = oldFile, oldLevel, oldVerbose
	})
	cfgFile, logLevel, verbose = path, "", false
	logOutput = io.Discard
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestSetup_ActivatesConfig(t *testing.T) {
	withConfigFile(t, "logging:\n  level: warn\nparser:\n  max_depth: 8\n")

	a, err := setup()
	if err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	if config.GetConfig() != a.cfg() {
		t.Error("app config is not the active configuration")
	}
	if got := a.parser().MaxDepth(); got != 8 {
		t.Errorf("parser().MaxDepth() = %d, want 8", got)
	}
	if slog.Default().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info logging enabled with logging.level warn")
	}
}

func TestReloadConfig(t *testing.T) {
	path := withConfigFile(t, "logging:\n  level: info\n")
	if _, err := setup(); err != nil {
		t.Fatalf("setup() error = %v", err)
	}

	writeFile(t, path, "logging:\n  level: debug\n")
	reloadConfig(path)
	if got := config.GetConfig().Logging.Level; got != "debug" {
		t.Errorf("Logging.Level = %q after reload, want debug", got)
	}
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug logging not enabled after reload")
	}

	active := config.GetConfig()
	writeFile(t, path, "logging:\n  level: loud\n")
	reloadConfig(path)
	if config.GetConfig() != active {
		t.Error("invalid config file replaced the active configuration")
	}
}

func TestReloadConfig_KeepsFlagOverrides(t *testing.T) {
	path := withConfigFile(t, "logging:\n  level: info\n")
	logLevel = "error"
	if _, err := setup(); err != nil {
		t.Fatalf("setup() error = %v", err)
	}

	writeFile(t, path, "logging:\n  level: debug\n")
	reloadConfig(path)
	if got := config.GetConfig().Logging.Level; got != "error" {
		t.Errorf("Logging.Level = %q after reload, want the --log-level value", got)
	}
}

func TestReloadOnChange(t *testing.T) {
	path := withConfigFile(t, "logging:\n  level: info\n")
	if _, err := setup(); err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	oldDebounce := reloadDebounce
	reloadDebounce = 20 * time.Millisecond
	t.Cleanup(func() { reloadDebounce = oldDebounce })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- reloadOnChange(ctx, path) }()

	// Give the watcher time to register the file.
	time.Sleep(50 * time.Millisecond)
	writeFile(t, path, "logging:\n  level: warn\n")

	deadline := time.Now().Add(3 * time.Second)
	for config.GetConfig().Logging.Level != "warn" {
		if time.Now().After(deadline) {
			t.Fatalf("Logging.Level = %q, want warn after the file changed", config.GetConfig().Logging.Level)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("reloadOnChange() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reloadOnChange() did not return after cancel")
	}
}
