package config

import (
	"reflect"
	"testing"
	"time"
)

func TestApplyDefaults_Empty(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Parser.MaxInputBytes != 65536 {
		t.Errorf("Parser.MaxInputBytes = %d, want 65536", cfg.Parser.MaxInputBytes)
	}
	if cfg.Parser.MaxDepth != 64 {
		t.Errorf("Parser.MaxDepth = %d, want 64", cfg.Parser.MaxDepth)
	}
	if cfg.RPSL.Encoding != "latin1" {
		t.Errorf("RPSL.Encoding = %q, want %q", cfg.RPSL.Encoding, "latin1")
	}
	if !reflect.DeepEqual(cfg.RPSL.Attributes, []string{"mp-import", "import"}) {
		t.Errorf("RPSL.Attributes = %v", cfg.RPSL.Attributes)
	}
	if cfg.Store.Backend != "sqlite" || cfg.Store.Path != "data/rpsl-policy.db" {
		t.Errorf("Store = %s %s", cfg.Store.Backend, cfg.Store.Path)
	}
	if !cfg.Store.WALEnabled() {
		t.Error("Store.WALEnabled() = false, want true")
	}
	if cfg.Store.BusyTimeout != 5*time.Second {
		t.Errorf("Store.BusyTimeout = %v, want 5s", cfg.Store.BusyTimeout)
	}
	if cfg.Store.RetentionDays != 30 || cfg.Store.PruneSchedule != "0 3 * * *" {
		t.Errorf("Store retention = %d %q", cfg.Store.RetentionDays, cfg.Store.PruneSchedule)
	}
	if cfg.Watch.Debounce != 2*time.Second || cfg.Watch.MaxRetries != 3 {
		t.Errorf("Watch = %+v", cfg.Watch)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = true, want false")
	}
	if cfg.Metrics.Namespace != "rpsl" || cfg.Metrics.Subsystem != "policy" || cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Tracing.Enabled || cfg.Tracing.Exporter != "otlp" || cfg.Tracing.Endpoint != "localhost:4317" {
		t.Errorf("Tracing = %+v", cfg.Tracing)
	}
	if cfg.Tracing.ServiceName != "rpslpolicy" || cfg.Tracing.OTLP.Timeout != 10*time.Second {
		t.Errorf("Tracing = %+v", cfg.Tracing)
	}
}

func TestApplyDefaults_KeepsValues(t *testing.T) {
	wal := false
	cfg := &Config{
		RPSL:  RPSLConfig{Encoding: "utf-8", Attributes: []string{"mp-import"}},
		Store: StoreConfig{Path: "/tmp/x.db", WALMode: &wal, MaxRuns: 5},
	}
	ApplyDefaults(cfg)

	if cfg.RPSL.Encoding != "utf-8" {
		t.Errorf("RPSL.Encoding = %q, want utf-8", cfg.RPSL.Encoding)
	}
	if len(cfg.RPSL.Attributes) != 1 {
		t.Errorf("RPSL.Attributes = %v, want [mp-import]", cfg.RPSL.Attributes)
	}
	if cfg.Store.Path != "/tmp/x.db" || cfg.Store.MaxRuns != 5 {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Store.WALEnabled() {
		t.Error("explicit wal_mode: false was overwritten")
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	a := NewDefaultConfig()
	b := NewDefaultConfig()
	ApplyDefaults(b)
	if !reflect.DeepEqual(a, b) {
		t.Error("ApplyDefaults is not idempotent")
	}
}

func TestApplyDefaults_DoesNotAliasDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.RPSL.Attributes[0] = "changed"
	if DefaultRPSLAttributes[0] != "mp-import" {
		t.Error("modifying a config changed DefaultRPSLAttributes")
	}
}

func TestNewDefaultConfig_Valid(t *testing.T) {
	if err := Validate(NewDefaultConfig()); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}
