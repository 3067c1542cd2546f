package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero max input", func(c *Config) { c.Parser.MaxInputBytes = -1 }, "parser.max_input_bytes"},
		{"zero depth", func(c *Config) { c.Parser.MaxDepth = -3 }, "parser.max_depth"},
		{"unknown encoding", func(c *Config) { c.RPSL.Encoding = "klingon" }, "rpsl.encoding"},
		{"negative workers", func(c *Config) { c.RPSL.Workers = -1 }, "rpsl.workers"},
		{"bad attribute", func(c *Config) { c.RPSL.Attributes = []string{"mp-export"} }, "rpsl.attributes[0]"},
		{"bad extension", func(c *Config) { c.RPSL.Extensions = []string{"db"} }, "rpsl.extensions[0]"},
		{"bad backend", func(c *Config) { c.Store.Backend = "postgres" }, "store.backend"},
		{"sqlite without path", func(c *Config) { c.Store.Backend = "sqlite"; c.Store.Path = "" }, "store.path"},
		{"negative retention", func(c *Config) { c.Store.RetentionDays = -1 }, "store.retention_days"},
		{"negative max runs", func(c *Config) { c.Store.MaxRuns = -1 }, "store.max_runs"},
		{"bad schedule", func(c *Config) { c.Store.PruneSchedule = "every day" }, "store.prune_schedule"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -1 }, "watch.debounce"},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"metrics path", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Path = "metrics" }, "metrics.path"},
		{"metrics address", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.ListenAddress = "localhost" }, "metrics.listen_address"},
		{"metrics buckets", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.ParseDurationBuckets = []float64{0.1, 0.01}
		}, "metrics.parse_duration_buckets"},
		{"disabled metrics not checked", func(c *Config) { c.Metrics.Path = "metrics" }, ""},
		{"tracing sampler", func(c *Config) { c.Tracing.Enabled = true; c.Tracing.Sampler = "sometimes" }, "tracing.sampler"},
		{"tracing ratio", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Sampler = "ratio"
			c.Tracing.SampleRatio = 1.5
		}, "tracing.sample_ratio"},
		{"tracing exporter", func(c *Config) { c.Tracing.Enabled = true; c.Tracing.Exporter = "zipkin" }, "tracing.exporter"},
		{"tracing endpoint", func(c *Config) { c.Tracing.Enabled = true; c.Tracing.Endpoint = "collector" }, "tracing.endpoint"},
		{"disabled tracing not checked", func(c *Config) { c.Tracing.Exporter = "zipkin" }, ""},
		{"uppercase level", func(c *Config) { c.Logging.Level = "DEBUG" }, ""},
		{"empty schedule", func(c *Config) { c.Store.PruneSchedule = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewTestConfig().Build()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if len(verr.Errors) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(verr.Errors), verr)
			}
			if verr.Errors[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Errors[0].Field, tt.wantField)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "store.path", Message: "required"}}}
	if got, want := single.Error(), "configuration validation failed: store.path: required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	multi := ValidationError{Errors: []FieldError{
		{Field: "a", Message: "x"},
		{Field: "b", Message: "y"},
	}}
	got := multi.Error()
	if !strings.HasPrefix(got, "configuration validation failed with 2 errors:") {
		t.Errorf("Error() = %q", got)
	}
	if !strings.Contains(got, "  - a: x\n") || !strings.Contains(got, "  - b: y\n") {
		t.Errorf("Error() = %q, missing field lines", got)
	}

	if got := (ValidationError{}).Error(); got != "configuration validation failed" {
		t.Errorf("empty Error() = %q", got)
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := NewTestConfig().Build()
	cfg.Logging.Level = "loud"
	cfg.Logging.Format = "xml"
	cfg.Store.Backend = "etcd"

	var verr ValidationError
	if err := Validate(cfg); !errors.As(err, &verr) {
		t.Fatalf("Validate() = %v, want ValidationError", err)
	}
	if len(verr.Errors) != 3 {
		t.Errorf("got %d errors, want 3", len(verr.Errors))
	}
}
