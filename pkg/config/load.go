package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "RPSLPOLICY_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention RPSLPOLICY_SECTION_FIELD (e.g., RPSLPOLICY_STORE_PATH).
// Environment variables always take precedence over file-based configuration.
//
// An empty path skips the file and starts from the defaults.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = NewDefaultConfig()
	} else {
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Unparseable values are reported as a ValidationError.
func applyEnvOverrides(cfg *Config) error {
	var errs []FieldError

	str := func(name string, dst *string) {
		if val := os.Getenv(EnvPrefix + name); val != "" {
			*dst = val
		}
	}
	list := func(name string, dst *[]string) {
		if val := os.Getenv(EnvPrefix + name); val != "" {
			*dst = splitList(val)
		}
	}
	integer := func(name string, dst *int) {
		if val := os.Getenv(EnvPrefix + name); val != "" {
			i, err := strconv.Atoi(val)
			if err != nil {
				errs = append(errs, envError(name, val, "an integer"))
				return
			}
			*dst = i
		}
	}
	boolean := func(name string, dst *bool) {
		if val := os.Getenv(EnvPrefix + name); val != "" {
			b, err := strconv.ParseBool(val)
			if err != nil {
				errs = append(errs, envError(name, val, "a boolean"))
				return
			}
			*dst = b
		}
	}
	duration := func(name string, dst *time.Duration) {
		if val := os.Getenv(EnvPrefix + name); val != "" {
			d, err := time.ParseDuration(val)
			if err != nil {
				errs = append(errs, envError(name, val, "a duration"))
				return
			}
			*dst = d
		}
	}

	// Parser overrides
	integer("PARSER_MAX_INPUT_BYTES", &cfg.Parser.MaxInputBytes)
	integer("PARSER_MAX_DEPTH", &cfg.Parser.MaxDepth)

	// RPSL overrides
	str("RPSL_ENCODING", &cfg.RPSL.Encoding)
	integer("RPSL_WORKERS", &cfg.RPSL.Workers)
	list("RPSL_ATTRIBUTES", &cfg.RPSL.Attributes)
	list("RPSL_EXTENSIONS", &cfg.RPSL.Extensions)

	// Store overrides
	str("STORE_BACKEND", &cfg.Store.Backend)
	str("STORE_PATH", &cfg.Store.Path)
	if os.Getenv(EnvPrefix+"STORE_WAL_MODE") != "" {
		wal := cfg.Store.WALEnabled()
		boolean("STORE_WAL_MODE", &wal)
		cfg.Store.WALMode = &wal
	}
	duration("STORE_BUSY_TIMEOUT", &cfg.Store.BusyTimeout)
	integer("STORE_RETENTION_DAYS", &cfg.Store.RetentionDays)
	integer("STORE_MAX_RUNS", &cfg.Store.MaxRuns)
	str("STORE_PRUNE_SCHEDULE", &cfg.Store.PruneSchedule)

	// Watch overrides
	str("WATCH_PATH", &cfg.Watch.Path)
	duration("WATCH_DEBOUNCE", &cfg.Watch.Debounce)
	list("WATCH_EXTENSIONS", &cfg.Watch.Extensions)
	integer("WATCH_MAX_RETRIES", &cfg.Watch.MaxRetries)

	// Telemetry overrides
	str("LOGGING_LEVEL", &cfg.Logging.Level)
	str("LOGGING_FORMAT", &cfg.Logging.Format)
	boolean("LOGGING_ADD_SOURCE", &cfg.Logging.AddSource)
	boolean("METRICS_ENABLED", &cfg.Metrics.Enabled)
	str("METRICS_LISTEN_ADDRESS", &cfg.Metrics.ListenAddress)
	str("METRICS_PATH", &cfg.Metrics.Path)
	str("METRICS_NAMESPACE", &cfg.Metrics.Namespace)
	str("METRICS_SUBSYSTEM", &cfg.Metrics.Subsystem)
	boolean("TRACING_ENABLED", &cfg.Tracing.Enabled)
	str("TRACING_SAMPLER", &cfg.Tracing.Sampler)
	str("TRACING_ENDPOINT", &cfg.Tracing.Endpoint)
	str("TRACING_SERVICE_NAME", &cfg.Tracing.ServiceName)
	boolean("TRACING_OTLP_INSECURE", &cfg.Tracing.OTLP.Insecure)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func envError(name, val, want string) FieldError {
	return FieldError{
		Field:   EnvPrefix + name,
		Message: fmt.Sprintf("%q is not %s", val, want),
	}
}

// splitList splits a comma-separated environment value, dropping empty
// items.
func splitList(val string) []string {
	var items []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
