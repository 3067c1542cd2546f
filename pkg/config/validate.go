package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/robfig/cron/v3"
	"golang.org/x/text/encoding/htmlindex"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "store.path").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateParser(&cfg.Parser)...)
	errs = append(errs, validateRPSL(&cfg.RPSL)...)
	errs = append(errs, validateStore(&cfg.Store)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)
	errs = append(errs, validateMetrics(&cfg.Metrics)...)
	errs = append(errs, validateTracing(&cfg.Tracing)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateParser(cfg *ParserConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxInputBytes <= 0 {
		errs = append(errs, FieldError{
			Field:   "parser.max_input_bytes",
			Message: "max input bytes must be positive",
		})
	}
	if cfg.MaxDepth <= 0 {
		errs = append(errs, FieldError{
			Field:   "parser.max_depth",
			Message: "max depth must be positive",
		})
	}

	return errs
}

func validateRPSL(cfg *RPSLConfig) []FieldError {
	var errs []FieldError

	if _, err := htmlindex.Get(cfg.Encoding); err != nil {
		errs = append(errs, FieldError{
			Field:   "rpsl.encoding",
			Message: fmt.Sprintf("unknown encoding %q", cfg.Encoding),
		})
	}
	if cfg.Workers < 0 {
		errs = append(errs, FieldError{
			Field:   "rpsl.workers",
			Message: "workers must be non-negative",
		})
	}
	for i, attr := range cfg.Attributes {
		if attr != "mp-import" && attr != "import" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("rpsl.attributes[%d]", i),
				Message: fmt.Sprintf("unsupported attribute %q: must be 'mp-import' or 'import'", attr),
			})
		}
	}
	errs = append(errs, validateExtensions("rpsl.extensions", cfg.Extensions)...)

	return errs
}

func validateStore(cfg *StoreConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "sqlite":
		if cfg.Path == "" {
			errs = append(errs, FieldError{
				Field:   "store.path",
				Message: "path is required when backend is 'sqlite'",
			})
		}
	case "memory":
	default:
		errs = append(errs, FieldError{
			Field:   "store.backend",
			Message: fmt.Sprintf("invalid backend %q: must be 'sqlite' or 'memory'", cfg.Backend),
		})
	}

	if cfg.BusyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "store.busy_timeout",
			Message: "busy timeout must be non-negative",
		})
	}
	if cfg.RetentionDays < 0 {
		errs = append(errs, FieldError{
			Field:   "store.retention_days",
			Message: "retention days must be non-negative",
		})
	}
	if cfg.MaxRuns < 0 {
		errs = append(errs, FieldError{
			Field:   "store.max_runs",
			Message: "max runs must be non-negative",
		})
	}
	if cfg.PruneSchedule != "" {
		if _, err := cron.ParseStandard(cfg.PruneSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "store.prune_schedule",
				Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.PruneSchedule, err),
			})
		}
	}

	return errs
}

func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError

	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}
	if cfg.MaxRetries < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.max_retries",
			Message: "max retries must be non-negative",
		})
	}
	errs = append(errs, validateExtensions("watch.extensions", cfg.Extensions)...)

	return errs
}

func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Level)] {
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(cfg.Format)] {
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json' or 'text'", cfg.Format),
		})
	}

	return errs
}

func validateMetrics(cfg *MetricsConfig) []FieldError {
	var errs []FieldError

	if !cfg.Enabled {
		return errs
	}

	if !strings.HasPrefix(cfg.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "metrics.path",
			Message: "metrics path must start with '/'",
		})
	}
	if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		errs = append(errs, FieldError{
			Field:   "metrics.listen_address",
			Message: fmt.Sprintf("invalid listen address %q: %v", cfg.ListenAddress, err),
		})
	}
	for i := 1; i < len(cfg.ParseDurationBuckets); i++ {
		if cfg.ParseDurationBuckets[i] <= cfg.ParseDurationBuckets[i-1] {
			errs = append(errs, FieldError{
				Field:   "metrics.parse_duration_buckets",
				Message: "buckets must be in increasing order",
			})
			break
		}
	}

	return errs
}

func validateTracing(cfg *TracingConfig) []FieldError {
	var errs []FieldError

	if !cfg.Enabled {
		return errs
	}

	switch cfg.Sampler {
	case "always", "never":
	case "ratio":
		if cfg.SampleRatio < 0 || cfg.SampleRatio > 1 {
			errs = append(errs, FieldError{
				Field:   "tracing.sample_ratio",
				Message: fmt.Sprintf("sample ratio must be between 0.0 and 1.0, got %g", cfg.SampleRatio),
			})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "tracing.sampler",
			Message: fmt.Sprintf("invalid sampler %q: must be 'always', 'never', or 'ratio'", cfg.Sampler),
		})
	}
	if cfg.Exporter != "otlp" {
		errs = append(errs, FieldError{
			Field:   "tracing.exporter",
			Message: fmt.Sprintf("invalid exporter %q: must be 'otlp'", cfg.Exporter),
		})
	}
	if _, _, err := net.SplitHostPort(cfg.Endpoint); err != nil {
		errs = append(errs, FieldError{
			Field:   "tracing.endpoint",
			Message: fmt.Sprintf("invalid endpoint %q: %v", cfg.Endpoint, err),
		})
	}
	if cfg.OTLP.Timeout < 0 {
		errs = append(errs, FieldError{
			Field:   "tracing.otlp.timeout",
			Message: "timeout must be non-negative",
		})
	}

	return errs
}

func validateExtensions(field string, exts []string) []FieldError {
	var errs []FieldError
	for i, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: fmt.Sprintf("extension %q must start with '.'", ext),
			})
		}
	}
	return errs
}
