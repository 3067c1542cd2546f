package config

import "time"

// Config is the root configuration structure for rpslpolicy.
type Config struct {
	// Parser bounds the mp-import parser.
	Parser ParserConfig `yaml:"parser"`

	// RPSL controls how IRR dumps are read.
	RPSL RPSLConfig `yaml:"rpsl"`

	// Store controls where ingest runs are persisted and how long they are
	// kept.
	Store StoreConfig `yaml:"store"`

	// Watch controls the watch command.
	Watch WatchConfig `yaml:"watch"`

	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// ParserConfig contains limits for the mp-import parser.
type ParserConfig struct {
	// MaxInputBytes is the largest attribute value the parser accepts.
	// Default: 65536
	MaxInputBytes int `yaml:"max_input_bytes"`

	// MaxDepth is the longest except/refine chain the parser accepts.
	// Default: 64
	MaxDepth int `yaml:"max_depth"`
}

// RPSLConfig contains configuration for reading RPSL dumps.
type RPSLConfig struct {
	// Encoding is the WHATWG label of the dump encoding.
	// Default: "latin1"
	Encoding string `yaml:"encoding"`

	// Workers is the number of goroutines parsing aut-num objects.
	// 0 uses one worker per CPU.
	// Default: 0
	Workers int `yaml:"workers"`

	// Attributes lists the aut-num attributes to parse.
	// Default: ["mp-import", "import"]
	Attributes []string `yaml:"attributes"`

	// Extensions lists the dump file extensions read from directories.
	// Default: [".db", ".gz", ".lz4", ".txt"]
	Extensions []string `yaml:"extensions"`
}

// StoreConfig contains configuration for run storage and retention.
type StoreConfig struct {
	// Backend selects the storage backend.
	// Options: "sqlite", "memory"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// Path is the SQLite database file.
	// Default: "data/rpsl-policy.db"
	Path string `yaml:"path"`

	// WALMode enables SQLite write-ahead logging.
	// Default: true
	WALMode *bool `yaml:"wal_mode"`

	// BusyTimeout is how long SQLite waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// RetentionDays is the number of days to keep runs. 0 keeps runs
	// forever.
	// Default: 30
	RetentionDays int `yaml:"retention_days"`

	// MaxRuns is the maximum number of runs to keep. 0 means unlimited.
	// Default: 0
	MaxRuns int `yaml:"max_runs"`

	// PruneSchedule is the cron expression for scheduled pruning.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`
}

// WatchConfig contains configuration for the watch command.
type WatchConfig struct {
	// Path is the dump file or directory to watch.
	// Default: "" (required by the watch command)
	Path string `yaml:"path"`

	// Debounce is how long to wait after the last change before
	// re-importing.
	// Default: 2s
	Debounce time.Duration `yaml:"debounce"`

	// Extensions lists the file extensions that trigger a re-import.
	// Default: [".db", ".gz", ".lz4", ".txt"]
	Extensions []string `yaml:"extensions"`

	// MaxRetries is the number of attempts for a failed re-import.
	// Default: 3
	MaxRetries int `yaml:"max_retries"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is where the watch command serves metrics.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "rpsl"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "policy"
	Subsystem string `yaml:"subsystem"`

	// ParseDurationBuckets defines histogram buckets for the parse
	// duration of one attribute (seconds).
	// Default: [0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01]
	ParseDurationBuckets []float64 `yaml:"parse_duration_buckets"`
}

// TracingConfig contains OpenTelemetry tracing configuration. Ingest runs
// and the dumps they read are exported as spans.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of runs to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Exporter determines the span exporter.
	// Options: "otlp"
	// Default: "otlp"
	Exporter string `yaml:"exporter"`

	// Endpoint is the OTLP gRPC collector address.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name attached to every span.
	// Default: "rpslpolicy"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for the collector connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export call.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
