package config

import "time"

// Default values for configuration fields.
const (
	// Parser defaults
	DefaultParserMaxInputBytes = 64 * 1024
	DefaultParserMaxDepth      = 64

	// RPSL defaults
	DefaultRPSLEncoding = "latin1"
	DefaultRPSLWorkers  = 0

	// Store defaults
	DefaultStoreBackend       = "sqlite"
	DefaultStorePath          = "data/rpsl-policy.db"
	DefaultStoreWALMode       = true
	DefaultStoreBusyTimeout   = 5 * time.Second
	DefaultStoreRetentionDays = 30
	DefaultStoreMaxRuns       = 0
	DefaultStorePruneSchedule = "0 3 * * *"

	// Watch defaults
	DefaultWatchDebounce   = 2 * time.Second
	DefaultWatchMaxRetries = 3

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "text"
	DefaultMetricsListenAddress = "127.0.0.1:9464"
	DefaultMetricsPath          = "/metrics"
	DefaultMetricsNamespace     = "rpsl"
	DefaultMetricsSubsystem     = "policy"
	DefaultTracingSampler       = "always"
	DefaultTracingSampleRatio   = 1.0
	DefaultTracingExporter      = "otlp"
	DefaultTracingEndpoint      = "localhost:4317"
	DefaultTracingServiceName   = "rpslpolicy"
	DefaultTracingOTLPTimeout   = 10 * time.Second
)

var (
	// DefaultRPSLAttributes are the aut-num attributes parsed by default.
	DefaultRPSLAttributes = []string{"mp-import", "import"}

	// DefaultDumpExtensions are the file extensions treated as dumps.
	DefaultDumpExtensions = []string{".db", ".gz", ".lz4", ".txt"}

	// DefaultParseDurationBuckets fit single attribute parses (10µs - 10ms).
	DefaultParseDurationBuckets = []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01}
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Parser defaults
	if cfg.Parser.MaxInputBytes == 0 {
		cfg.Parser.MaxInputBytes = DefaultParserMaxInputBytes
	}
	if cfg.Parser.MaxDepth == 0 {
		cfg.Parser.MaxDepth = DefaultParserMaxDepth
	}

	// RPSL defaults
	if cfg.RPSL.Encoding == "" {
		cfg.RPSL.Encoding = DefaultRPSLEncoding
	}
	if len(cfg.RPSL.Attributes) == 0 {
		cfg.RPSL.Attributes = append([]string(nil), DefaultRPSLAttributes...)
	}
	if len(cfg.RPSL.Extensions) == 0 {
		cfg.RPSL.Extensions = append([]string(nil), DefaultDumpExtensions...)
	}

	// Store defaults
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultStoreBackend
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultStorePath
	}
	if cfg.Store.WALMode == nil {
		wal := DefaultStoreWALMode
		cfg.Store.WALMode = &wal
	}
	if cfg.Store.BusyTimeout == 0 {
		cfg.Store.BusyTimeout = DefaultStoreBusyTimeout
	}
	if cfg.Store.RetentionDays == 0 {
		cfg.Store.RetentionDays = DefaultStoreRetentionDays
	}
	if cfg.Store.PruneSchedule == "" {
		cfg.Store.PruneSchedule = DefaultStorePruneSchedule
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultDumpExtensions...)
	}
	if cfg.Watch.MaxRetries == 0 {
		cfg.Watch.MaxRetries = DefaultWatchMaxRetries
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	// Metrics defaults
	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Metrics.ParseDurationBuckets) == 0 {
		cfg.Metrics.ParseDurationBuckets = append([]float64(nil), DefaultParseDurationBuckets...)
	}

	// Tracing defaults
	if cfg.Tracing.Sampler == "" {
		cfg.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Tracing.Exporter == "" {
		cfg.Tracing.Exporter = DefaultTracingExporter
	}
	if cfg.Tracing.Endpoint == "" {
		cfg.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Tracing.OTLP.Timeout == 0 {
		cfg.Tracing.OTLP.Timeout = DefaultTracingOTLPTimeout
	}
}

// NewDefaultConfig returns a Config with every default applied. It is
// what the CLI uses when no configuration file is given.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// WALEnabled reports whether SQLite write-ahead logging is enabled.
func (s *StoreConfig) WALEnabled() bool {
	return s.WALMode == nil || *s.WALMode
}
