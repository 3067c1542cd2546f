package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder whose configuration is valid
// and uses the in-memory store.
func NewTestConfig() *ConfigBuilder {
	cfg := Config{Store: StoreConfig{Backend: "memory"}}
	ApplyDefaults(&cfg)
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithEncoding sets the dump encoding.
func (b *ConfigBuilder) WithEncoding(label string) *ConfigBuilder {
	b.cfg.RPSL.Encoding = label
	return b
}

// WithStorePath switches to the SQLite backend at path.
func (b *ConfigBuilder) WithStorePath(path string) *ConfigBuilder {
	b.cfg.Store.Backend = "sqlite"
	b.cfg.Store.Path = path
	return b
}

// WithWatch sets the watched path and debounce.
func (b *ConfigBuilder) WithWatch(path string, debounce time.Duration) *ConfigBuilder {
	b.cfg.Watch.Path = path
	b.cfg.Watch.Debounce = debounce
	return b
}

// WithLoggingLevel sets the logging level.
func (b *ConfigBuilder) WithLoggingLevel(level string) *ConfigBuilder {
	b.cfg.Logging.Level = level
	return b
}

// WithMetrics enables metrics on addr.
func (b *ConfigBuilder) WithMetrics(addr string) *ConfigBuilder {
	b.cfg.Metrics.Enabled = true
	b.cfg.Metrics.ListenAddress = addr
	return b
}
