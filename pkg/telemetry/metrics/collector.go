package metrics

import (
	"sync"
	"time"

	"github.com/SichangHe/parse-rpsl-policy/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// otherClass replaces object classes beyond the cardinality limit.
const otherClass = "other"

// Collector is the entry point for all Prometheus metrics. Every Record
// method is a no-op when metrics are disabled, so callers never need to
// check.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	parseMetrics  *ParseMetrics
	ingestMetrics *IngestMetrics

	// Object classes come from dump contents; cap them.
	classLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a new registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "rpsl",
//		Subsystem: "policy",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.ParseDurationBuckets) == 0 {
		cfg.ParseDurationBuckets = config.DefaultParseDurationBuckets
	}

	c := &Collector{
		config:       cfg,
		registry:     registry,
		classLimiter: NewCardinalityLimiter(64),
	}

	c.parseMetrics = NewParseMetrics(cfg, registry)
	c.ingestMetrics = NewIngestMetrics(cfg, registry)

	return c
}

// Enabled reports whether metrics are recorded.
func (c *Collector) Enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordParse records one parsed import attribute. kind is the error kind,
// or empty when the attribute parsed.
func (c *Collector) RecordParse(attribute, kind string, duration time.Duration) {
	if !c.Enabled() {
		return
	}
	c.parseMetrics.RecordParse(attribute, kind, duration)
}

// RecordObjects records the per-class object counts of one dump.
func (c *Collector) RecordObjects(classes map[string]int, malformed int) {
	if !c.Enabled() {
		return
	}
	for class, n := range classes {
		if !c.classLimiter.Allow(class) {
			class = otherClass
		}
		c.ingestMetrics.RecordObjects(class, n)
	}
	if malformed > 0 {
		c.ingestMetrics.RecordMalformed(malformed)
	}
}

// RecordRun records a finished ingest run.
//
// Parameters:
//   - status: "completed" or "failed"
//   - duration: Run duration
//   - imports: Import attributes parsed
//   - failed: Import attributes that did not parse
func (c *Collector) RecordRun(status string, duration time.Duration, imports, failed int) {
	if !c.Enabled() {
		return
	}
	c.ingestMetrics.RecordRun(status, duration, imports, failed)
}

// RecordPruned records runs removed by retention.
func (c *Collector) RecordPruned(n int64) {
	if !c.Enabled() || n <= 0 {
		return
	}
	c.ingestMetrics.RecordPruned(n)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether a label value may be used: it was seen before or
// the limit has not been reached.
func (cl *CardinalityLimiter) Allow(label string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[label]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[label]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[label] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
