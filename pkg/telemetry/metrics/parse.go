package metrics

import (
	"time"

	"github.com/SichangHe/parse-rpsl-policy/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ParseMetrics tracks metrics related to parsing import attributes.
//
// Metrics:
//   - rpsl_policy_parses_total: Parsed attributes by attribute and result
//   - rpsl_policy_parse_errors_total: Failed parses by error kind
//   - rpsl_policy_parse_duration_seconds: Parse duration of one attribute
type ParseMetrics struct {
	parsesTotal   *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	parseDuration *prometheus.HistogramVec
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		parsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parses_total",
				Help:      "Total number of import attributes parsed",
			},
			[]string{"attribute", "result"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_errors_total",
				Help:      "Total number of failed parses by error kind",
			},
			[]string{"kind"},
		),

		parseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_duration_seconds",
				Help:      "Duration of parsing one import attribute in seconds",
				Buckets:   cfg.ParseDurationBuckets,
			},
			[]string{"attribute"},
		),
	}

	registry.MustRegister(
		pm.parsesTotal,
		pm.errorsTotal,
		pm.parseDuration,
	)

	return pm
}

// RecordParse records one parsed attribute. kind is empty on success.
func (pm *ParseMetrics) RecordParse(attribute, kind string, duration time.Duration) {
	result := "ok"
	if kind != "" {
		result = "error"
		pm.errorsTotal.WithLabelValues(kind).Inc()
	}
	pm.parsesTotal.WithLabelValues(attribute, result).Inc()
	pm.parseDuration.WithLabelValues(attribute).Observe(duration.Seconds())
}
