package metrics

import (
	"time"

	"github.com/SichangHe/parse-rpsl-policy/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// IngestMetrics tracks ingest runs and what they read.
//
// Metrics:
//   - rpsl_policy_runs_total: Ingest runs by status
//   - rpsl_policy_run_duration_seconds: Ingest run duration
//   - rpsl_policy_objects_total: RPSL objects read by class
//   - rpsl_policy_malformed_lines_total: Dump lines that were not understood
//   - rpsl_policy_last_run_imports: Imports parsed by the last run, by result
//   - rpsl_policy_pruned_runs_total: Runs removed by retention
type IngestMetrics struct {
	runsTotal      *prometheus.CounterVec
	runDuration    prometheus.Histogram
	objectsTotal   *prometheus.CounterVec
	malformedTotal prometheus.Counter
	lastRunImports *prometheus.GaugeVec
	prunedTotal    prometheus.Counter
}

// NewIngestMetrics creates and registers ingest metrics with the provided registry.
func NewIngestMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *IngestMetrics {
	im := &IngestMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of ingest runs by status",
			},
			[]string{"status"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of ingest runs in seconds",
				// Full IRR dumps take minutes
				Buckets: []float64{0.1, 1, 5, 15, 30, 60, 120, 300, 600},
			},
		),

		objectsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "objects_total",
				Help:      "Total number of RPSL objects read by class",
			},
			[]string{"class"},
		),

		malformedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "malformed_lines_total",
				Help:      "Total number of dump lines that were not understood",
			},
		),

		lastRunImports: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_run_imports",
				Help:      "Import attributes parsed by the last completed run",
			},
			[]string{"result"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "pruned_runs_total",
				Help:      "Total number of runs removed by retention",
			},
		),
	}

	registry.MustRegister(
		im.runsTotal,
		im.runDuration,
		im.objectsTotal,
		im.malformedTotal,
		im.lastRunImports,
		im.prunedTotal,
	)

	return im
}

// RecordRun records a finished run.
func (im *IngestMetrics) RecordRun(status string, duration time.Duration, imports, failed int) {
	im.runsTotal.WithLabelValues(status).Inc()
	im.runDuration.Observe(duration.Seconds())
	if status == "completed" {
		im.lastRunImports.WithLabelValues("ok").Set(float64(imports - failed))
		im.lastRunImports.WithLabelValues("error").Set(float64(failed))
	}
}

// RecordObjects adds n objects of class.
func (im *IngestMetrics) RecordObjects(class string, n int) {
	im.objectsTotal.WithLabelValues(class).Add(float64(n))
}

// RecordMalformed adds n malformed lines.
func (im *IngestMetrics) RecordMalformed(n int) {
	im.malformedTotal.Add(float64(n))
}

// RecordPruned adds n pruned runs.
func (im *IngestMetrics) RecordPruned(n int64) {
	im.prunedTotal.Add(float64(n))
}
