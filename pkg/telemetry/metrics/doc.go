// Package metrics provides Prometheus metrics for parsing and ingest.
//
// # Metrics
//
//   - Parse metrics: attributes parsed by result, failures by error kind,
//     and per-attribute parse duration
//   - Ingest metrics: runs by status, run duration, objects read by class,
//     malformed lines, and runs pruned by retention
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//	collector.RecordParse("mp-import", "", 40*time.Microsecond)
//	collector.RecordRun("completed", 12*time.Second, 5120, 3)
//
//	http.Handle("/metrics", collector.Handler())
package metrics
