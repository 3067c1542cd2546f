// Package telemetry groups the observability packages of rpslpolicy.
//
//   - logging: slog setup and context fields (run ID, source, dump)
//   - metrics: Prometheus counters and histograms for parses and runs
//   - tracing: OpenTelemetry spans for ingest runs and their dumps
//   - health: liveness and readiness probes of the watch daemon
//
// Metrics and the probes share one HTTP server, started by the watch
// command when metrics.enabled is set.
package telemetry
