// Package tracing exports ingest runs as OpenTelemetry traces.
//
// Each run is one trace: a root "ingest.run" span with an "ingest.dump"
// child per dump file. The watch command adds a "watch.import" parent
// span around the retries of one re-import.
//
// Spans go to an OTLP gRPC collector:
//
//	tracing:
//	  enabled: true
//	  endpoint: otel-collector:4317
//	  otlp:
//	    insecure: true
//	  sampler: ratio
//	  sample_ratio: 0.25
//
// With tracing disabled, or on a nil *Tracer, Start returns no-op spans.
package tracing
