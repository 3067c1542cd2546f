package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys. Everything lives under the "rpsl." namespace.
const (
	AttrSource   = "rpsl.source"
	AttrRevision = "rpsl.revision"
	AttrRunID    = "rpsl.run_id"
	AttrDump     = "rpsl.dump"
	AttrDumpSize = "rpsl.dump.size"

	AttrDumps         = "rpsl.dumps"
	AttrObjects       = "rpsl.objects"
	AttrAutNums       = "rpsl.aut_nums"
	AttrImports       = "rpsl.imports"
	AttrImportsFailed = "rpsl.imports.failed"
	AttrMalformed     = "rpsl.malformed_lines"

	AttrTrigger = "rpsl.watch.trigger"
)

// SetRunAttributes identifies the ingest run a span belongs to.
func SetRunAttributes(span trace.Span, runID, source string) {
	span.SetAttributes(
		attribute.String(AttrRunID, runID),
		attribute.String(AttrSource, source),
	)
}

// SetDumpAttributes identifies a single dump file.
func SetDumpAttributes(span trace.Span, name, revision string, size int64) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrDump, name),
		attribute.Int64(AttrDumpSize, size),
	}
	if revision != "" {
		attrs = append(attrs, attribute.String(AttrRevision, revision))
	}
	span.SetAttributes(attrs...)
}

// Counts are the totals recorded on run and dump spans.
type Counts struct {
	Dumps     int
	Objects   int
	AutNums   int
	Imports   int
	Failed    int
	Malformed int
}

// SetCounts records c on span. Zero dump and malformed counts are left out.
func SetCounts(span trace.Span, c Counts) {
	attrs := []attribute.KeyValue{
		attribute.Int(AttrObjects, c.Objects),
		attribute.Int(AttrAutNums, c.AutNums),
		attribute.Int(AttrImports, c.Imports),
		attribute.Int(AttrImportsFailed, c.Failed),
	}
	if c.Dumps > 0 {
		attrs = append(attrs, attribute.Int(AttrDumps, c.Dumps))
	}
	if c.Malformed > 0 {
		attrs = append(attrs, attribute.Int(AttrMalformed, c.Malformed))
	}
	span.SetAttributes(attrs...)
}
