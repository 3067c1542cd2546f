package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for ingest run IDs.
	RunIDKey contextKey = "run_id"

	// SourceKey is the context key for the dump source description.
	SourceKey contextKey = "source"

	// DumpKey is the context key for the dump file name.
	DumpKey contextKey = "dump"
)

// WithRunID adds an ingest run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the ingest run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithSource adds a source description to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// GetSource retrieves the source description from the context.
func GetSource(ctx context.Context) string {
	if source, ok := ctx.Value(SourceKey).(string); ok {
		return source
	}
	return ""
}

// WithDump adds a dump name to the context.
func WithDump(ctx context.Context, dump string) context.Context {
	return context.WithValue(ctx, DumpKey, dump)
}

// GetDump retrieves the dump name from the context.
func GetDump(ctx context.Context) string {
	if dump, ok := ctx.Value(DumpKey).(string); ok {
		return dump
	}
	return ""
}

// extractContextFields returns the key/value pairs of every field set in
// ctx, in a fixed order.
func extractContextFields(ctx context.Context) []any {
	var fields []any
	if v := GetRunID(ctx); v != "" {
		fields = append(fields, string(RunIDKey), v)
	}
	if v := GetSource(ctx); v != "" {
		fields = append(fields, string(SourceKey), v)
	}
	if v := GetDump(ctx); v != "" {
		fields = append(fields, string(DumpKey), v)
	}
	return fields
}
