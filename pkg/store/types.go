package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RunStatus is the state of an ingest run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run is one ingest pass over a source.
type Run struct {
	ID         string    `json:"id" yaml:"id"`                                       // UUID v4
	Source     string    `json:"source" yaml:"source"`                               // Source description
	Revision   string    `json:"revision,omitempty" yaml:"revision,omitempty"`       // Git commit, if any
	Status     RunStatus `json:"status" yaml:"status"`                               // running, completed, failed
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`                       // When the run began
	FinishedAt time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"` // Zero while running

	Dumps   int `json:"dumps" yaml:"dumps"`       // Dump files read
	Objects int `json:"objects" yaml:"objects"`   // RPSL objects read
	AutNums int `json:"aut_nums" yaml:"aut_nums"` // aut-num objects parsed
	Imports int `json:"imports" yaml:"imports"`   // Import attributes parsed
	Failed  int `json:"failed" yaml:"failed"`     // Import attributes that failed

	Error string `json:"error,omitempty" yaml:"error,omitempty"` // Why the run failed
}

// NewRun creates a running run with a fresh ID.
func NewRun(source string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Source:    source,
		Status:    RunRunning,
		StartedAt: time.Now().UTC(),
	}
}

// Finish marks the run completed, or failed when err is non-nil.
func (r *Run) Finish(err error) {
	r.FinishedAt = time.Now().UTC()
	if err != nil {
		r.Status = RunFailed
		r.Error = err.Error()
		return
	}
	r.Status = RunCompleted
}

// Duration returns how long the run took, or has taken so far.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Record is the parse result of one import attribute.
type Record struct {
	RunID     string `json:"run_id" yaml:"run_id"`
	AutNum    string `json:"aut_num" yaml:"aut_num"`     // e.g. "AS3333"
	Dump      string `json:"dump" yaml:"dump"`           // Dump name within the source
	Attribute string `json:"attribute" yaml:"attribute"` // "mp-import" or "import"
	Line      int    `json:"line" yaml:"line"`           // Line in the dump
	Value     string `json:"value" yaml:"value"`         // Folded attribute value

	Tree string `json:"tree,omitempty" yaml:"tree,omitempty"` // JSON tree on success

	ErrorKind   string `json:"error_kind,omitempty" yaml:"error_kind,omitempty"` // Parse error kind
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`           // Parse error message
	ErrorOffset int    `json:"error_offset,omitempty" yaml:"error_offset,omitempty"`
}

// OK reports whether the attribute parsed.
func (r *Record) OK() bool {
	return r.ErrorKind == "" && r.Error == ""
}

// Query selects records. Empty fields do not filter.
type Query struct {
	RunID      string // Required by SQLiteStore for anything but Count
	AutNum     string // Case-insensitive aut-num key
	Attribute  string
	ErrorKind  string
	OnlyErrors bool
	Limit      int // Max records to return, 0 for all
	Offset     int
}

// Store persists runs and records.
// Implementations must be safe for concurrent use.
type Store interface {
	// CreateRun inserts a new run.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun updates the status, counters and finish time of a run.
	FinishRun(ctx context.Context, run *Run) error

	// GetRun returns the run with the given ID, or ErrNotFound.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns runs newest first. A limit of 0 returns all runs.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	// AddRecords appends records to their runs.
	AddRecords(ctx context.Context, records []*Record) error

	// QueryRecords returns records matching q in insertion order.
	QueryRecords(ctx context.Context, q *Query) ([]*Record, error)

	// CountRecords returns the number of records matching q, ignoring
	// Limit and Offset.
	CountRecords(ctx context.Context, q *Query) (int64, error)

	// DeleteRuns removes runs and their records. It returns the number of
	// runs deleted.
	DeleteRuns(ctx context.Context, ids []string) (int64, error)

	// Close releases resources held by the store.
	Close() error
}

// LatestRun returns the most recent run of s, or ErrNotFound.
func LatestRun(ctx context.Context, s Store) (*Run, error) {
	runs, err := s.ListRuns(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrNotFound
	}
	return runs[0], nil
}
