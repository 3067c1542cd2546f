package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps runs and records in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	runs    map[string]*Run
	records map[string][]*Record // By run ID
	closed  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:    make(map[string]*Run),
		records: make(map[string][]*Record),
	}
}

// CreateRun implements Store.
func (m *MemoryStore) CreateRun(ctx context.Context, run *Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check("create_run"); err != nil {
		return err
	}
	if _, ok := m.runs[run.ID]; ok {
		return NewStorageError("memory", "create_run", fmt.Errorf("run %s already exists", run.ID))
	}
	clone := *run
	m.runs[run.ID] = &clone
	return nil
}

// FinishRun implements Store.
func (m *MemoryStore) FinishRun(ctx context.Context, run *Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check("finish_run"); err != nil {
		return err
	}
	if _, ok := m.runs[run.ID]; !ok {
		return NewStorageError("memory", "finish_run", fmt.Errorf("run %s: %w", run.ID, ErrNotFound))
	}
	clone := *run
	m.runs[run.ID] = &clone
	return nil
}

// GetRun implements Store.
func (m *MemoryStore) GetRun(ctx context.Context, id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *run
	return &clone, nil
}

// ListRuns implements Store.
func (m *MemoryStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]*Run, 0, len(m.runs))
	for _, run := range m.runs {
		clone := *run
		runs = append(runs, &clone)
	}
	sortRuns(runs)

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// AddRecords implements Store.
func (m *MemoryStore) AddRecords(ctx context.Context, records []*Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check("add_records"); err != nil {
		return err
	}
	for _, r := range records {
		if _, ok := m.runs[r.RunID]; !ok {
			return NewStorageError("memory", "add_records", fmt.Errorf("run %s: %w", r.RunID, ErrNotFound))
		}
	}
	for _, r := range records {
		clone := *r
		m.records[r.RunID] = append(m.records[r.RunID], &clone)
	}
	return nil
}

// QueryRecords implements Store.
func (m *MemoryStore) QueryRecords(ctx context.Context, q *Query) ([]*Record, error) {
	matched := m.match(q)

	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return []*Record{}, nil
		}
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

// CountRecords implements Store.
func (m *MemoryStore) CountRecords(ctx context.Context, q *Query) (int64, error) {
	return int64(len(m.match(q))), nil
}

func (m *MemoryStore) match(q *Query) []*Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var runIDs []string
	if q.RunID != "" {
		runIDs = []string{q.RunID}
	} else {
		runs := make([]*Run, 0, len(m.runs))
		for _, run := range m.runs {
			runs = append(runs, run)
		}
		sortRuns(runs)
		for i := len(runs) - 1; i >= 0; i-- {
			runIDs = append(runIDs, runs[i].ID)
		}
	}

	matched := []*Record{}
	for _, id := range runIDs {
		for _, r := range m.records[id] {
			if q.AutNum != "" && !strings.EqualFold(r.AutNum, q.AutNum) {
				continue
			}
			if q.Attribute != "" && r.Attribute != q.Attribute {
				continue
			}
			if q.ErrorKind != "" && r.ErrorKind != q.ErrorKind {
				continue
			}
			if q.OnlyErrors && r.OK() {
				continue
			}
			clone := *r
			matched = append(matched, &clone)
		}
	}
	return matched
}

// DeleteRuns implements Store.
func (m *MemoryStore) DeleteRuns(ctx context.Context, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check("delete_runs"); err != nil {
		return 0, err
	}
	var deleted int64
	for _, id := range ids {
		if _, ok := m.runs[id]; !ok {
			continue
		}
		delete(m.runs, id)
		delete(m.records, id)
		deleted++
	}
	return deleted, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MemoryStore) check(op string) error {
	if m.closed {
		return NewStorageError("memory", op, fmt.Errorf("store is closed"))
	}
	return nil
}

// sortRuns orders runs newest first, breaking ties by ID.
func sortRuns(runs []*Run) {
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].StartedAt.After(runs[j].StartedAt)
		}
		return runs[i].ID < runs[j].ID
	})
}
