package retention

import (
	"context"
	"testing"
	"time"

	"github.com/SichangHe/parse-rpsl-policy/pkg/store"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// seed creates one finished run per age (in days before testNow) and
// returns their IDs in the same order.
func seed(t *testing.T, st store.Store, ages ...int) []string {
	t.Helper()
	ctx := context.Background()

	var ids []string
	for _, days := range ages {
		run := store.NewRun("memory:test")
		run.StartedAt = testNow.AddDate(0, 0, -days)
		if err := st.CreateRun(ctx, run); err != nil {
			t.Fatalf("CreateRun() failed: %v", err)
		}
		run.Status = store.RunCompleted
		run.FinishedAt = run.StartedAt.Add(time.Minute)
		if err := st.FinishRun(ctx, run); err != nil {
			t.Fatalf("FinishRun() failed: %v", err)
		}
		ids = append(ids, run.ID)
	}
	return ids
}

func newTestPruner(st store.Store, config *Config) *Pruner {
	p := NewPruner(st, config)
	p.now = func() time.Time { return testNow }
	return p
}

func remaining(t *testing.T, st store.Store) map[string]bool {
	t.Helper()
	runs, err := st.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	ids := make(map[string]bool)
	for _, run := range runs {
		ids[run.ID] = true
	}
	return ids
}

func TestPruner_ByAge(t *testing.T) {
	st := store.NewMemoryStore()
	ids := seed(t, st, 1, 10, 40, 100)

	p := newTestPruner(st, &Config{RetentionDays: 30})
	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Prune() = %d, want 2", deleted)
	}

	left := remaining(t, st)
	if !left[ids[0]] || !left[ids[1]] || left[ids[2]] || left[ids[3]] {
		t.Errorf("remaining runs = %v", left)
	}
}

func TestPruner_ByCount(t *testing.T) {
	st := store.NewMemoryStore()
	ids := seed(t, st, 1, 2, 3, 4, 5)

	p := newTestPruner(st, &Config{MaxRuns: 2})
	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if deleted != 3 {
		t.Errorf("Prune() = %d, want 3", deleted)
	}

	left := remaining(t, st)
	if len(left) != 2 || !left[ids[0]] || !left[ids[1]] {
		t.Errorf("remaining runs = %v, want the two newest", left)
	}
}

func TestPruner_AgeAndCount(t *testing.T) {
	st := store.NewMemoryStore()
	ids := seed(t, st, 1, 2, 3, 50)

	var notified int64 = -1
	p := newTestPruner(st, &Config{RetentionDays: 30, MaxRuns: 2})
	p.OnPrune = func(n int64) { notified = n }

	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Prune() = %d, want 2", deleted)
	}
	if notified != 2 {
		t.Errorf("OnPrune got %d, want 2", notified)
	}

	left := remaining(t, st)
	if len(left) != 2 || !left[ids[0]] || !left[ids[1]] {
		t.Errorf("remaining runs = %v", left)
	}
}

func TestPruner_SkipsRunningRuns(t *testing.T) {
	st := store.NewMemoryStore()
	run := store.NewRun("memory:test")
	run.StartedAt = testNow.AddDate(0, 0, -90)
	if err := st.CreateRun(context.Background(), run); err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}

	p := newTestPruner(st, &Config{RetentionDays: 30, MaxRuns: 1})
	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Prune() = %d, want 0 for a running run", deleted)
	}
}

func TestPruner_Disabled(t *testing.T) {
	st := store.NewMemoryStore()
	seed(t, st, 1, 400)

	p := newTestPruner(st, &Config{})
	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("Prune() = %d, want 0", deleted)
	}
	if n := len(remaining(t, st)); n != 2 {
		t.Errorf("remaining runs = %d, want 2", n)
	}
}

func TestPruner_DeletesRecords(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	ids := seed(t, st, 100)
	if err := st.AddRecords(ctx, []*store.Record{
		{RunID: ids[0], AutNum: "AS1", Attribute: "mp-import", Value: "from AS2 accept ANY"},
	}); err != nil {
		t.Fatalf("AddRecords() failed: %v", err)
	}

	if _, err := newTestPruner(st, &Config{RetentionDays: 30}).Prune(ctx); err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if n, _ := st.CountRecords(ctx, &store.Query{RunID: ids[0]}); n != 0 {
		t.Errorf("records after prune = %d, want 0", n)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, want 30", cfg.RetentionDays)
	}
	if cfg.PruneSchedule != "0 3 * * *" {
		t.Errorf("PruneSchedule = %q, want %q", cfg.PruneSchedule, "0 3 * * *")
	}
	if p := NewPruner(store.NewMemoryStore(), nil); p.config.RetentionDays != 30 {
		t.Errorf("NewPruner(nil config) did not apply defaults")
	}
}
