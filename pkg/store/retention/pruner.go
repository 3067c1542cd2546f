package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SichangHe/parse-rpsl-policy/pkg/store"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to keep runs.
	// 0 keeps runs forever.
	RetentionDays int

	// MaxRuns is the maximum number of runs to keep.
	// 0 means unlimited.
	MaxRuns int

	// PruneSchedule is a cron expression for scheduled pruning.
	// Example: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: 30,
		MaxRuns:       0,
		PruneSchedule: "0 3 * * *",
	}
}

// Pruner enforces retention rules on ingest runs.
type Pruner struct {
	store     store.Store
	config    *Config
	logger    *slog.Logger
	scheduler *Scheduler
	now       func() time.Time

	// OnPrune is called after every prune with the number of runs
	// deleted. Optional.
	OnPrune func(deleted int64)
}

// NewPruner creates a new retention pruner.
func NewPruner(st store.Store, config *Config) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}

	pruner := &Pruner{
		store:  st,
		config: config,
		logger: slog.Default().With("component", "store.retention"),
		now:    time.Now,
	}
	pruner.scheduler = NewScheduler(pruner)

	return pruner
}

// Prune deletes runs older than the retention period, then the oldest
// runs beyond MaxRuns. Runs still in progress are never deleted.
// It returns the number of runs deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.config.RetentionDays <= 0 && p.config.MaxRuns <= 0 {
		p.logger.Debug("retention disabled, nothing to prune")
		return 0, nil
	}

	runs, err := p.store.ListRuns(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to list runs: %w", err)
	}

	// runs are newest first
	var expired []string
	kept := 0
	cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays)
	for _, run := range runs {
		if run.Status == store.RunRunning {
			continue
		}
		if p.config.RetentionDays > 0 && run.StartedAt.Before(cutoff) {
			expired = append(expired, run.ID)
			continue
		}
		kept++
		if p.config.MaxRuns > 0 && kept > p.config.MaxRuns {
			expired = append(expired, run.ID)
		}
	}

	if len(expired) == 0 {
		p.logger.Debug("no runs pruned",
			"runs", len(runs),
			"retention_days", p.config.RetentionDays,
			"max_runs", p.config.MaxRuns,
		)
		p.notify(0)
		return 0, nil
	}

	deleted, err := p.store.DeleteRuns(ctx, expired)
	if err != nil {
		return 0, fmt.Errorf("failed to delete runs: %w", err)
	}

	p.logger.Info("run pruning completed",
		"deleted_count", deleted,
		"retention_days", p.config.RetentionDays,
		"max_runs", p.config.MaxRuns,
	)
	p.notify(deleted)

	return deleted, nil
}

func (p *Pruner) notify(deleted int64) {
	if p.OnPrune != nil {
		p.OnPrune(deleted)
	}
}

// Start starts the automatic pruning scheduler.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the automatic pruning scheduler.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
