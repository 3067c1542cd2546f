// Package retention removes old ingest runs from a store.
//
// A Pruner applies two rules: runs that started more than RetentionDays
// ago are deleted, and only the newest MaxRuns runs are kept. Either rule
// is disabled by setting it to zero. A Scheduler runs the Pruner on a cron
// schedule:
//
//	pruner := retention.NewPruner(st, &retention.Config{
//		RetentionDays: 30,
//		MaxRuns:       100,
//		PruneSchedule: "0 3 * * *",
//	})
//	if err := pruner.Start(ctx); err != nil {
//		return err
//	}
//	defer pruner.Stop()
package retention
