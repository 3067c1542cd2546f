// Package logging provides structured logging over log/slog.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//	if err != nil {
//	    return err
//	}
//	logger.SetDefault()
//
// Ingest code stores the run ID and source in its context; every record
// logged with that context carries them:
//
//	ctx = logging.WithRunID(ctx, run.ID)
//	slog.InfoContext(ctx, "ingest started")  // run_id=...
package logging
