// Package store persists ingest runs and the parse result of every import
// attribute they saw.
//
// A Run is one pass over a source (a dump directory, a git revision). Each
// import attribute becomes a Record holding the raw value and either the
// JSON tree produced by ast.Document.ToMap or the parse error.
//
// # Backends
//
//   - MemoryStore: maps guarded by a mutex, for tests and one-shot commands
//   - SQLiteStore: a single database file (modernc.org/sqlite, no cgo)
//
// Both implement Store and are safe for concurrent use.
//
// # Basic Usage
//
//	st, err := store.NewSQLiteStore(store.DefaultSQLiteConfig())
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	run := store.NewRun("file:/var/lib/irr")
//	_ = st.CreateRun(ctx, run)
//	_ = st.AddRecords(ctx, records)
//	run.Finish(nil)
//	_ = st.FinishRun(ctx, run)
//
//	failed, _ := st.QueryRecords(ctx, &store.Query{RunID: run.ID, OnlyErrors: true})
package store
