// Package ingest reads the dumps of a source, parses the import policy of
// every aut-num and stores the results as one run.
//
//	ing := ingest.NewIngester(st, collector, nil)
//	run, err := ing.Ingest(ctx, &source.FileSource{Path: "ripe.db.gz"})
//
// A dump that cannot be read does not stop the others; all read failures
// are returned together and mark the run failed. Parse failures of single
// attributes are data, not errors: they are stored with the run.
//
// Lint does the same work without a store, and DiffRuns compares the
// stored policy of two runs.
package ingest
