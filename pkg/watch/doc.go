// Package watch re-imports RPSL dumps when they change on disk.
//
// A FileWatcher follows a dump file or directory with fsnotify and
// debounces bursts of events, so a mirror job rewriting many files causes
// a single re-import. Each re-import goes through an Importer, normally an
// *ingest.Ingester, and is retried with exponential backoff.
//
//	w, err := watch.New(cfg, ingester)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	return w.Run(ctx)
package watch
