// Package source locates RPSL dump files.
//
// A Source lists Dumps; each Dump opens a decompressed byte stream. Three
// implementations are provided:
//
//   - FileSource: a single file or a directory tree on disk
//   - GitSource: files of a local git repository at a revision, read from
//     the object store without touching the work tree
//   - MemorySource: in-memory dumps for tests
//
// Files ending in .gz or .lz4 are decompressed transparently.
//
// # Basic Usage
//
//	src := &source.FileSource{Path: "/var/lib/irr", Extensions: []string{".db", ".gz"}}
//	dumps, err := src.Dumps(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, d := range dumps {
//	    rc, err := d.Open()
//	    ...
//	}
package source
