package source

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FileSource reads dumps from a file or a directory tree.
type FileSource struct {
	// Path is a dump file or a directory searched recursively.
	Path string
	// Extensions filters directory entries, e.g. ".db", ".gz".
	// Empty means every non-hidden file. A file Path is never filtered.
	Extensions []string
}

// Dumps implements Source.
func (s *FileSource) Dumps(ctx context.Context) ([]*Dump, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, fmt.Errorf("dump path: %w", err)
	}
	if !info.IsDir() {
		return []*Dump{fileDump(s.Path, filepath.Base(s.Path), info.Size())}, nil
	}

	var dumps []*Dump
	err = filepath.WalkDir(s.Path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(s.Path, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && isHidden(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(rel) || !d.Type().IsRegular() || !matchExtension(rel, s.Extensions) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		dumps = append(dumps, fileDump(p, rel, info.Size()))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.Path, err)
	}

	sort.Slice(dumps, func(i, j int) bool { return dumps[i].Name < dumps[j].Name })
	return dumps, nil
}

func (s *FileSource) String() string {
	return "file:" + s.Path
}

func fileDump(p, name string, size int64) *Dump {
	return &Dump{
		Name: name,
		Size: size,
		open: func() (io.ReadCloser, error) {
			return os.Open(p)
		},
	}
}
