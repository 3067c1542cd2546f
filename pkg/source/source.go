package source

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// Source lists the dumps it provides.
type Source interface {
	// Dumps returns the dumps in a stable order.
	Dumps(ctx context.Context) ([]*Dump, error)
	// String describes the source for logs and run records.
	String() string
}

// Dump is one dump file of a source.
type Dump struct {
	Name     string // Path relative to the source root
	Revision string // Commit hash for git sources, empty otherwise
	Size     int64  // Size in bytes before decompression, -1 if unknown

	open func() (io.ReadCloser, error)
}

// Open returns the dump content, decompressed according to its name.
func (d *Dump) Open() (io.ReadCloser, error) {
	rc, err := d.open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}
	return decompress(d.Name, rc)
}

// decompress wraps rc according to the file extension.
func decompress(name string, rc io.ReadCloser) (io.ReadCloser, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".gz":
		zr, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("gzip %s: %w", name, err)
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zr, rc}}, nil
	case ".lz4":
		return &stackedReader{Reader: lz4.NewReader(rc), closers: []io.Closer{rc}}, nil
	default:
		return rc, nil
	}
}

type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// matchExtension reports whether name ends in one of exts. An empty list
// matches every name. Matching is case-insensitive and exts may omit the
// leading dot.
func matchExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// isHidden reports whether any element of the slash separated path starts
// with a dot.
func isHidden(p string) bool {
	for _, elem := range strings.Split(p, "/") {
		if strings.HasPrefix(elem, ".") && elem != "." && elem != ".." {
			return true
		}
	}
	return false
}
