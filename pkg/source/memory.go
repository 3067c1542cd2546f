package source

import (
	"context"
	"io"
	"sort"
	"strings"
)

// MemorySource serves dumps held in memory, keyed by name.
type MemorySource struct {
	Label string
	Files map[string]string
}

// NewMemorySource creates a memory source with the given files.
func NewMemorySource(label string, files map[string]string) *MemorySource {
	return &MemorySource{Label: label, Files: files}
}

// Dumps implements Source.
func (s *MemorySource) Dumps(ctx context.Context) ([]*Dump, error) {
	names := make([]string, 0, len(s.Files))
	for name := range s.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	dumps := make([]*Dump, 0, len(names))
	for _, name := range names {
		content := s.Files[name]
		dumps = append(dumps, &Dump{
			Name: name,
			Size: int64(len(content)),
			open: func() (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader(content)), nil
			},
		})
	}
	return dumps, nil
}

func (s *MemorySource) String() string {
	return "memory:" + s.Label
}
