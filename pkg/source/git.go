package source

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitSource reads dumps committed to a local git repository. Files are read
// from the commit tree, so the work tree may be dirty or absent. No remote
// operations are performed.
type GitSource struct {
	// Repository is the path of the repository (work tree or bare).
	Repository string
	// Revision is any revision go-git can resolve: a branch, tag or hash.
	// Default: HEAD
	Revision string
	// Dir restricts the search to a subdirectory of the tree.
	Dir string
	// Extensions filters file names; empty means every non-hidden file.
	Extensions []string
}

// CommitInfo describes the commit a GitSource resolved to.
type CommitInfo struct {
	Hash    string
	Author  string
	Message string
}

// Dumps implements Source. Every Dump carries the resolved commit hash as
// its Revision.
func (s *GitSource) Dumps(ctx context.Context) ([]*Dump, error) {
	commit, err := s.resolve()
	if err != nil {
		return nil, err
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to get tree: %w", err)
	}
	dir := strings.Trim(s.Dir, "/")
	if dir != "" {
		tree, err = tree.Tree(dir)
		if err != nil {
			return nil, fmt.Errorf("directory %q at %s: %w", dir, commit.Hash, err)
		}
	}

	revision := commit.Hash.String()
	var dumps []*Dump
	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if isHidden(f.Name) || !f.Mode.IsFile() || !matchExtension(f.Name, s.Extensions) {
			return nil
		}
		dumps = append(dumps, &Dump{
			Name:     f.Name,
			Revision: revision,
			Size:     f.Size,
			open: func() (io.ReadCloser, error) {
				return f.Reader()
			},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	sort.Slice(dumps, func(i, j int) bool { return dumps[i].Name < dumps[j].Name })
	return dumps, nil
}

// Commit returns metadata of the commit the source resolves to.
func (s *GitSource) Commit() (*CommitInfo, error) {
	commit, err := s.resolve()
	if err != nil {
		return nil, err
	}
	return &CommitInfo{
		Hash:    commit.Hash.String(),
		Author:  commit.Author.Name,
		Message: strings.TrimSpace(commit.Message),
	}, nil
}

func (s *GitSource) String() string {
	return fmt.Sprintf("git:%s@%s", s.Repository, s.revision())
}

func (s *GitSource) revision() string {
	if s.Revision == "" {
		return "HEAD"
	}
	return s.Revision
}

func (s *GitSource) resolve() (*object.Commit, error) {
	repo, err := gogit.PlainOpenWithOptions(s.Repository, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %s: %w", s.Repository, err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(s.revision()))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %q: %w", s.revision(), err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit: %w", err)
	}
	return commit, nil
}
