// Package vcs opens git repositories so detectors can read source from
// a committed revision without a checkout.
package vcs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Tree provides read access to the files of one committed revision.
type Tree interface {
	// File returns the content of the file at path within the tree.
	File(path string) ([]byte, error)

	// Files returns the paths of all files in the tree.
	Files() ([]string, error)
}

// OpenTree resolves rev (a branch, tag, or commit-ish) in the
// repository containing path and returns its tree.
func OpenTree(path, rev string) (Tree, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", rev, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", hash, err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("loading tree for %s: %w", hash, err)
	}

	return &gitTree{tree: tree}, nil
}

type gitTree struct {
	tree *object.Tree
}

func (t *gitTree) File(path string) ([]byte, error) {
	// Git trees always use forward slashes.
	f, err := t.tree.File(filepath.ToSlash(strings.TrimPrefix(path, "./")))
	if err != nil {
		return nil, err
	}
	content, err := f.Contents()
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}

func (t *gitTree) Files() ([]string, error) {
	var paths []string
	iter := t.tree.Files()
	err := iter.ForEach(func(f *object.File) error {
		paths = append(paths, f.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
