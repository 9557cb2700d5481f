// Package fs provides file system adapters for walking, flattening and
// backing up files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Walk yields every file below root in lexical order.
//
// Entries whose name matches one of the ignore patterns are skipped, as are
// the directories listed in skip. A directory that cannot be read is yielded
// with a non-nil error and the walk continues with its siblings.
func (w *Walker) Walk(root string, ignores []string, skip ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !yield(path, err) {
					return filepath.SkipAll
				}
				return nil
			}

			if path != root {
				if skipped, action := w.shouldSkip(path, d, ignores, skip); skipped {
					return action
				}
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// shouldSkip reports whether the entry is excluded. For directories the
// returned action is filepath.SkipDir.
func (w *Walker) shouldSkip(path string, d fs.DirEntry, ignores, skip []string) (bool, error) {
	if d.IsDir() && slices.Contains(skip, path) {
		return true, filepath.SkipDir
	}

	name := d.Name()
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}

	return false, nil
}
