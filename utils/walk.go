package utils

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"
)

// WalkFunc is called for every directory and regular file that survives
// exclusion. Returning filepath.SkipDir for a directory keeps the walk out of
// it; any other error stops the walk.
type WalkFunc func(path string, info fs.FileInfo) error

// WalkOptions configures Walk.
type WalkOptions struct {
	Excluder *Excluder
	// OnError is told about every entry that could not be read. The entry is
	// skipped and the walk continues.
	OnError func(path string, err error)
}

type walker struct {
	ctx     context.Context
	opts    WalkOptions
	fn      WalkFunc
	visited map[uint64]struct{}
}

// Walk visits the tree under root depth first in lexical order. Symlinked
// directories are followed, and each real directory is entered at most once,
// so symlink cycles terminate. The root itself is not passed to fn.
func Walk(ctx context.Context, root string, opts WalkOptions, fn WalkFunc) error {
	w := &walker{
		ctx:     ctx,
		opts:    opts,
		fn:      fn,
		visited: make(map[uint64]struct{}),
	}
	return w.walkDir(root)
}

func (w *walker) report(path string, err error) {
	if w.opts.OnError != nil {
		w.opts.OnError(path, err)
	}
}

func (w *walker) walkDir(dir string) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}

	realPath, err := filepath.EvalSymlinks(dir)
	if err != nil {
		w.report(dir, err)
		return nil
	}
	key := xxh3.HashString(realPath)
	if _, seen := w.visited[key]; seen {
		return nil
	}
	w.visited[key] = struct{}{}

	// ReadDir returns what it managed to read along with the error
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.report(dir, err)
	}

	for _, entry := range entries {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, entry.Name())

		// Stat follows symlinks, so a linked folder is treated as a folder
		info, err := os.Stat(path)
		if err != nil {
			w.report(path, err)
			continue
		}

		if info.IsDir() {
			if w.opts.Excluder.SkipDir(path, entry.Name()) {
				continue
			}
			if err := w.fn(path, info); err != nil {
				if errors.Is(err, filepath.SkipDir) {
					continue
				}
				return err
			}
			if err := w.walkDir(path); err != nil {
				return err
			}
			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}
		if w.opts.Excluder.SkipFile(path) {
			continue
		}
		if err := w.fn(path, info); err != nil && !errors.Is(err, filepath.SkipDir) {
			return err
		}
	}
	return nil
}
