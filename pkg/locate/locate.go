// Package locate finds manifest files below a directory.
//
// The walk follows symbolic links, visits directory entries in lexical order
// and descends depth-first, so the result order is stable for an unchanged
// tree. Entries that cannot be read (permission denied, broken links,
// symlink loops) are logged and left out; they never stop the walk.
package locate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargocite/pkg/errors"
	"github.com/matzehuels/cargocite/pkg/manifest"
)

// Unbounded is the max depth that places no limit on the walk.
// Any negative value behaves the same.
const Unbounded = -1

// Option configures [Find].
type Option func(*finder)

// WithLogger sets the logger that receives found paths and skipped entries.
func WithLogger(l *log.Logger) Option {
	return func(f *finder) { f.logger = l }
}

// WithFileName overrides the file name to look for (default [manifest.FileName]).
func WithFileName(name string) Option {
	return func(f *finder) { f.name = name }
}

type finder struct {
	name     string
	maxDepth int
	logger   *log.Logger
	found    []string
}

// Find returns every regular file named Cargo.toml under root.
//
// maxDepth bounds how many directory levels below root are entered:
// 0 only looks at files directly inside root, N descends N levels, and a
// negative value is unbounded. If root itself is a manifest file it is
// returned as the only result.
func Find(root string, maxDepth int, opts ...Option) []string {
	f := &finder{name: manifest.FileName, maxDepth: maxDepth}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = log.Default()
	}

	info, err := os.Stat(root)
	if err != nil {
		f.skip(root, err)
		return nil
	}
	if !info.IsDir() {
		if info.Mode().IsRegular() && filepath.Base(root) == f.name {
			f.hit(root)
		}
		return f.found
	}

	real, err := filepath.EvalSymlinks(root)
	if err != nil {
		f.skip(root, err)
		return nil
	}
	f.walk(root, 0, map[string]bool{real: true})
	return f.found
}

func (f *finder) walk(dir string, depth int, ancestors map[string]bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		f.skip(dir, err)
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		info, err := os.Stat(path)
		if err != nil {
			f.skip(path, err)
			continue
		}

		if !info.IsDir() {
			if info.Mode().IsRegular() && entry.Name() == f.name {
				f.hit(path)
			}
			continue
		}

		if f.maxDepth >= 0 && depth >= f.maxDepth {
			continue
		}

		real, err := filepath.EvalSymlinks(path)
		if err != nil {
			f.skip(path, err)
			continue
		}
		if ancestors[real] {
			f.skip(path, errLoop(real))
			continue
		}

		ancestors[real] = true
		f.walk(path, depth+1, ancestors)
		delete(ancestors, real)
	}
}

func (f *finder) hit(path string) {
	f.logger.Info("Found manifest", "path", path)
	f.found = append(f.found, path)
}

func (f *finder) skip(path string, err error) {
	f.logger.Warn("Error accessing path", "err", errors.Wrap(errors.ErrCodeTraversalEntry, err, "skipping %s", path))
}

func errLoop(target string) error {
	return fmt.Errorf("filesystem loop back to ancestor %s", target)
}
