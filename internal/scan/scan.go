// Package scan finds event files under a run's output tree.
package scan

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Files walks root recursively and returns the absolute paths of regular
// files whose basename matches pattern. Symlinks to regular files count as
// files; symlinked directories are not followed. Unreadable entries below
// root are logged and skipped. The result is sorted.
func Files(root, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("scan: invalid file pattern %q", pattern)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("scan: resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan: %s is not a directory", root)
	}

	// A trailing separator makes WalkDir descend into a symlinked root.
	start := abs
	if !strings.HasSuffix(start, string(filepath.Separator)) {
		start += string(filepath.Separator)
	}
	w := &walker{root: start, pattern: pattern, logger: slog.Default()}
	err = filepath.WalkDir(start, w.visit)
	if err != nil {
		return nil, fmt.Errorf("scan: walk %s: %w", root, err)
	}

	sort.Strings(w.files)
	return w.files, nil
}

type walker struct {
	root    string
	pattern string
	logger  *slog.Logger
	files   []string
}

func (w *walker) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		if path == w.root {
			return err
		}
		w.logger.Warn("skipping unreadable path", "path", path, "error", err)
		if d == nil || d.IsDir() {
			return fs.SkipDir
		}
		return nil
	}
	if d.IsDir() {
		return nil
	}

	ok, err := doublestar.Match(w.pattern, d.Name())
	if err != nil {
		return err
	}
	if !ok || !w.regular(path, d) {
		return nil
	}
	w.files = append(w.files, path)
	return nil
}

// regular reports whether d is a regular file or a symlink resolving to one.
func (w *walker) regular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		w.logger.Warn("skipping dangling symlink", "path", path, "error", err)
		return false
	}
	return info.Mode().IsRegular()
}

// Set indexes paths for exact membership tests.
func Set(paths []string) map[string]struct{} {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[filepath.Clean(p)] = struct{}{}
	}
	return set
}
