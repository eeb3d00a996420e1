package engine

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"k8s.io/klog/v2"
)

// Replaced in tests to simulate unreadable files and directories.
var (
	readDir  = os.ReadDir
	openFile = func(name string) (io.Closer, error) { return os.Open(name) }
)

// Walk expands root into the list of files that should be scanned.
//
// A regular file root is returned when the filter accepts it. A directory
// root is listed entry by entry; symbolic links below the root are never
// followed and subdirectories are entered only when opts.Recursive is set.
// A root that is missing, unreadable, or neither a file nor a directory
// yields a *RootError wrapping ErrNotFound. Unreadable subdirectories are
// reported as FileErrors and do not stop the walk.
func Walk(ctx context.Context, root string, opts WalkOptions) ([]string, []FileError, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, &RootError{Root: root, Err: fmt.Errorf("%w: %v", ErrNotFound, err)}
	}
	switch {
	case info.Mode().IsRegular():
		if !opts.FileTypes.Accepts(root) {
			klog.V(2).Infof("skip %s: %v", root, ErrNotScannable)
			return nil, nil, nil
		}
		f, err := openFile(root)
		if err != nil {
			return nil, nil, &RootError{Root: root, Err: fmt.Errorf("%w: %v", ErrNotFound, err)}
		}
		f.Close()
		return []string{root}, nil, nil
	case info.IsDir():
		entries, err := readDir(root)
		if err != nil {
			return nil, nil, &RootError{Root: root, Err: fmt.Errorf("%w: %v", ErrNotFound, err)}
		}
		w := &walker{ctx: ctx, root: root, opts: opts}
		if err := w.entries(root, entries); err != nil {
			return w.files, w.errs, err
		}
		return w.files, w.errs, nil
	default:
		return nil, nil, &RootError{Root: root, Err: ErrNotFound}
	}
}

type walker struct {
	ctx   context.Context
	root  string
	opts  WalkOptions
	files []string
	errs  []FileError
}

func (w *walker) dir(dir string) error {
	entries, err := readDir(dir)
	if err != nil {
		klog.V(1).Infof("skip directory %s: %v", dir, err)
		w.errs = append(w.errs, FileError{Path: dir, Stage: "readdir", Err: err})
		return nil
	}
	return w.entries(dir, entries)
}

func (w *walker) entries(dir string, entries []fs.DirEntry) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		typ := entry.Type()
		switch {
		case typ&fs.ModeSymlink != 0:
			klog.V(2).Infof("skip symlink %s", path)
		case entry.IsDir():
			if !w.opts.Recursive || w.excluded(path, entry.Name()) {
				continue
			}
			if err := w.dir(path); err != nil {
				return err
			}
		case typ.IsRegular():
			if w.excluded(path, entry.Name()) {
				continue
			}
			if !w.opts.FileTypes.Accepts(path) {
				continue
			}
			w.files = append(w.files, path)
		}
	}
	return nil
}

func (w *walker) excluded(path, name string) bool {
	if len(w.opts.Excludes) == 0 {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = name
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.opts.Excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			klog.V(2).Infof("exclude %s (%s)", path, pattern)
			return true
		}
		if ok, _ := doublestar.Match(pattern, name); ok {
			klog.V(2).Infof("exclude %s (%s)", path, pattern)
			return true
		}
	}
	return false
}

// ValidateExcludes reports the first malformed glob pattern.
func ValidateExcludes(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern: %q", p)
		}
	}
	return nil
}
