package engine

import (
	"path/filepath"
	"sort"
	"strings"
)

// FileTypeFilter is a set of accepted file extensions. Extensions are kept
// exactly as configured apart from an optional leading dot, so ".JS" and
// ".js" are different entries. An empty filter accepts nothing.
type FileTypeFilter struct {
	exts map[string]struct{}
}

func NewFileTypeFilter(exts ...string) *FileTypeFilter {
	f := &FileTypeFilter{}
	f.Add(exts)
	return f
}

// Add merges exts into the filter. Blank entries are ignored.
func (f *FileTypeFilter) Add(exts []string) {
	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext == "" {
			continue
		}
		if f.exts == nil {
			f.exts = make(map[string]struct{})
		}
		f.exts[ext] = struct{}{}
	}
}

// Accepts reports whether the extension of the final path segment is in the set.
func (f *FileTypeFilter) Accepts(path string) bool {
	if f == nil || len(f.exts) == 0 {
		return false
	}
	ext, ok := Extension(path)
	if !ok {
		return false
	}
	_, found := f.exts[ext]
	return found
}

func (f *FileTypeFilter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.exts)
}

// Extensions returns the configured extensions sorted for stable display.
func (f *FileTypeFilter) Extensions() []string {
	if f == nil || len(f.exts) == 0 {
		return nil
	}
	out := make([]string, 0, len(f.exts))
	for ext := range f.exts {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Extension returns the text after the last "." of the base name, without
// the dot. Names without a dot, or ending in one, have no extension.
func Extension(path string) (string, bool) {
	base := filepath.Base(path)
	idx := strings.LastIndexByte(base, '.')
	if idx < 0 || idx == len(base)-1 {
		return "", false
	}
	return base[idx+1:], true
}
