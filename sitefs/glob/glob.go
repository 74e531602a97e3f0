// Package glob caches compiled glob patterns and matches file names
// against them.
package glob

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

type globCache struct {
	mu    sync.RWMutex
	cache map[string]glob.Glob
}

func (gc *globCache) getGlob(pattern string) (glob.Glob, error) {
	gc.mu.RLock()
	g, found := gc.cache[pattern]
	gc.mu.RUnlock()
	if found {
		return g, nil
	}

	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, err
	}

	gc.mu.Lock()
	gc.cache[pattern] = g
	gc.mu.Unlock()

	return g, nil
}

var defaultGlobCache = &globCache{cache: make(map[string]glob.Glob)}

// GetGlob returns the compiled pattern, compiling it on first use.
// Path separators are "/".
func GetGlob(pattern string) (glob.Glob, error) {
	return defaultGlobCache.getGlob(pattern)
}

// NormalizePath makes filename slash separated. Case is kept, so matching
// is case sensitive.
func NormalizePath(filename string) string {
	return filepath.ToSlash(strings.TrimPrefix(filename, "./"))
}

// FilenameFilter includes file names matching any of the include patterns
// unless they match an exclude pattern.
type FilenameFilter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewFilenameFilter creates a filter. Patterns are matched against
// normalized file names, see NormalizePath.
func NewFilenameFilter(include, exclude []string) (*FilenameFilter, error) {
	f := &FilenameFilter{}
	for _, p := range include {
		g, err := GetGlob(p)
		if err != nil {
			return nil, err
		}
		f.include = append(f.include, g)
	}
	for _, p := range exclude {
		g, err := GetGlob(p)
		if err != nil {
			return nil, err
		}
		f.exclude = append(f.exclude, g)
	}
	return f, nil
}

// MustNewFilenameFilter is like NewFilenameFilter but panics on bad patterns.
func MustNewFilenameFilter(include, exclude []string) *FilenameFilter {
	f, err := NewFilenameFilter(include, exclude)
	if err != nil {
		panic(err)
	}
	return f
}

// Match reports whether filename passes the filter. A nil filter or one
// without include patterns includes everything not excluded.
func (f *FilenameFilter) Match(filename string) bool {
	if f == nil {
		return true
	}
	filename = NormalizePath(filename)
	for _, g := range f.exclude {
		if g.Match(filename) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, g := range f.include {
		if g.Match(filename) {
			return true
		}
	}
	return false
}
