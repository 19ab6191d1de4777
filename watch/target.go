package watch

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Target describes what a Watcher should observe: a single file, an entire
// directory (non-recursive), or a directory filtered by glob patterns.
type Target interface {
	root() string
	isDir() bool
	matches(rel string) bool
}

// FileTarget watches a single file. The watch is registered against the
// file's parent directory, not the file itself, so atomic-rename editors
// (write-to-temp, then rename over the original) are still observed —
// watching the original inode directly would miss the replacement.
type FileTarget struct {
	Path string
}

func File(path string) FileTarget { return FileTarget{Path: path} }

func (t FileTarget) root() string { return filepath.Dir(t.Path) }
func (t FileTarget) isDir() bool  { return false }

func (t FileTarget) matches(rel string) bool {
	return filepath.ToSlash(rel) == filepath.Base(t.Path)
}

// DirTarget watches every entry directly under Path.
type DirTarget struct {
	Path string
}

func Directory(path string) DirTarget { return DirTarget{Path: path} }

func (t DirTarget) root() string           { return t.Path }
func (t DirTarget) isDir() bool            { return true }
func (t DirTarget) matches(rel string) bool { return true }

// FilteredTarget watches a directory, keeping only paths matching Include
// (when non-empty) and rejecting any matching Exclude. Patterns are
// doublestar globs evaluated against the path relative to Path.
type FilteredTarget struct {
	Path    string
	Include []string
	Exclude []string
}

func Filtered(path string, include, exclude []string) FilteredTarget {
	return FilteredTarget{Path: path, Include: include, Exclude: exclude}
}

func (t FilteredTarget) root() string { return t.Path }
func (t FilteredTarget) isDir() bool  { return true }

func (t FilteredTarget) matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	if len(t.Exclude) > 0 {
		for _, pat := range t.Exclude {
			if ok, _ := doublestar.Match(pat, rel); ok {
				return false
			}
		}
	}
	if len(t.Include) == 0 {
		return true
	}
	for _, pat := range t.Include {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

// compiledTarget resolves a Target against a config, additionally applying
// the IgnoreHidden rule uniformly regardless of target kind.
type compiledTarget struct {
	target Target
	cfg    Config
}

func compile(t Target, cfg Config) compiledTarget {
	return compiledTarget{target: t, cfg: cfg}
}

func (c compiledTarget) accepts(path string) bool {
	rel, err := filepath.Rel(c.target.root(), path)
	if err != nil {
		rel = filepath.Base(path)
	}
	if c.cfg.IgnoreHidden && hasHiddenComponent(rel) {
		return false
	}
	return c.target.matches(rel)
}

func hasHiddenComponent(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, part := range strings.Split(rel, "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
