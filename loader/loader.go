package loader

import (
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"
)

// LoadInfo describes where a loaded value came from.
type LoadInfo struct {
	// Path is the key (for Load) or exact path (for LoadFile) that won
	// the probe.
	Path string
	// Format is the first extension of the winning Format.
	Format string
}

// Loader probes a Source through a set of registered Formats and runs the
// post-parse hook pipeline (PreProcess, SetContext, ValidateConfig).
type Loader struct {
	source  Source
	formats []Format
	group   singleflight.Group
}

// New creates a Loader over source, trying formats in the given order when
// more than one candidate file exists for a base name (the probe
// tie-break: first discovered in format-registration, then
// extension-list, order wins).
func New(source Source, formats ...Format) *Loader {
	return &Loader{source: source, formats: formats}
}

// Load probes {baseName}.{ext} for every extension of every registered
// format, in registration order, and loads the first one that exists.
// Concurrent Load calls for the same baseName are coalesced onto a single
// in-flight probe (the same singleflight discipline the teacher cache uses
// for GetOrLoad), so a burst of identical directory rescans doesn't read
// the same file N times.
func Load[T any](l *Loader, baseName string) (T, LoadInfo, error) {
	type result struct {
		value T
		info  LoadInfo
	}

	v, err, _ := l.group.Do(baseName, func() (any, error) {
		key, format, found := l.probe(baseName)
		if !found {
			return nil, NewErrNotFound(baseName)
		}
		value, info, err := loadExplicit[T](l, key, format)
		if err != nil {
			return nil, err
		}
		return result{value: value, info: info}, nil
	})

	var zero T
	if err != nil {
		return zero, LoadInfo{}, err
	}
	r := v.(result)
	return r.value, r.info, nil
}

// LoadFile loads an exact path, inferring the format from its final
// extension. Returns NotFound if no registered format claims that
// extension.
func LoadFile[T any](l *Loader, path string) (T, LoadInfo, error) {
	var zero T
	ext := extensionOf(path)
	if ext == "" {
		return zero, LoadInfo{}, NewErrNotFound(path)
	}
	for _, f := range l.formats {
		if hasExtension(f, ext) {
			return loadExplicit[T](l, path, f)
		}
	}
	return zero, LoadInfo{}, NewErrNotFound(path)
}

// ResolveOrigin returns the canonical filesystem path backing key when the
// Loader's Source implements PathResolver, otherwise key unchanged. Callers
// that need to register a real OS-notify watch against a loaded entry's
// origin use this instead of assuming key is itself a filesystem path.
func (l *Loader) ResolveOrigin(key string) string {
	if pr, ok := l.source.(PathResolver); ok {
		if p, err := pr.ResolvePath(key); err == nil {
			return p
		}
	}
	return key
}

// Validate is a dry run of Load that discards the value on success.
func Validate[T any](l *Loader, baseName string) error {
	_, _, err := Load[T](l, baseName)
	return err
}

// probe returns the first existing {baseName}.{ext} key across all
// registered formats, in registration order. When more than one candidate
// exists, the earlier one wins and the others are ignored; the conflict is
// neither an error nor logged.
func (l *Loader) probe(baseName string) (key string, format Format, found bool) {
	for _, f := range l.formats {
		for _, ext := range f.Extensions() {
			candidate := fmt.Sprintf("%s.%s", baseName, ext)
			if l.source.Exists(candidate) {
				return candidate, f, true
			}
		}
	}
	return "", nil, false
}

func loadExplicit[T any](l *Loader, key string, format Format) (T, LoadInfo, error) {
	var zero T
	bytes, err := l.source.Read(key)
	if err != nil {
		return zero, LoadInfo{}, err
	}

	var value T
	if err := format.Parse(bytes, &value); err != nil {
		return zero, LoadInfo{}, err
	}

	if err := runHooks(&value, key); err != nil {
		return zero, LoadInfo{}, err
	}

	formatName := "unknown"
	if exts := format.Extensions(); len(exts) > 0 {
		formatName = exts[0]
	}
	return value, LoadInfo{Path: key, Format: formatName}, nil
}

func extensionOf(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 || idx == len(path)-1 {
		return ""
	}
	return path[idx+1:]
}

func hasExtension(f Format, ext string) bool {
	for _, e := range f.Extensions() {
		if e == ext {
			return true
		}
	}
	return false
}
