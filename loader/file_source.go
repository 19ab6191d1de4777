package loader

import (
	"os"
	"path/filepath"
	"strings"
)

// FileSource is a Source rooted at a base directory on the filesystem.
// Every key is resolved relative to that root; any key whose components
// traverse above the root, or whose canonicalized target falls outside
// the canonicalized root (e.g. via a symlink), is rejected as a
// SandboxViolation rather than silently followed.
type FileSource struct {
	root string
}

// NewFileSource creates a FileSource rooted at root. root need not exist
// yet; it is canonicalized lazily on each resolution so that a root
// created after construction still works.
func NewFileSource(root string) *FileSource {
	return &FileSource{root: root}
}

// resolveSecure validates and resolves key against the sandbox root.
func (f *FileSource) resolveSecure(key string) (string, error) {
	for _, part := range strings.Split(filepath.ToSlash(key), "/") {
		if part == ".." {
			return "", NewErrSandboxViolation(key)
		}
	}

	candidate := filepath.Join(f.root, key)

	canonicalRoot, err := filepath.EvalSymlinks(f.root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", NewErrNotFound(key)
		}
		return "", NewErrIO(key, err)
	}

	canonicalPath, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		if os.IsNotExist(err) {
			return "", NewErrNotFound(key)
		}
		return "", NewErrIO(key, err)
	}

	rel, err := filepath.Rel(canonicalRoot, canonicalPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", NewErrSandboxViolation(key)
	}
	return canonicalPath, nil
}

// Read implements Source.
func (f *FileSource) Read(key string) ([]byte, error) {
	path, err := f.resolveSecure(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewErrNotFound(key)
		}
		return nil, NewErrIO(key, err)
	}
	return b, nil
}

// Exists implements Source.
func (f *FileSource) Exists(key string) bool {
	path, err := f.resolveSecure(key)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Root returns the sandbox root directory. Callers that need a real
// filesystem path to hand to a filesystem watcher (rather than a Source
// key) use this together with resolveSecure's canonicalization rules.
func (f *FileSource) Root() string {
	return f.root
}

// ResolvePath resolves key to its canonical absolute path within the
// sandbox, without reading the file. It is exported for callers (such as
// the live package's filesystem watch integration) that need the real
// path to register with an OS-notify backend.
func (f *FileSource) ResolvePath(key string) (string, error) {
	return f.resolveSecure(key)
}
