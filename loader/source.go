package loader

// Source is the byte-retrieval boundary the Loader consumes. Implementations
// must treat a missing resource as NewErrNotFound, distinct from any other
// I/O failure.
type Source interface {
	// Read returns the raw bytes stored under key.
	Read(key string) ([]byte, error)
	// Exists reports whether a resource is stored under key.
	Exists(key string) bool
}

// PathResolver is an optional Source capability exposing the canonical
// on-disk path backing a key, for callers (the live package's controllers)
// that need a real filesystem path to register with an OS-notify backend
// rather than a source-relative key. FileSource implements it; MemorySource
// does not, since it has no filesystem presence to canonicalize.
type PathResolver interface {
	ResolvePath(key string) (string, error)
}
