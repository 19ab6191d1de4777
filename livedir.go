package live

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/canmi21/live/loader"
	"github.com/canmi21/live/store"
	"github.com/canmi21/live/watch"
)

// ScanErrorFunc is an installable callback for the error of a
// watch-triggered rescan that fails as a whole (the directory cannot be
// listed, or MaxEntries is exceeded). Such errors are always logged at Warn
// level through the controller's Logger; absent a callback, that log is the
// only trace of them. Per-key load failures do not fail the rescan and are
// not passed to the callback.
type ScanErrorFunc func(err error)

// LiveDir binds a directory to many store entries under a shared
// retention policy and key-extraction rule. Because the underlying Store
// may be shared across several controllers, LiveDir tracks the subset of
// keys it introduced (its owned-keys set) and only ever considers those
// keys for removal during a rescan — another controller's keys, however
// the filesystem looks, are never touched.
//
// LiveDir is cheaply cloneable via Clone, mirroring Live's shared-handle
// semantics.
type LiveDir[T any] struct {
	store      *store.Store[T]
	loader     *loader.Loader
	root       string
	pattern    KeyPattern
	scanMode   ScanMode
	policy     store.Policy
	maxEntries int // 0 means unlimited
	logger     Logger
	refs       atomic.Int32

	ownedMu sync.RWMutex
	owned   map[string]struct{}

	watchMu   sync.Mutex
	watcher   *watch.Watcher
	stop      chan struct{}
	stopped   chan struct{}
	onScanErr ScanErrorFunc
}

// LiveDirBuilder constructs a LiveDir controller, rejecting construction
// outright if a required field is missing.
type LiveDirBuilder[T any] struct {
	store      *store.Store[T]
	loader     *loader.Loader
	root       string
	pattern    KeyPattern
	scanMode   ScanMode
	policy     store.Policy
	maxEntries int
	logger     Logger
}

// NewLiveDirBuilder starts a new LiveDirBuilder with IdentityPattern,
// FilesScanMode, and Removable policy as defaults.
func NewLiveDirBuilder[T any]() *LiveDirBuilder[T] {
	return &LiveDirBuilder[T]{
		pattern:  IdentityPattern(),
		scanMode: FilesScanMode(),
		policy:   store.Removable,
	}
}

// Store sets the backing Store.
func (b *LiveDirBuilder[T]) Store(s *store.Store[T]) *LiveDirBuilder[T] {
	b.store = s
	return b
}

// Loader sets the backing Loader.
func (b *LiveDirBuilder[T]) Loader(l *loader.Loader) *LiveDirBuilder[T] {
	b.loader = l
	return b
}

// Root sets the directory this controller scans.
func (b *LiveDirBuilder[T]) Root(path string) *LiveDirBuilder[T] {
	b.root = path
	return b
}

// Pattern sets the key-extraction rule.
func (b *LiveDirBuilder[T]) Pattern(p KeyPattern) *LiveDirBuilder[T] {
	b.pattern = p
	return b
}

// ScanMode sets whether entries are plain files or config-file-bearing
// subdirectories.
func (b *LiveDirBuilder[T]) ScanMode(m ScanMode) *LiveDirBuilder[T] {
	b.scanMode = m
	return b
}

// Policy sets the retention policy applied to every entry this controller
// inserts.
func (b *LiveDirBuilder[T]) Policy(p store.Policy) *LiveDirBuilder[T] {
	b.policy = p
	return b
}

// MaxEntries caps the number of directory entries a scan will process;
// exceeding it aborts the scan with LimitExceeded. Zero means unlimited.
func (b *LiveDirBuilder[T]) MaxEntries(max int) *LiveDirBuilder[T] {
	b.maxEntries = max
	return b
}

// Logger sets the logger used for scan/watch diagnostics. Defaults to
// NoOpLogger.
func (b *LiveDirBuilder[T]) Logger(logger Logger) *LiveDirBuilder[T] {
	b.logger = logger
	return b
}

// Build validates the builder and returns the constructed LiveDir, or a
// BuilderError naming the first missing required field.
func (b *LiveDirBuilder[T]) Build() (*LiveDir[T], error) {
	if b.store == nil {
		return nil, NewErrBuilder("store")
	}
	if b.loader == nil {
		return nil, NewErrBuilder("loader")
	}
	if b.root == "" {
		return nil, NewErrBuilder("root")
	}
	ld := NewLiveDir(b.store, b.loader, b.root)
	ld.pattern = b.pattern
	ld.scanMode = b.scanMode
	ld.policy = b.policy
	ld.maxEntries = b.maxEntries
	if b.logger != nil {
		ld.logger = b.logger
	}
	return ld, nil
}

// NewLiveDir constructs a LiveDir directly, bypassing the builder, with
// IdentityPattern, FilesScanMode, and Removable policy as defaults.
func NewLiveDir[T any](s *store.Store[T], l *loader.Loader, root string) *LiveDir[T] {
	ld := &LiveDir[T]{
		store:    s,
		loader:   l,
		root:     root,
		pattern:  IdentityPattern(),
		scanMode: FilesScanMode(),
		policy:   store.Removable,
		owned:    make(map[string]struct{}),
		logger:   NoOpLogger{},
	}
	ld.refs.Store(1)
	return ld
}

// Clone returns a shared handle to the same controller, incrementing its
// reference count. See Live.Clone.
func (ld *LiveDir[T]) Clone() *LiveDir[T] {
	ld.refs.Add(1)
	return ld
}

// Close releases this handle's interest in the controller; the background
// watcher is stopped once every clone has called Close. See Live.Close.
func (ld *LiveDir[T]) Close() {
	if ld.refs.Add(-1) == 0 {
		ld.StopWatching()
	}
}

// OnScanError installs a callback invoked with the error of any
// watch-triggered rescan that fails as a whole. See ScanErrorFunc for which
// errors reach it.
func (ld *LiveDir[T]) OnScanError(fn ScanErrorFunc) {
	ld.watchMu.Lock()
	ld.onScanErr = fn
	ld.watchMu.Unlock()
}

// Load performs an initial scan of Root and loads every entry it finds.
// Equivalent to Reload; provided for symmetry with Live.
func (ld *LiveDir[T]) Load() (ScanResult, error) {
	return ld.doScan()
}

// Reload rescans Root and reconciles the store against its current
// contents: new files are added, changed files are reloaded, vanished
// files are removed (unless Persistent), and files that fail to parse
// leave any prior good value in place.
func (ld *LiveDir[T]) Reload() (ScanResult, error) {
	return ld.doScan()
}

// Get returns the store's current value for key, or false if the store
// holds none (never loaded, or removed by a rescan). It reads the shared
// Store directly, so it also returns keys loaded by other controllers.
func (ld *LiveDir[T]) Get(key string) (T, bool) {
	return ld.store.Get(key)
}

// Keys returns the set of keys currently owned by this controller.
func (ld *LiveDir[T]) Keys() []string {
	ld.ownedMu.RLock()
	defer ld.ownedMu.RUnlock()
	out := make([]string, 0, len(ld.owned))
	for k := range ld.owned {
		out = append(out, k)
	}
	return out
}

// Len returns the number of keys currently owned by this controller.
func (ld *LiveDir[T]) Len() int {
	ld.ownedMu.RLock()
	defer ld.ownedMu.RUnlock()
	return len(ld.owned)
}

// IsEmpty reports whether this controller currently owns no keys.
func (ld *LiveDir[T]) IsEmpty() bool {
	return ld.Len() == 0
}

// Snapshot returns every value currently owned by this controller, keyed
// by store key.
func (ld *LiveDir[T]) Snapshot() map[string]T {
	ld.ownedMu.RLock()
	keys := make([]string, 0, len(ld.owned))
	for k := range ld.owned {
		keys = append(keys, k)
	}
	ld.ownedMu.RUnlock()

	out := make(map[string]T, len(keys))
	for _, k := range keys {
		if v, ok := ld.store.Get(k); ok {
			out[k] = v
		}
	}
	return out
}

// Subscribe returns a handle to the Store's change-event stream.
func (ld *LiveDir[T]) Subscribe() *store.Subscription[T] {
	return ld.store.Subscribe()
}

// Watch canonicalizes Root, attaches a directory watcher, and spawns a
// background goroutine that rescans the entire directory on every
// debounced event (the scan itself diffs against the store, so there is no
// per-path reload logic here). The watcher observes only entries directly
// under Root; changes inside subdirectories (such as a config file in
// SubdirsScanMode) do not trigger a rescan.
func (ld *LiveDir[T]) Watch(cfg watch.Config) error {
	root := ld.root
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	w, err := watch.New(watch.Directory(root), cfg)
	if err != nil {
		return err
	}

	ld.watchMu.Lock()
	ld.watcher = w
	ld.stop = make(chan struct{})
	ld.stopped = make(chan struct{})
	stop, stopped := ld.stop, ld.stopped
	ld.watchMu.Unlock()

	ld.logger.Info("livedir: watching", "root", root)
	go ld.watchLoop(w, stop, stopped)
	return nil
}

func (ld *LiveDir[T]) watchLoop(w *watch.Watcher, stop, stopped chan struct{}) {
	defer close(stopped)
	events := w.Subscribe()
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
			if _, err := ld.doScan(); err != nil {
				ld.logger.Warn("livedir: rescan failed", "root", ld.root, "error", err)
				ld.watchMu.Lock()
				cb := ld.onScanErr
				ld.watchMu.Unlock()
				if cb != nil {
					cb(err)
				}
			}
		case <-stop:
			return
		}
	}
}

// StopWatching aborts the background watch goroutine and releases the
// watcher unconditionally. Idempotent.
func (ld *LiveDir[T]) StopWatching() {
	ld.watchMu.Lock()
	w, stop := ld.watcher, ld.stop
	ld.watcher, ld.stop, ld.stopped = nil, nil, nil
	ld.watchMu.Unlock()

	if stop != nil {
		select {
		case <-stop:
		default:
			close(stop)
		}
	}
	if w != nil {
		w.Stop()
	}
}

// IsWatching reports whether a background watcher is currently attached.
func (ld *LiveDir[T]) IsWatching() bool {
	ld.watchMu.Lock()
	defer ld.watchMu.Unlock()
	return ld.watcher != nil
}

// fsEntry pairs the load-name passed to the loader with the key it was
// extracted from.
type fsEntry struct {
	key      string
	loadName string
}

// doScan is the scan algorithm of spec.md §4.4: list Root, load each
// matched entry, reconcile owned-keys against the result.
func (ld *LiveDir[T]) doScan() (ScanResult, error) {
	var result ScanResult

	entries, err := os.ReadDir(ld.root)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}

	fsEntries := make(map[string]fsEntry)
	for _, de := range entries {
		name := de.Name()
		if len(name) > 0 && name[0] == '.' {
			continue
		}
		if ld.maxEntries > 0 && len(fsEntries) >= ld.maxEntries {
			return ScanResult{}, NewErrLimitExceeded(ld.root, ld.maxEntries)
		}

		if ld.scanMode.subdirs {
			if !de.IsDir() {
				continue
			}
			key, ok := ld.pattern.Extract(name)
			if !ok {
				continue
			}
			fsEntries[key] = fsEntry{key: key, loadName: filepath.ToSlash(filepath.Join(name, ld.scanMode.configFile))}
		} else {
			if !de.Type().IsRegular() {
				continue
			}
			key, ok := ld.pattern.Extract(name)
			if !ok {
				continue
			}
			fsEntries[key] = fsEntry{key: key, loadName: name}
		}
	}

	liveSet := make(map[string]struct{}, len(fsEntries))
	for key, fe := range fsEntries {
		_, existedBefore := ld.store.Get(key)

		var (
			value T
			info  loader.LoadInfo
			err   error
		)
		if ld.scanMode.subdirs {
			value, info, err = loader.Load[T](ld.loader, fe.loadName)
		} else {
			value, info, err = loader.LoadFile[T](ld.loader, fe.loadName)
		}

		switch {
		case err == nil:
			source := ld.loader.ResolveOrigin(info.Path)
			ld.store.Insert(key, value, source, ld.policy)
			liveSet[key] = struct{}{}
			if existedBefore {
				result.Updated = append(result.Updated, key)
			} else {
				result.Added = append(result.Added, key)
			}
		case loader.IsNotFound(err):
			// Race between listing and loading, or a subdirectory lacking
			// its config file: skip silently.
		default:
			result.Failed = append(result.Failed, FailedKey{Key: key, Reason: err.Error()})
			if existedBefore {
				liveSet[key] = struct{}{}
			}
		}
	}

	ld.ownedMu.Lock()
	oldOwned := ld.owned
	for key := range oldOwned {
		if _, stillLive := liveSet[key]; stillLive {
			continue
		}
		if _, err := ld.store.Remove(key); err != nil {
			if store.IsPersistentRemoval(err) {
				result.Retained = append(result.Retained, key)
				liveSet[key] = struct{}{}
			}
			continue
		}
		result.Removed = append(result.Removed, key)
	}
	ld.owned = liveSet
	ld.ownedMu.Unlock()

	ld.logger.Debug("livedir: scan complete", "root", ld.root,
		"added", len(result.Added), "updated", len(result.Updated),
		"removed", len(result.Removed), "failed", len(result.Failed), "retained", len(result.Retained))
	return result, nil
}
