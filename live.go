package live

import (
	"sync"
	"sync/atomic"

	"github.com/canmi21/live/loader"
	"github.com/canmi21/live/store"
	"github.com/canmi21/live/watch"
)

// Live binds a single store key to a loader, and optionally a filesystem
// watcher that re-runs the load whenever the underlying file changes.
//
// Live is cheaply cloneable via Clone: clones share the same Store,
// Loader, and watcher handle (they are the same *Live[T]). Close
// relinquishes one clone's interest in the watcher; the watcher is
// actually stopped only once every clone has called Close.
// StopWatching, by contrast, stops the watcher unconditionally — it is the
// explicit "turn off live reload" call, not a reference release.
type Live[T any] struct {
	store  *store.Store[T]
	loader *loader.Loader
	key    string
	logger Logger
	refs   atomic.Int32

	watchMu sync.Mutex
	watcher *watch.Watcher
	stop    chan struct{}
	stopped chan struct{}
}

// LiveBuilder constructs a Live controller, rejecting construction outright
// if a required field is missing rather than silently defaulting it.
type LiveBuilder[T any] struct {
	store  *store.Store[T]
	loader *loader.Loader
	key    string
	logger Logger
}

// NewLiveBuilder starts a new LiveBuilder.
func NewLiveBuilder[T any]() *LiveBuilder[T] {
	return &LiveBuilder[T]{}
}

// Store sets the backing Store.
func (b *LiveBuilder[T]) Store(s *store.Store[T]) *LiveBuilder[T] {
	b.store = s
	return b
}

// Loader sets the backing Loader.
func (b *LiveBuilder[T]) Loader(l *loader.Loader) *LiveBuilder[T] {
	b.loader = l
	return b
}

// Key sets the store key this controller manages.
func (b *LiveBuilder[T]) Key(key string) *LiveBuilder[T] {
	b.key = key
	return b
}

// Logger sets the logger used for load/watch diagnostics. Defaults to
// NoOpLogger.
func (b *LiveBuilder[T]) Logger(logger Logger) *LiveBuilder[T] {
	b.logger = logger
	return b
}

// Build validates the builder and returns the constructed Live, or a
// BuilderError naming the first missing required field.
func (b *LiveBuilder[T]) Build() (*Live[T], error) {
	if b.store == nil {
		return nil, NewErrBuilder("store")
	}
	if b.loader == nil {
		return nil, NewErrBuilder("loader")
	}
	if b.key == "" {
		return nil, NewErrBuilder("key")
	}
	live := NewLive(b.store, b.loader, b.key)
	if b.logger != nil {
		live.logger = b.logger
	}
	return live, nil
}

// NewLive constructs a Live controller directly, bypassing the builder.
func NewLive[T any](s *store.Store[T], l *loader.Loader, key string) *Live[T] {
	live := &Live[T]{store: s, loader: l, key: key, logger: NoOpLogger{}}
	live.refs.Store(1)
	return live
}

// Clone returns a shared handle to the same controller, incrementing its
// reference count. Callers that hold a Clone must call Close when done so
// the watcher can be released once every clone has let go.
func (l *Live[T]) Clone() *Live[T] {
	l.refs.Add(1)
	return l
}

// Close releases this handle's interest in the controller. Once every
// outstanding Clone (including the original) has called Close, the
// background watcher, if any, is stopped.
func (l *Live[T]) Close() {
	if l.refs.Add(-1) == 0 {
		l.StopWatching()
	}
}

// Load performs an immediate load from the source and installs the result
// into the Store under Key, with the default Removable policy. On success
// the entry's origin is the canonicalized load path. NotFound and parse/
// validation failures are surfaced directly to the caller.
func (l *Live[T]) Load() error {
	value, info, err := loader.Load[T](l.loader, l.key)
	if err != nil {
		l.logger.Warn("live: load failed", "key", l.key, "error", err)
		return err
	}
	source := l.loader.ResolveOrigin(info.Path)
	l.store.Insert(l.key, value, source, store.Removable)
	l.logger.Debug("live: loaded", "key", l.key, "source", source)
	return nil
}

// Reload is an alias for Load.
func (l *Live[T]) Reload() error {
	return l.Load()
}

// Get returns the current value for Key, or false if it has never been
// loaded.
func (l *Live[T]) Get() (T, bool) {
	return l.store.Get(l.key)
}

// Subscribe returns a handle to the Store's change-event stream.
func (l *Live[T]) Subscribe() *store.Subscription[T] {
	return l.store.Subscribe()
}

// Watch attaches a filesystem watcher bound to the origin path recorded by
// the last successful Load, and spawns a background goroutine that
// re-invokes Load on every debounced event. Load must have succeeded
// first; otherwise Watch returns NotLoaded. A reload that fails during
// watch is logged at Warn level through the controller's Logger and leaves
// the prior value in place; it is not returned to any caller, and the
// store emits no event for it.
func (l *Live[T]) Watch(cfg watch.Config) error {
	meta, ok := l.store.GetMeta(l.key)
	if !ok {
		return NewErrNotLoaded()
	}

	w, err := watch.New(watch.File(meta.Source), cfg)
	if err != nil {
		return err
	}

	l.watchMu.Lock()
	l.watcher = w
	l.stop = make(chan struct{})
	l.stopped = make(chan struct{})
	stop, stopped := l.stop, l.stopped
	l.watchMu.Unlock()

	l.logger.Info("live: watching", "key", l.key, "path", meta.Source)
	go l.watchLoop(w, stop, stopped)
	return nil
}

func (l *Live[T]) watchLoop(w *watch.Watcher, stop, stopped chan struct{}) {
	defer close(stopped)
	events := w.Subscribe()
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
			_ = l.Load() // a failed reload is only logged by Load; the store is left unchanged
		case <-stop:
			return
		}
	}
}

// StopWatching aborts the background watch goroutine and releases the
// watcher. Idempotent; a no-op if Watch was never called or has already
// been stopped. It does not await the background goroutine's exit — an
// in-flight Load triggered by a just-delivered event may still commit
// after StopWatching returns (spec.md §9's documented Open Question).
func (l *Live[T]) StopWatching() {
	l.watchMu.Lock()
	w, stop := l.watcher, l.stop
	l.watcher, l.stop, l.stopped = nil, nil, nil
	l.watchMu.Unlock()

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
func (l *Live[T]) IsWatching() bool {
	l.watchMu.Lock()
	defer l.watchMu.Unlock()
	return l.watcher != nil
}
