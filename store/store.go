package store

import (
	"sync/atomic"

	"github.com/agilira/go-timecache"
)

// Store is a concurrent, typed key->value map with wait-free reads and
// RCU-style writes. The zero value is not usable; construct with New.
type Store[T comparable] struct {
	snap    atomic.Pointer[snapshot[T]]
	version uint64 // global monotone counter, bumped with atomic.AddUint64
	events  *broadcaster[T]
}

// Option configures a Store at construction time.
type Option[T comparable] func(*Store[T])

// WithEventCapacity sets the bounded capacity of the Store's change-event
// broadcast channel. The events capability is always enabled; a capacity
// of 0 falls back to DefaultEventCapacity.
func WithEventCapacity[T comparable](capacity int) Option[T] {
	return func(s *Store[T]) {
		s.events = newBroadcaster[T](capacity)
	}
}

// New creates an empty Store.
func New[T comparable](opts ...Option[T]) *Store[T] {
	s := &Store[T]{events: newBroadcaster[T](DefaultEventCapacity)}
	s.snap.Store(newSnapshot[T]())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func timeNowNano() int64 {
	return timecache.CachedTimeNano()
}

// Get returns the value stored under key, wait-free.
func (s *Store[T]) Get(key string) (T, bool) {
	snap := s.snap.Load()
	e, ok := snap.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// GetMeta returns a copy of the metadata stored under key, wait-free.
func (s *Store[T]) GetMeta(key string) (Meta, bool) {
	snap := s.snap.Load()
	e, ok := snap.entries[key]
	if !ok {
		return Meta{}, false
	}
	return e.meta, true
}

// Snapshot returns an immutable view of the whole key->value mapping as it
// existed at one instant. It copies every entry into a new map, so its
// cost grows with the number of entries; later writes do not affect it.
func (s *Store[T]) Snapshot() map[string]T {
	snap := s.snap.Load()
	out := make(map[string]T, len(snap.entries))
	for k, e := range snap.entries {
		out[k] = e.value
	}
	return out
}

// Keys returns the set of keys currently present.
func (s *Store[T]) Keys() []string {
	snap := s.snap.Load()
	out := make([]string, 0, len(snap.entries))
	for k := range snap.entries {
		out = append(out, k)
	}
	return out
}

// Len returns the number of entries currently present.
func (s *Store[T]) Len() int {
	return len(s.snap.Load().entries)
}

// IsEmpty reports whether the store currently holds no entries.
func (s *Store[T]) IsEmpty() bool {
	return s.Len() == 0
}

// Subscribe returns a handle to the store's change-event stream. Events
// capacity is bounded (DefaultEventCapacity unless overridden via
// WithEventCapacity); a subscriber that falls behind misses events rather
// than blocking writers.
func (s *Store[T]) Subscribe() *Subscription[T] {
	return s.events.subscribe()
}

// nextVersion allocates the next version number. The counter is global to
// the store and strictly increasing across all insert/remove/replace
// operations, sequentially consistent per spec.md §4.1.
func (s *Store[T]) nextVersion() uint64 {
	return atomic.AddUint64(&s.version, 1)
}
