package store

// publish runs mutate against the current snapshot's clone and attempts to
// install the result with a compare-and-swap, retrying under contention.
// mutate must be side-effect free beyond the returned clone (it may run
// more than once if a concurrent writer wins the race).
func (s *Store[T]) publish(mutate func(clone *snapshot[T])) (old *snapshot[T], new *snapshot[T]) {
	for {
		oldSnap := s.snap.Load()
		newSnap := oldSnap.clone()
		mutate(newSnap)
		if s.snap.CompareAndSwap(oldSnap, newSnap) {
			return oldSnap, newSnap
		}
	}
}

// Insert installs value under key with the given origin and retention
// policy, allocating a fresh version. If key already existed the write is
// an update (emits EventUpdated); otherwise it is a load (emits
// EventLoaded).
func (s *Store[T]) Insert(key string, value T, source string, policy Policy) T {
	meta := Meta{
		Source:   source,
		LoadedAt: timeNowNano(),
		Version:  s.nextVersion(),
		Policy:   policy,
	}
	newEntry := entry[T]{value: value, meta: meta}

	var hadOld bool
	var oldEntry entry[T]
	s.publish(func(clone *snapshot[T]) {
		oldEntry, hadOld = clone.entries[key]
		clone.entries[key] = newEntry
	})

	if hadOld {
		s.events.send(Event[T]{Kind: EventUpdated, Key: key, Old: oldEntry.value, Value: value, Meta: meta})
	} else {
		s.events.send(Event[T]{Kind: EventLoaded, Key: key, Value: value, Meta: meta})
	}
	return value
}

// Remove deletes key from the store. It fails with ErrNotFound if the key
// is absent, ErrPersistentRemoval if the entry's policy is Persistent (a
// Retained event is emitted in this case too), or ErrConcurrentlyRemoved
// if a concurrent writer removed the key between the probe and the RCU
// removal.
func (s *Store[T]) Remove(key string) (T, error) {
	var zero T

	// Phase 1: probe to distinguish NotFound / PersistentRemoval / eligible.
	probeSnap := s.snap.Load()
	probeEntry, ok := probeSnap.entries[key]
	if !ok {
		return zero, NewErrNotFound(key)
	}
	if probeEntry.meta.Policy == Persistent {
		err := NewErrPersistentRemoval(key)
		s.events.send(Event[T]{Kind: EventRetained, Key: key, Err: err})
		return zero, err
	}

	// Phase 2: RCU removal.
	var removed entry[T]
	var found bool
	s.publish(func(clone *snapshot[T]) {
		removed, found = clone.entries[key]
		if found {
			delete(clone.entries, key)
		}
	})

	if !found {
		// A concurrent writer removed it between phase 1 and phase 2.
		return zero, NewErrConcurrentlyRemoved(key)
	}

	s.events.send(Event[T]{Kind: EventRemoved, Key: key, Value: removed.value})
	return removed.value, nil
}
