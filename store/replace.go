package store

// ReplaceEntry is one element of the desired full set passed to
// ReplaceAll.
type ReplaceEntry[T comparable] struct {
	Value  T
	Source string
	Policy Policy
}

// ReplaceAll atomically swaps the store's contents for the given desired
// full set. For every key in the prior snapshot but absent from entries,
// the old value is kept iff its policy is Persistent, otherwise dropped.
// The whole transition is a single RCU publish: no observer ever sees a
// partial set. Events are emitted after publication: Loaded for brand-new
// keys, Updated for keys whose value identity changed, Removed for
// dropped removable keys, Retained for persistent keys that would have
// been dropped.
func (s *Store[T]) ReplaceAll(entries map[string]ReplaceEntry[T]) {
	newEntries := make(map[string]entry[T], len(entries))
	for key, re := range entries {
		newEntries[key] = entry[T]{
			value: re.Value,
			meta: Meta{
				Source:   re.Source,
				LoadedAt: timeNowNano(),
				Version:  s.nextVersion(),
				Policy:   re.Policy,
			},
		}
	}

	oldSnap, _ := s.publish(func(clone *snapshot[T]) {
		result := make(map[string]entry[T], len(newEntries))
		for k, e := range newEntries {
			result[k] = e
		}
		for key, e := range clone.entries {
			if _, provided := entries[key]; !provided && e.meta.Policy == Persistent {
				result[key] = e
			}
		}
		clone.entries = result
	})

	s.emitReplaceEvents(oldSnap, newEntries, entries)
}

func (s *Store[T]) emitReplaceEvents(oldSnap *snapshot[T], newEntries map[string]entry[T], provided map[string]ReplaceEntry[T]) {
	for key, ne := range newEntries {
		if oe, ok := oldSnap.entries[key]; ok {
			if oe.value != ne.value {
				s.events.send(Event[T]{Kind: EventUpdated, Key: key, Old: oe.value, Value: ne.value, Meta: ne.meta})
			}
			continue
		}
		s.events.send(Event[T]{Kind: EventLoaded, Key: key, Value: ne.value, Meta: ne.meta})
	}

	for key, oe := range oldSnap.entries {
		if _, ok := provided[key]; ok {
			continue
		}
		if oe.meta.Policy == Persistent {
			s.events.send(Event[T]{Kind: EventRetained, Key: key, Err: NewErrPersistentRemoval(key)})
			continue
		}
		s.events.send(Event[T]{Kind: EventRemoved, Key: key, Value: oe.value})
	}
}
