package watch

import "time"

// pendingEvent tracks the most recently coalesced kind for one path and
// when it was last touched, so the debouncer knows when the quiet period
// has elapsed.
type pendingEvent struct {
	kind     EventKind
	lastSeen time.Time
}

// debouncer coalesces a burst of raw filesystem events per path into a
// single high-level Event, emitted once no further raw event for that
// path arrives within the configured debounce window.
type debouncer struct {
	cfg     Config
	pending map[string]pendingEvent
}

func newDebouncer(cfg Config) *debouncer {
	return &debouncer{cfg: cfg, pending: make(map[string]pendingEvent)}
}

// feed records a raw event for path, applying the coalesce table against
// any event already pending for the same path.
func (d *debouncer) feed(path string, kind EventKind, now time.Time) {
	prev, ok := d.pending[path]
	if !ok || !d.cfg.Coalesce {
		d.pending[path] = pendingEvent{kind: kind, lastSeen: now}
		return
	}

	next, drop := coalesce(prev.kind, kind)
	if drop {
		delete(d.pending, path)
		return
	}
	d.pending[path] = pendingEvent{kind: next, lastSeen: now}
}

// coalesce reduces a pair of (previously pending, newly observed) raw kinds
// to the kind that should ultimately be reported, per spec.md §4.3:
//
//	Create + Modify -> Create
//	Create + Remove -> Remove
//	Modify + Remove -> Remove
//	Remove + Modify -> Remove (noise; the pending kind does not change)
//	Remove + Create -> Create
func coalesce(prev, next EventKind) (result EventKind, drop bool) {
	switch {
	case prev == Create && next == Modify:
		return Create, false
	case prev == Create && next == Remove:
		return Remove, false
	case prev == Modify && next == Remove:
		return Remove, false
	case prev == Remove && next == Modify:
		return Remove, false
	case prev == Remove && next == Create:
		return Create, false
	default:
		return next, false
	}
}

// flush returns every pending event whose quiet period has elapsed as of
// now, removing them from the pending set.
func (d *debouncer) flush(now time.Time) []Event {
	var out []Event
	for path, pe := range d.pending {
		if now.Sub(pe.lastSeen) < d.cfg.Debounce {
			continue
		}
		if d.cfg.allows(pe.kind) {
			out = append(out, Event{Path: path, Kind: pe.kind})
		}
		delete(d.pending, path)
	}
	return out
}
