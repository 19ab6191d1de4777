package watch

import "time"

// Config controls the Watcher's debounce/coalesce/filter behavior.
type Config struct {
	// Debounce is the time window after the last raw event for a path
	// before a high-level event is emitted. Default: 500ms.
	Debounce time.Duration

	// Coalesce enables the coalesce table for successive raw events on
	// the same path; when false, the latest raw kind always wins.
	// Default: true.
	Coalesce bool

	// IgnoreHidden drops any path with a hidden path component (a name
	// starting with '.', excluding the literal "." and ".." navigation
	// parts). Default: true.
	IgnoreHidden bool

	// ListenEvents, if non-nil, restricts emitted events to this set of
	// kinds. A nil slice allows all kinds.
	ListenEvents []EventKind

	// RawEventBuffer is the bounded capacity of the channel on which
	// debounced events are delivered (see Watcher.Subscribe). When it is
	// full the watcher's loop blocks rather than dropping events, and stops
	// reading from the OS-notify backend until a slot frees. Default: 100.
	RawEventBuffer int
}

// DefaultConfig returns a Config with spec.md §6 defaults applied.
func DefaultConfig() Config {
	return Config{
		Debounce:       500 * time.Millisecond,
		Coalesce:       true,
		IgnoreHidden:   true,
		RawEventBuffer: 100,
	}
}

func (c Config) withDefaults() Config {
	if c.Debounce <= 0 {
		c.Debounce = 500 * time.Millisecond
	}
	if c.RawEventBuffer <= 0 {
		c.RawEventBuffer = 100
	}
	return c
}

func (c Config) allows(kind EventKind) bool {
	if c.ListenEvents == nil {
		return true
	}
	for _, k := range c.ListenEvents {
		if k == kind {
			return true
		}
	}
	return false
}

// tickRate is the periodic flush interval: max(debounce/5, debounce) when
// debounce < 50ms, else debounce/5 (spec.md §4.3).
func (c Config) tickRate() time.Duration {
	if c.Debounce < 50*time.Millisecond {
		return c.Debounce
	}
	return c.Debounce / 5
}
