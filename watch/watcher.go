package watch

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher turns raw fsnotify events for a Target into a debounced,
// filtered stream of Events, delivered over a single channel.
type Watcher struct {
	target    compiledTarget
	cfg       Config
	fsw       *fsnotify.Watcher
	events    chan Event
	closeOnce sync.Once
	done      chan struct{}
	stopped   chan struct{}
}

// New constructs a Watcher observing target under cfg. It registers with
// the OS-notify backend immediately; events are not delivered until
// Subscribe's channel is drained by the caller.
func New(target Target, cfg Config) (*Watcher, error) {
	cfg = cfg.withDefaults()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, NewErrSignal(err)
	}

	if err := fsw.Add(target.root()); err != nil {
		fsw.Close()
		return nil, NewErrSignal(err)
	}

	w := &Watcher{
		target:  compile(target, cfg),
		cfg:     cfg,
		fsw:     fsw,
		events:  make(chan Event, cfg.RawEventBuffer),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Subscribe returns the channel on which debounced events are delivered.
// The channel is closed once Stop completes.
func (w *Watcher) Subscribe() <-chan Event {
	return w.events
}

// Stop terminates the background goroutine and closes the subscription
// channel. Any event still pending its debounce window when Stop is called
// is dropped, not flushed — shutdown synthesizes nothing. It blocks until
// shutdown is complete.
func (w *Watcher) Stop() {
	w.closeOnce.Do(func() {
		close(w.done)
	})
	<-w.stopped
}

func (w *Watcher) run() {
	defer close(w.stopped)
	defer close(w.events)
	defer w.fsw.Close()

	db := newDebouncer(w.cfg)
	ticker := time.NewTicker(w.cfg.tickRate())
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return

		case raw, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.target.accepts(raw.Name) {
				continue
			}
			kind, ok := translate(raw.Op)
			if !ok {
				continue
			}
			db.feed(raw.Name, kind, time.Now())

		case <-w.fsw.Errors:
			// Backend errors are not fatal to the watch session; the
			// underlying fsnotify watch continues for other paths.
			continue

		case now := <-ticker.C:
			for _, ev := range db.flush(now) {
				w.emit(ev)
			}
		}
	}
}

func (w *Watcher) emit(ev Event) {
	select {
	case w.events <- ev:
	case <-w.done:
	}
}

func translate(op fsnotify.Op) (EventKind, bool) {
	switch {
	case op&fsnotify.Create != 0:
		return Create, true
	case op&fsnotify.Write != 0:
		return Modify, true
	case op&fsnotify.Remove != 0, op&fsnotify.Rename != 0:
		return Remove, true
	default:
		return 0, false
	}
}
