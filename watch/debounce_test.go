package watch

import (
	"testing"
	"time"
)

func TestCoalesceCreateThenModifyStaysCreate(t *testing.T) {
	d := newDebouncer(Config{Coalesce: true, Debounce: time.Second})
	now := time.Now()
	d.feed("a", Create, now)
	d.feed("a", Modify, now)
	if d.pending["a"].kind != Create {
		t.Fatalf("expected Create, got %v", d.pending["a"].kind)
	}
}

func TestCoalesceCreateThenRemoveBecomesRemove(t *testing.T) {
	d := newDebouncer(Config{Coalesce: true, Debounce: time.Second})
	now := time.Now()
	d.feed("a", Create, now)
	d.feed("a", Remove, now)
	if d.pending["a"].kind != Remove {
		t.Fatalf("expected Remove, got %v", d.pending["a"].kind)
	}
}

func TestCoalesceModifyThenRemoveBecomesRemove(t *testing.T) {
	d := newDebouncer(Config{Coalesce: true, Debounce: time.Second})
	now := time.Now()
	d.feed("a", Modify, now)
	d.feed("a", Remove, now)
	if d.pending["a"].kind != Remove {
		t.Fatalf("expected Remove, got %v", d.pending["a"].kind)
	}
}

func TestCoalesceRemoveThenModifyStaysRemove(t *testing.T) {
	d := newDebouncer(Config{Coalesce: true, Debounce: time.Second})
	now := time.Now()
	d.feed("a", Remove, now)
	d.feed("a", Modify, now)
	if d.pending["a"].kind != Remove {
		t.Fatalf("expected Remove (noise), got %v", d.pending["a"].kind)
	}
}

func TestDebounceFlushWaitsForQuietPeriod(t *testing.T) {
	d := newDebouncer(Config{Debounce: 50 * time.Millisecond})
	start := time.Now()
	d.feed("a", Create, start)

	if evs := d.flush(start.Add(10 * time.Millisecond)); len(evs) != 0 {
		t.Fatalf("expected no flush before quiet period, got %v", evs)
	}
	evs := d.flush(start.Add(60 * time.Millisecond))
	if len(evs) != 1 || evs[0].Path != "a" || evs[0].Kind != Create {
		t.Fatalf("unexpected flush result: %v", evs)
	}
	if _, ok := d.pending["a"]; ok {
		t.Fatal("expected pending entry to be cleared after flush")
	}
}

func TestDebounceListenEventsFilter(t *testing.T) {
	d := newDebouncer(Config{Debounce: time.Millisecond, ListenEvents: []EventKind{Create}})
	start := time.Now()
	d.feed("a", Remove, start)
	evs := d.flush(start.Add(2 * time.Millisecond))
	if len(evs) != 0 {
		t.Fatalf("expected Remove to be filtered out, got %v", evs)
	}
}
