package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherEmitsCreateOnNewFile(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Debounce = 20 * time.Millisecond

	w, err := New(Directory(dir), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "app.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Subscribe():
		if ev.Kind != Create {
			t.Fatalf("expected Create, got %v", ev.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Create event")
	}
}

func TestWatcherStopDropsPendingAndClosesChannel(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Debounce = time.Hour

	w, err := New(Directory(dir), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path := filepath.Join(dir, "app.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)

	w.Stop()

	var got []Event
	for ev := range w.Subscribe() {
		got = append(got, ev)
	}
	if len(got) != 0 {
		t.Fatalf("expected no synthesized event on shutdown, got %v", got)
	}
}

func TestWatcherIgnoresHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Debounce = 20 * time.Millisecond
	cfg.IgnoreHidden = true

	w, err := New(Directory(dir), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, ".hidden"), []byte(`x`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Subscribe():
		t.Fatalf("expected no event for hidden file, got %v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}
