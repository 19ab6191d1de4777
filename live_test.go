package live

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/canmi21/live/loader"
	"github.com/canmi21/live/store"
	"github.com/canmi21/live/watch"
)

type appConfig struct {
	Name string `json:"name"`
	Port int    `json:"port"`
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func TestLiveHappyLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json"), `{"name":"svc","port":8080}`)

	src := loader.NewFileSource(dir)
	ld := loader.New(src, loader.JSONFormat{})
	st := store.New[appConfig]()

	cfg, err := NewLiveBuilder[appConfig]().Store(st).Loader(ld).Key("app").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if _, ok := cfg.Get(); ok {
		t.Fatal("Get before Load should report false")
	}

	if err := cfg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	value, ok := cfg.Get()
	if !ok {
		t.Fatal("Get after Load should report true")
	}
	if value.Name != "svc" || value.Port != 8080 {
		t.Fatalf("Get() = %+v, want {svc 8080}", value)
	}
}

func TestLiveBuildMissingFieldsRejected(t *testing.T) {
	if _, err := NewLiveBuilder[appConfig]().Build(); !IsBuilderError(err) {
		t.Fatalf("Build with nothing set: err = %v, want BuilderError", err)
	}

	st := store.New[appConfig]()
	if _, err := NewLiveBuilder[appConfig]().Store(st).Build(); !IsBuilderError(err) {
		t.Fatalf("Build with only Store set: err = %v, want BuilderError", err)
	}
}

func TestLiveWatchRequiresPriorLoad(t *testing.T) {
	dir := t.TempDir()
	src := loader.NewFileSource(dir)
	ld := loader.New(src, loader.JSONFormat{})
	st := store.New[appConfig]()

	cfg, err := NewLiveBuilder[appConfig]().Store(st).Loader(ld).Key("app").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := cfg.Watch(watch.DefaultConfig()); !IsNotLoaded(err) {
		t.Fatalf("Watch before Load: err = %v, want NotLoaded", err)
	}
}

func TestLiveReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json")
	writeFile(t, path, `{"name":"v1","port":1}`)

	src := loader.NewFileSource(dir)
	ld := loader.New(src, loader.JSONFormat{})
	st := store.New[appConfig]()

	cfg, err := NewLiveBuilder[appConfig]().Store(st).Loader(ld).Key("app").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	watchCfg := watch.DefaultConfig()
	watchCfg.Debounce = 20 * time.Millisecond
	if err := cfg.Watch(watchCfg); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer cfg.StopWatching()

	if !cfg.IsWatching() {
		t.Fatal("IsWatching should report true after Watch")
	}

	writeFile(t, path, `{"name":"v2","port":2}`)

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if value, ok := cfg.Get(); ok && value.Name == "v2" {
			return
		}
		time.Sleep(25 * time.Millisecond)
	}
	t.Fatal("value was not reloaded within the deadline")
}

func TestLiveStopWatchingIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json"), `{"name":"svc","port":8080}`)

	src := loader.NewFileSource(dir)
	ld := loader.New(src, loader.JSONFormat{})
	st := store.New[appConfig]()

	cfg, err := NewLiveBuilder[appConfig]().Store(st).Loader(ld).Key("app").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Watch(watch.DefaultConfig()); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	cfg.StopWatching()
	cfg.StopWatching()

	if cfg.IsWatching() {
		t.Fatal("IsWatching should report false after StopWatching")
	}
}

func TestLiveCloneSharesWatcherRefcount(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json"), `{"name":"svc","port":8080}`)

	src := loader.NewFileSource(dir)
	ld := loader.New(src, loader.JSONFormat{})
	st := store.New[appConfig]()

	cfg, err := NewLiveBuilder[appConfig]().Store(st).Loader(ld).Key("app").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Watch(watch.DefaultConfig()); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	clone := cfg.Clone()
	clone.Close()
	if !cfg.IsWatching() {
		t.Fatal("watcher should still be attached after only one of two Close calls")
	}

	cfg.Close()
	if cfg.IsWatching() {
		t.Fatal("watcher should be released once every clone has closed")
	}
}
