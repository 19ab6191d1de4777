// Package live provides live-reloading, typed, in-process configuration.
//
// An application declares a strongly-typed configuration record, points
// it at a byte source (a file, an in-memory map, or anything satisfying
// loader.Source) and a set of decoders (loader.Format — JSON, YAML, TOML
// ship by default), and gets back a value that can be read wait-free from
// any goroutine and, optionally, kept current by a background filesystem
// watcher.
//
// # Components
//
//   - store: a lock-free, typed key->value map with RCU-style writes,
//     per-entry retention policy, and an optional change-event broadcast.
//   - loader: turns (key, Source, []Format) into a typed value plus
//     origin metadata, running optional pre-process/context/validate
//     hooks after parsing.
//   - watch: turns noisy OS filesystem notifications into a debounced,
//     coalesced stream of Create/Modify/Remove events.
//   - live (this package): Live[T] binds one key to one loader and an
//     optional watcher; LiveDir[T] binds an entire directory, with a
//     shared retention policy and key-extraction rule, reconciling the
//     store against the filesystem on every scan.
//
// # Quick start
//
//	src := loader.NewFileSource("/etc/myapp")
//	ld := loader.New(src, loader.JSONFormat{}, loader.YAMLFormat{})
//	st := store.New[AppConfig]()
//
//	cfg, err := live.NewLiveBuilder[AppConfig]().
//		Store(st).Loader(ld).Key("app").Build()
//	if err != nil {
//		return err
//	}
//	if err := cfg.Load(); err != nil {
//		return err
//	}
//	if err := cfg.Watch(watch.DefaultConfig()); err != nil {
//		return err
//	}
//	defer cfg.StopWatching()
//
//	value, _ := cfg.Get()
//
// # Directory of configs
//
//	dir, err := live.NewLiveDirBuilder[ServiceConfig]().
//		Store(st).Loader(ld).Root("/etc/myapp/services").
//		Pattern(live.IdentityPattern()).
//		ScanMode(live.FilesScanMode()).
//		Build()
//	if err != nil {
//		return err
//	}
//	result, err := dir.Load()
//
// result.Added/Updated/Failed/Removed/Retained report what the scan did;
// a key that fails to parse keeps whatever value it previously held.
//
// # Validation and hooks
//
// A configuration type can optionally implement loader.PreProcessor,
// loader.ContextSetter, and loader.Validator; the Loader runs them, in
// that order, after a successful parse.
//
// # Out of scope
//
// This package does not persist the store across process restarts,
// coordinate across processes, or migrate schemas. Decoder libraries and
// the OS-watcher binding are pluggable; the bundled implementations
// (encoding/json, gopkg.in/yaml.v3, github.com/pelletier/go-toml/v2,
// github.com/fsnotify/fsnotify) are defaults, not requirements.
package live
