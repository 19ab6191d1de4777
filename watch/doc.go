// Package watch turns noisy OS filesystem notifications into a debounced,
// coalesced, filtered stream of {Create, Modify, Remove} events. It wraps
// github.com/fsnotify/fsnotify as the concrete OS-notify backend.
package watch
