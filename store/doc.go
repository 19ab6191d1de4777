// Package store provides an atomic, typed key-value map with wait-free
// reads and RCU-style (read-copy-update) writes.
//
// A Store[T] holds a single immutable snapshot of its full key->entry
// mapping behind an atomic.Pointer. Readers load that pointer once and see
// either the pre- or post-state of any write, never a torn mix. Writers
// clone the current snapshot, mutate the clone, and publish it with a
// compare-and-swap, retrying on contention — there is no reader lock and
// no reader/writer contention beyond pointer and refcount traffic.
package store
