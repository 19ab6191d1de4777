// Package loader turns a (key, byte source, decoder set) triple into a
// typed value plus origin metadata. Sources and formats are pluggable
// interfaces; this package ships a MemorySource and a sandboxed
// FileSource, and JSON/YAML/TOML Format implementations.
package loader
