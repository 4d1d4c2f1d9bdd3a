// Package store persists small opaque blobs under string keys between runs.
//
// The dashboard keeps two keys: KeyViewState holds the ViewState snapshot and
// KeySelectedComment holds the comment handed to the detail view. Any durable
// key-value medium can back a Store; this package provides a JSON file, an
// SQLite database, and an in-memory map.
package store
