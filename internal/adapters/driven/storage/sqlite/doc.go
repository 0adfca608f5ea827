// Package sqlite provides the SQLite-backed article store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Records live in a single articles table; the seq column
// keeps insertion order and the unique id column makes repeated inserts of
// the same article a no-op.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default the database is stored at $XDG_DATA_HOME/feedcorpus/articles.db.
//
// # Thread Safety
//
// All operations are safe for concurrent use. The store relies on SQLite
// locking in WAL mode.
package sqlite
