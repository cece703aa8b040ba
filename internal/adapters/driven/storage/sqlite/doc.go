// Package sqlite provides a SQLite-backed implementation of driven.WorkspaceStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each folder contribution is one row holding the graph
// in the canonical JSON of the codec package, tagged with the run that last
// changed it. The default SDK occupies a single-row table.
//
// # Data Location
//
// By default, the database is stored at ~/.wsimport/data/workspace.db
//
// # Thread Safety
//
// The workspace is held in memory and guarded by a single writer lock. An
// Update that fails, in fn or while persisting, leaves both the database and
// the in-memory workspace untouched.
package sqlite
