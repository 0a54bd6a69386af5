// Package sqlite provides the SQLite-backed message store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; applied versions are recorded in schema_migrations.
//
// # Reading
//
// Messages are read newest first in pages of a fixed size, keyed on msgid,
// so a cursor never holds a database connection between pages. An optional
// rate limiter spaces page fetches out on shared databases.
//
// # Data Location
//
// By default, the database is stored at ~/.querytrans/data/messages.db
package sqlite
