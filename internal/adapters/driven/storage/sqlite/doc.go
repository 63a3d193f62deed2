// Package sqlite provides a SQLite-based implementation of driven.PeerStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. Peers seen in responses are kept here so that later requests can
// address them by username, phone or ID across runs.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.tgcore/data/peers.db
package sqlite
