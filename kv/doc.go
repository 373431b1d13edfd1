// Package kv provides the plain string key-value stores that encrypted
// storage is layered on.
//
// Every backend implements [Store]. Values are opaque strings; the stores
// never inspect or transform them. Three backends are provided:
//
//   - [Memory]: an in-process map, useful for tests and ephemeral sessions.
//   - [File]: a JSON document on disk, rewritten atomically on every change.
//   - [SQLite]: a single table in a SQLite database (pure Go driver).
//
// The file and SQLite backends persist across process restarts. All
// backends are safe for concurrent use and return [ErrClosed] once closed.
package kv
