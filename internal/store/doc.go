// Package store persists the movie catalog.
//
// Two backends implement Store: a SQLite database (the default, using the
// pure-Go modernc.org/sqlite driver with WAL journaling and busy retries) and
// a JSON document guarded by an advisory file lock. Title lookups in both
// are case-insensitive through textutil.TitleKey; the stored spelling is kept
// as entered. Open picks the backend from configuration and callers own the
// returned handle until Close.
package store
