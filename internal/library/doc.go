// Package library implements the catalog operations behind every menu entry
// and subcommand: listing, adding (by metadata lookup or manually), deleting,
// rating updates, statistics, random picks, search, ranking and website
// generation.
//
// A Service is assembled from a store.Store, a metadata.Provider and a
// website.Generator. Each operation runs under its own correlation ID so the
// log file can be followed per action. Errors carry services markers; callers
// branch on them with errors.Is and render user-facing messages themselves.
package library
