// Package metadata resolves a user-typed title into catalog fields through an
// external lookup service.
//
// Provider is the capability the catalog service depends on. New builds the
// provider named in configuration: OMDb (the default), TMDB, or a disabled
// provider that reports lookups as unavailable so callers can fall back to
// manual entry. A missing API key is reported on the first lookup rather than
// at startup, since listing and statistics never touch the network.
package metadata
