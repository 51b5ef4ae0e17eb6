// Package services defines shared utilities consumed by the catalog service,
// the record stores, and the metadata clients.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper so failures carry a
//     component/operation prefix and can still be matched with errors.Is.
//   - Context helpers that stamp operation names and correlation identifiers
//     for logging.
//
// Use these helpers when wiring new operations so error reporting and log
// correlation stay uniform across the CLI.
package services
