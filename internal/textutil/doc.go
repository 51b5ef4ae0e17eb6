// Package textutil provides text helpers for movie titles.
//
// The primary use cases are:
//   - Folding titles into case-insensitive keys for lookups and uniqueness
//   - Case-insensitive substring matching for title search
//   - Trigram fingerprints and cosine similarity for "did you mean" suggestions
//
// Folding uses Unicode case folding from golang.org/x/text so titles such as
// "AMÉLIE" and "amélie" collapse to the same key.
package textutil
