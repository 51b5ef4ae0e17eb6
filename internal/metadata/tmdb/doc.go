// Package tmdb provides the minimal TMDB API client used to enrich movies
// added to the catalog.
//
// It authenticates requests and exposes movie search with an optional
// release-year filter. Responses are strongly typed so the metadata package can turn
// the best result into a catalog record. Options allow tests to supply custom
// HTTP clients without modifying production code.
package tmdb
