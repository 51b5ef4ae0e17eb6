// Package catalog holds the movie record model and the pure operations the
// rest of moviecat builds on: input validation, rating statistics, ranking,
// title search, and random selection.
//
// Nothing in this package performs I/O. Every function takes a snapshot of
// the collection and returns values or new slices; callers re-fetch the
// collection from the store before each call, so no derived state such as
// rankings is cached between operations.
//
// Operations that are undefined on an empty collection (mean, median, random
// pick) return ErrEmptyCollection rather than a numeric placeholder.
package catalog
