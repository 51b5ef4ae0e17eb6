// Package logs reads back the catalog's log file for `moviecat logs`.
//
// Last returns the final lines of the file with bounded memory; Follow polls
// for appended lines until its context is cancelled.
package logs
