// Package logging assembles structured slog loggers and formatting helpers used
// across moviecat.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so catalog operations can tag log lines
// with the operation name and a correlation ID. The CLI writes logs to a file
// so the interactive menu stays readable; NewNop serves tests and wiring code
// that cannot fail.
package logging
