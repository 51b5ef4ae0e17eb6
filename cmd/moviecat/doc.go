// Package main hosts the moviecat CLI entrypoint and command graph.
//
// Running moviecat without a subcommand starts the interactive numbered menu.
// Every menu entry also has a Cobra subcommand (list, add, delete, update,
// stats, random, search, sorted, website) so the catalog can be scripted;
// `logs` reads back the log file and `config` manages the TOML file.
// This package centralizes configuration resolution, store and logger
// construction, and console rendering; catalog behavior lives in
// internal/library.
package main
