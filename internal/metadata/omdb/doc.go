// Package omdb is a small client for the OMDb title lookup API
// (https://www.omdbapi.com). It returns the raw string fields OMDb reports;
// interpretation of "N/A" values and year ranges is left to the caller.
package omdb
