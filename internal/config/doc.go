// Package config loads, normalizes, and validates moviecat configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OMDB_API_KEY and TMDB_API_KEY. The Config type centralizes every knob the
// CLI needs so the store location, metadata provider, and website output are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical backend/provider names, and clear validation
// errors.
package config
