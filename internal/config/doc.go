// Package config loads, normalizes, and validates Scribe configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// HF_TOKEN. Every knob the CLI needs (backend commands, diarization policy,
// cache and work directories) is discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical policy values, and clear validation errors.
package config
