// Package logging assembles the structured slog loggers used across Scribe.
//
// Diagnostics always go to stderr: stdout is reserved for the one result
// document a run emits, and the host process treats everything on stderr as
// free-text diagnostics (except PROGRESS markers, which the progress package
// owns). The package provides console and JSON handlers, attribute helpers,
// and a no-op logger for tests.
package logging
