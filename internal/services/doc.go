// Package services defines the contract between the CLI driver and the
// transcription backend adapters, plus the shared subprocess plumbing they
// use.
//
// Each backend (whisper library, whisperx, whisper CLI) lives in its own
// subpackage and satisfies the Backend interface. The Python-based backends
// communicate over a small line protocol: STAGE events and free-text
// diagnostics on stderr, the backend-native JSON payload on stdout. Failure
// policy, meaning what aborts a run and what merely degrades it, always
// lives on the Go side.
package services
