// Package main hosts the Scribe CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into backend
// detection, transcription runs, dependency reporting, and configuration
// scaffolding. It centralizes configuration resolution and structured logging
// setup so subcommands can focus on user experience instead of wiring.
//
// The transcription contract is strict: stdout carries exactly one JSON
// document per run, everything else (logs, progress markers) goes to stderr.
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
