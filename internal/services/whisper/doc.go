// Package whisper adapts the openai-whisper Python library as a transcription
// backend.
//
// The library runs inside an embedded Python runner script; the adapter
// writes the script into the run's work directory, executes it with the
// configured interpreter, maps its stage events to progress checkpoints, and
// reshapes the JSON payload. This backend has no diarization, so every
// segment carries the default speaker label.
package whisper
