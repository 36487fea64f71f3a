package services

import (
	"context"

	"scribe/internal/result"
)

// Request describes one transcription run. It is built once from CLI
// arguments and configuration, then treated as immutable.
type Request struct {
	// AudioPath is the absolute path of the input file. The driver has
	// already verified it exists.
	AudioPath string
	// Model is the whisper model size (tiny, base, small, medium, large, or
	// a suffixed variant).
	Model string
	// Language is the canonical ISO 639-1 code, or empty for auto-detection.
	Language string
	// BatchSize applies to the whisperx backend only.
	BatchSize int
	// HardDiarization aborts the run when diarization fails instead of
	// degrading to a single speaker label.
	HardDiarization bool
	// WorkDir is a per-run scratch directory the driver removes afterwards.
	WorkDir string
}

// Backend is a transcription backend adapter. Transcribe blocks until the
// wrapped tool finishes; cancellation is via ctx only.
type Backend interface {
	Name() string
	Transcribe(ctx context.Context, req Request) (result.Document, error)
}
