package deps

import (
	"context"
	"os/exec"
	"time"
)

// Backend identifies an installed transcription backend.
type Backend string

const (
	BackendWhisper    Backend = "whisper"
	BackendWhisperX   Backend = "whisperx"
	BackendWhisperCLI Backend = "whisper-cli"
	BackendNone       Backend = "none"
)

// probeTimeout bounds each availability probe so a wedged interpreter cannot
// stall the whole run.
const probeTimeout = 5 * time.Second

// Detector probes for installed transcription backends in preference order:
// the whisper Python library, the whisperx Python library, then a whisper
// command-line binary.
type Detector struct {
	python        string
	whisperBinary string
	runner        func(ctx context.Context, name string, args ...string) error
}

// NewDetector constructs a detector. Empty arguments fall back to "python3"
// and "whisper".
func NewDetector(python, whisperBinary string) *Detector {
	if python == "" {
		python = "python3"
	}
	if whisperBinary == "" {
		whisperBinary = "whisper"
	}
	return &Detector{python: python, whisperBinary: whisperBinary}
}

// WithCommandRunner sets a custom probe runner (for testing).
func (d *Detector) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	d.runner = runner
}

// Detect returns the first available backend, or BackendNone when every probe
// fails.
func (d *Detector) Detect(ctx context.Context) Backend {
	if d.probe(ctx, d.python, "-c", "import whisper") == nil {
		return BackendWhisper
	}
	if d.probe(ctx, d.python, "-c", "import whisperx") == nil {
		return BackendWhisperX
	}
	if d.probe(ctx, d.whisperBinary, "--help") == nil {
		return BackendWhisperCLI
	}
	return BackendNone
}

func (d *Detector) probe(ctx context.Context, name string, args ...string) error {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if d.runner != nil {
		return d.runner(probeCtx, name, args...)
	}
	cmd := exec.CommandContext(probeCtx, name, args...) //nolint:gosec
	return cmd.Run()
}

// InstallHint is embedded in the fatal error when no backend is installed.
func InstallHint() string {
	return "No Whisper installation found. Please install whisper or whisperx:\n" +
		"pip install openai-whisper\n" +
		"or\n" +
		"pip install whisperx"
}
