package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/testsupport"
)

func TestBackendsReportsAvailability(t *testing.T) {
	dir := t.TempDir()
	python := testsupport.WriteExecutable(t, dir, "python3", `if [ "$2" = "import whisper" ]; then exit 0; fi
exit 1`)
	cfgPath := writeTestConfig(t, dir, fmt.Sprintf(`[whisper]
python = %q

[cli]
binary = "scribe-test-no-such-binary"
`, python))

	stdout, _, err := runCLI(t, "--config", cfgPath, "backends")
	if err != nil {
		t.Fatalf("backends: %v", err)
	}
	for _, want := range []string{"Python", "Whisper CLI", "FFmpeg", "Selected backend: whisper"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("missing %q in output:\n%s", want, stdout)
		}
	}
}

func TestBackendsPrintsInstallHintWhenNothingFound(t *testing.T) {
	dir := t.TempDir()
	python := testsupport.WriteExecutable(t, dir, "python3", "exit 1")
	cfgPath := writeTestConfig(t, dir, fmt.Sprintf(`[whisper]
python = %q

[cli]
binary = %q
`, python, filepath.Join(dir, "no-such-whisper")))

	stdout, _, err := runCLI(t, "--config", cfgPath, "backends")
	if err != nil {
		t.Fatalf("backends: %v", err)
	}
	if !strings.Contains(stdout, "No transcription backend detected.") {
		t.Fatalf("missing detection notice:\n%s", stdout)
	}
	if !strings.Contains(stdout, "pip install openai-whisper") {
		t.Fatalf("missing install hint:\n%s", stdout)
	}
}
