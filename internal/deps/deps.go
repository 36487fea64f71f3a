package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency Scribe relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// DefaultRequirements lists the external tools the `scribe backends` command
// reports on. Only one transcription backend needs to be present; everything
// else is an optional capability.
func DefaultRequirements(python, whisperBinary, ffmpegBinary string) []Requirement {
	return []Requirement{
		{Name: "Python", Command: python, Description: "Runs the whisper and whisperx library backends"},
		{Name: "Whisper CLI", Command: whisperBinary, Description: "Fallback command-line transcription backend", Optional: true},
		{Name: "FFmpeg", Command: ffmpegBinary, Description: "Optional audio pre-normalization", Optional: true},
		{Name: "NVIDIA SMI", Command: "nvidia-smi", Description: "Indicates CUDA availability for WhisperX", Optional: true},
	}
}

// CUDAAvailable reports whether an NVIDIA driver appears to be installed.
// WhisperX device selection falls back to CPU when this is false.
func CUDAAvailable() bool {
	_, err := exec.LookPath("nvidia-smi")
	return err == nil
}
