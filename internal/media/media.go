// Package media prepares audio files for transcription. Backends accept most
// container formats directly, so normalization is optional: it resamples the
// input to the mono 16kHz PCM WAV layout the speech models were trained on.
package media

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// NormalizeAudio transcodes source into a mono 16kHz PCM WAV at dest.
func NormalizeAudio(ctx context.Context, ffmpegBinary, source, dest string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
	cmd := exec.CommandContext(ctx, ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg normalize: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
