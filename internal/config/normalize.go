package config

import (
	"os"
	"strings"
)

// normalize trims string fields, applies environment fallbacks, and expands
// every path field to an absolute location.
func (c *Config) normalize() error {
	c.Whisper.Python = strings.TrimSpace(c.Whisper.Python)
	if c.Whisper.Python == "" {
		c.Whisper.Python = defaultPython
	}
	c.Whisper.Model = strings.TrimSpace(c.Whisper.Model)
	if c.Whisper.Model == "" {
		c.Whisper.Model = defaultModel
	}

	c.WhisperX.Model = strings.TrimSpace(c.WhisperX.Model)
	c.WhisperX.ComputeType = strings.ToLower(strings.TrimSpace(c.WhisperX.ComputeType))
	c.WhisperX.HFToken = strings.TrimSpace(c.WhisperX.HFToken)
	if c.WhisperX.HFToken == "" {
		c.WhisperX.HFToken = strings.TrimSpace(os.Getenv("HF_TOKEN"))
	}
	if c.WhisperX.BatchSize == 0 {
		c.WhisperX.BatchSize = defaultWhisperXBatchSize
	}

	c.Diarization.Policy = strings.ToLower(strings.TrimSpace(c.Diarization.Policy))
	if c.Diarization.Policy == "" {
		c.Diarization.Policy = PolicySoft
	}

	c.CLI.Binary = strings.TrimSpace(c.CLI.Binary)
	if c.CLI.Binary == "" {
		c.CLI.Binary = defaultCLIBinary
	}
	if c.CLI.TimeoutSeconds == 0 {
		c.CLI.TimeoutSeconds = defaultCLITimeoutSeconds
	}

	c.Audio.FFmpeg = strings.TrimSpace(c.Audio.FFmpeg)
	if c.Audio.FFmpeg == "" {
		c.Audio.FFmpeg = defaultFFmpegBinary
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	for _, field := range []*string{
		&c.Paths.WorkDir,
		&c.Paths.LogDir,
		&c.Paths.CacheDir,
		&c.Cache.Path,
	} {
		if strings.TrimSpace(*field) == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	return nil
}
