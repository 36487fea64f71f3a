package config

const (
	defaultWorkDir           = "~/.local/share/scribe/work"
	defaultLogDir            = "~/.local/share/scribe/logs"
	defaultCacheDir          = "~/.cache/scribe"
	defaultPython            = "python3"
	defaultModel             = "base"
	defaultWhisperXBatchSize = 16
	defaultCLIBinary         = "whisper"
	defaultCLITimeoutSeconds = 300
	defaultFFmpegBinary      = "ffmpeg"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:  defaultWorkDir,
			LogDir:   defaultLogDir,
			CacheDir: defaultCacheDir,
		},
		Whisper: Whisper{
			Python: defaultPython,
			Model:  defaultModel,
		},
		WhisperX: WhisperX{
			BatchSize: defaultWhisperXBatchSize,
		},
		Diarization: Diarization{
			Enabled: true,
			Policy:  PolicySoft,
		},
		CLI: CLI{
			Binary:         defaultCLIBinary,
			TimeoutSeconds: defaultCLITimeoutSeconds,
		},
		Audio: Audio{
			FFmpeg: defaultFFmpegBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
