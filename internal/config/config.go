package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WorkDir  string `toml:"work_dir"`
	LogDir   string `toml:"log_dir"`
	CacheDir string `toml:"cache_dir"`
}

// Whisper configures the Python interpreter used for the library backends and
// the model size used when the CLI does not specify one.
type Whisper struct {
	Python string `toml:"python"`
	Model  string `toml:"model"`
}

// WhisperX configures the WhisperX backend.
type WhisperX struct {
	Model       string `toml:"model"`
	BatchSize   int    `toml:"batch_size"`
	CUDAEnabled bool   `toml:"cuda_enabled"`
	ComputeType string `toml:"compute_type"`
	HFToken     string `toml:"hf_token"`
}

// Diarization configures speaker assignment for the WhisperX backend.
type Diarization struct {
	Enabled bool   `toml:"enabled"`
	Policy  string `toml:"policy"`
}

// CLI configures the command-line whisper fallback backend.
type CLI struct {
	Binary         string `toml:"binary"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Audio configures optional ffmpeg pre-normalization.
type Audio struct {
	Normalize bool   `toml:"normalize"`
	FFmpeg    string `toml:"ffmpeg"`
}

// Cache configures the transcript cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Runtime contains process-level behaviour.
type Runtime struct {
	Exclusive bool `toml:"exclusive"`
}

// Logging contains configuration for diagnostic output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Diarization policy values.
const (
	PolicySoft = "soft"
	PolicyHard = "hard"
)

// Config encapsulates all configuration values for Scribe.
//
// Sections by subsystem:
//   - Paths: work, log, and cache directories
//   - Whisper: Python interpreter and default model size
//   - WhisperX: batching, device selection, Hugging Face token
//   - Diarization: speaker assignment toggle and failure policy
//   - CLI: whisper binary fallback and its timeout
//   - Audio: optional ffmpeg pre-normalization
//   - Cache: transcript cache location and toggle
//   - Runtime: machine-wide exclusive run lock
//   - Logging: diagnostic format and level (stderr only)
type Config struct {
	Paths       Paths       `toml:"paths"`
	Whisper     Whisper     `toml:"whisper"`
	WhisperX    WhisperX    `toml:"whisperx"`
	Diarization Diarization `toml:"diarization"`
	CLI         CLI         `toml:"cli"`
	Audio       Audio       `toml:"audio"`
	Cache       Cache       `toml:"cache"`
	Runtime     Runtime     `toml:"runtime"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/scribe/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("scribe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.WorkDir, c.Paths.LogDir}
	if c.Cache.Enabled {
		dirs = append(dirs, c.Paths.CacheDir)
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CachePath returns the transcript cache database location.
func (c *Config) CachePath() string {
	if strings.TrimSpace(c.Cache.Path) != "" {
		return c.Cache.Path
	}
	return filepath.Join(c.Paths.CacheDir, "transcripts.db")
}

// LockPath returns the location of the exclusive run lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.WorkDir, "scribe.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
