// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"scribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CacheDir = filepath.Join(base, "cache")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithDiarizationPolicy sets the diarization failure policy on the test config.
func WithDiarizationPolicy(policy string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Diarization.Policy = policy
	}
}

// WithCacheEnabled turns the transcript cache on for the test config.
func WithCacheEnabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Cache.Enabled = true
	}
}

// WithPython overrides the interpreter used by the library backends.
func WithPython(python string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Whisper.Python = python
	}
}
