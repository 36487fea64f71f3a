package config

import (
	"fmt"
	"strings"
)

// knownModelFamilies are the whisper model size families. Suffixed variants
// such as "large-v3" or "base.en" are accepted via prefix match.
var knownModelFamilies = []string{"tiny", "base", "small", "medium", "large", "turbo"}

// Validate checks the configuration for values no backend could honor.
func (c *Config) Validate() error {
	if err := ValidateModel(c.Whisper.Model); err != nil {
		return err
	}
	if c.WhisperX.Model != "" {
		if err := ValidateModel(c.WhisperX.Model); err != nil {
			return err
		}
	}
	if c.WhisperX.BatchSize < 1 {
		return fmt.Errorf("whisperx batch_size must be positive, got %d", c.WhisperX.BatchSize)
	}
	switch c.WhisperX.ComputeType {
	case "", "int8", "float16", "float32":
	default:
		return fmt.Errorf("whisperx compute_type %q: expected int8, float16, or float32", c.WhisperX.ComputeType)
	}
	switch c.Diarization.Policy {
	case PolicySoft, PolicyHard:
	default:
		return fmt.Errorf("diarization policy %q: expected %q or %q", c.Diarization.Policy, PolicySoft, PolicyHard)
	}
	if c.CLI.TimeoutSeconds < 1 {
		return fmt.Errorf("cli timeout_seconds must be positive, got %d", c.CLI.TimeoutSeconds)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging format %q: expected console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging level %q: expected debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}

// ValidateModel checks a whisper model name against the known size families.
func ValidateModel(model string) error {
	trimmed := strings.ToLower(strings.TrimSpace(model))
	if trimmed == "" {
		return fmt.Errorf("model name is required")
	}
	for _, family := range knownModelFamilies {
		if trimmed == family || strings.HasPrefix(trimmed, family+".") || strings.HasPrefix(trimmed, family+"-") {
			return nil
		}
	}
	return fmt.Errorf("model %q: expected one of %s (variants like large-v3 or base.en are accepted)",
		model, strings.Join(knownModelFamilies, ", "))
}
