package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger = NewComponentLogger(logger, "whisperx")
	logger.Info("transcription complete", Int("segments", 3), String("language", "en"))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, "INFO whisperx: transcription complete") {
		t.Fatalf("unexpected line: %s", line)
	}
	if !strings.Contains(line, "segments=3") || !strings.Contains(line, "language=en") {
		t.Fatalf("missing attrs: %s", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Warn("alignment failed", String("detail", "model missing for language"))
	if !strings.Contains(buf.String(), `detail="model missing for language"`) {
		t.Fatalf("expected quoted value, got: %s", buf.String())
	}
}

func TestJSONHandlerEmitsLowercaseLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Error("backend failed", Error(nil))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if payload["level"] != "error" {
		t.Fatalf("expected lowercase level, got %v", payload["level"])
	}
	if payload["msg"] != "backend failed" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info line should be filtered: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("warn line missing: %s", buf.String())
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
