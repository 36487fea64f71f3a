package whisper

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"scribe/internal/progress"
	"scribe/internal/result"
	"scribe/internal/services"
)

const samplePayload = `{
  "language": "en",
  "segments": [
    {"start": 0.0, "end": 2.5, "text": " Hello there. ", "words": [
      {"word": " Hello", "start": 0.0, "end": 1.0, "probability": 0.98},
      {"word": "there.", "start": 1.1, "end": 2.5, "probability": 0.0}
    ]},
    {"start": 2.5, "end": 4.0, "text": "General Kenobi.", "words": []}
  ]
}`

func fakeRunner(stderrLines []string, stdout string, err error) services.CommandRunner {
	return func(ctx context.Context, stderrLine func(string), name string, args ...string) ([]byte, error) {
		for _, line := range stderrLines {
			stderrLine(line)
		}
		return []byte(stdout), err
	}
}

func newTestService(t *testing.T, runner services.CommandRunner, progressOut *bytes.Buffer) (*Service, services.Request) {
	t.Helper()
	svc := New(Config{Python: "python3"}, nil, progress.NewReporter(progressOut))
	svc.WithCommandRunner(runner)
	req := services.Request{
		AudioPath: "/audio/sample.wav",
		Model:     "base",
		WorkDir:   t.TempDir(),
	}
	return svc, req
}

func TestTranscribeReshapesPayload(t *testing.T) {
	var progressOut bytes.Buffer
	svc, req := newTestService(t, fakeRunner(
		[]string{"Loading Whisper model: base", "STAGE:load:ok", "STAGE:transcribe:ok"},
		samplePayload, nil,
	), &progressOut)

	doc, err := svc.Transcribe(context.Background(), req)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if doc.Status != result.StatusSuccess || doc.Language != "en" {
		t.Fatalf("unexpected document: %#v", doc)
	}
	if len(doc.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(doc.Segments))
	}
	if doc.Segments[0].ID != 0 || doc.Segments[1].ID != 1 {
		t.Fatalf("segment ids not dense: %#v", doc.Segments)
	}
	if doc.Segments[0].Text != "Hello there." {
		t.Fatalf("text not trimmed: %q", doc.Segments[0].Text)
	}
	if doc.Segments[0].Speaker != result.DefaultSpeaker {
		t.Fatalf("expected default speaker, got %q", doc.Segments[0].Speaker)
	}
	if doc.Segments[0].Words[1].Score != result.DefaultWordScore {
		t.Fatalf("expected defaulted word score, got %v", doc.Segments[0].Words[1].Score)
	}

	markers := progressOut.String()
	for _, want := range []string{"PROGRESS:10\n", "PROGRESS:30\n", "PROGRESS:90\n"} {
		if !strings.Contains(markers, want) {
			t.Fatalf("missing marker %q in %q", want, markers)
		}
	}
}

func TestTranscribeReportsLoadFailure(t *testing.T) {
	var progressOut bytes.Buffer
	svc, req := newTestService(t, fakeRunner(
		[]string{"STAGE:load:failed:checkpoint download interrupted"},
		"", errors.New("exit status 1"),
	), &progressOut)

	_, err := svc.Transcribe(context.Background(), req)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if !strings.Contains(err.Error(), "load failed: checkpoint download interrupted") {
		t.Fatalf("missing stage detail: %v", err)
	}
}

func TestTranscribeRejectsMalformedPayload(t *testing.T) {
	var progressOut bytes.Buffer
	svc, req := newTestService(t, fakeRunner(nil, "not json", nil), &progressOut)

	_, err := svc.Transcribe(context.Background(), req)
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
	if !strings.Contains(err.Error(), "parse output") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTranscribeWritesRunnerScript(t *testing.T) {
	var progressOut bytes.Buffer
	var gotArgs []string
	runner := func(ctx context.Context, stderrLine func(string), name string, args ...string) ([]byte, error) {
		gotArgs = append([]string{name}, args...)
		return []byte(`{"language":"en","segments":[]}`), nil
	}
	svc, req := newTestService(t, runner, &progressOut)
	req.Language = "de"

	if _, err := svc.Transcribe(context.Background(), req); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	joined := strings.Join(gotArgs, " ")
	if !strings.Contains(joined, "whisper_runner.py") {
		t.Fatalf("runner script not passed: %v", gotArgs)
	}
	if !strings.Contains(joined, "--language de") {
		t.Fatalf("language flag missing: %v", gotArgs)
	}
	if !strings.HasPrefix(joined, "python3 ") {
		t.Fatalf("unexpected interpreter: %v", gotArgs)
	}
}
