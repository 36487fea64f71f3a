package whisper

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"scribe/internal/logging"
	"scribe/internal/progress"
	"scribe/internal/result"
	"scribe/internal/services"
)

//go:embed scripts/whisper_runner.py
var runnerScript []byte

// Progress checkpoints for this backend.
const (
	checkpointStart       = 10
	checkpointModelLoaded = 30
	checkpointTranscribed = 90
)

// Config captures runtime settings for the whisper library backend.
type Config struct {
	// Python is the interpreter that has openai-whisper installed.
	Python string
}

// Service runs the whisper library through its embedded Python runner.
type Service struct {
	cfg      Config
	logger   *slog.Logger
	reporter *progress.Reporter
	runner   services.CommandRunner
}

// New creates a whisper backend adapter.
func New(cfg Config, logger *slog.Logger, reporter *progress.Reporter) *Service {
	if cfg.Python == "" {
		cfg.Python = "python3"
	}
	return &Service{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "whisper"),
		reporter: reporter,
		runner:   services.Run,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner services.CommandRunner) {
	s.runner = runner
}

// Name implements services.Backend.
func (s *Service) Name() string { return "whisper" }

// payload is the runner's stdout JSON shape.
type payload struct {
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
		Words []struct {
			Word        string  `json:"word"`
			Start       float64 `json:"start"`
			End         float64 `json:"end"`
			Probability float64 `json:"probability"`
		} `json:"words"`
	} `json:"segments"`
}

// Transcribe implements services.Backend.
func (s *Service) Transcribe(ctx context.Context, req services.Request) (result.Document, error) {
	var doc result.Document

	s.reporter.Report(checkpointStart)

	scriptPath := filepath.Join(req.WorkDir, "whisper_runner.py")
	if err := os.WriteFile(scriptPath, runnerScript, 0o755); err != nil {
		return doc, services.Wrap(services.ErrExternalTool, s.Name(), "transcribe", "write runner script", err)
	}

	args := []string{scriptPath, "--audio", req.AudioPath, "--model", req.Model}
	if req.Language != "" {
		args = append(args, "--language", req.Language)
	}

	var failedStage services.StageEvent
	stderrLine := func(line string) {
		event, ok := services.ParseStageEvent(line)
		if !ok {
			s.logger.Debug(line)
			return
		}
		if !event.OK {
			failedStage = event
			return
		}
		switch event.Name {
		case "load":
			s.reporter.Report(checkpointModelLoaded)
		case "transcribe":
			s.reporter.Report(checkpointTranscribed)
		}
	}

	stdout, err := s.runner(ctx, stderrLine, s.cfg.Python, args...)
	if err != nil {
		if failedStage.Name != "" {
			message := fmt.Sprintf("%s failed: %s", failedStage.Name, failedStage.Detail)
			return doc, services.Wrap(services.ErrExternalTool, s.Name(), "transcribe", message, err)
		}
		return doc, services.Wrap(services.ErrExternalTool, s.Name(), "transcribe", "", err)
	}

	var parsed payload
	if err := json.Unmarshal(stdout, &parsed); err != nil {
		return doc, services.Wrap(services.ErrExternalTool, s.Name(), "parse output", "", err)
	}

	segments := make([]result.Segment, 0, len(parsed.Segments))
	for _, seg := range parsed.Segments {
		out := result.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		}
		for _, word := range seg.Words {
			out.Words = append(out.Words, result.Word{
				Start: word.Start,
				End:   word.End,
				Word:  word.Word,
				Score: word.Probability,
			})
		}
		segments = append(segments, out)
	}

	s.logger.Info("transcription complete",
		logging.Int("segments", len(segments)),
		logging.String("language", parsed.Language),
	)
	return result.Success(parsed.Language, segments), nil
}
