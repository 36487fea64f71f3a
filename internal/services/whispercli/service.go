package whispercli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scribe/internal/logging"
	"scribe/internal/progress"
	"scribe/internal/result"
	"scribe/internal/services"
)

// DefaultTimeout bounds a single CLI transcription run.
const DefaultTimeout = 5 * time.Minute

// Progress checkpoints for this backend.
const (
	checkpointStart    = 10
	checkpointLaunched = 30
	checkpointFinished = 80
	checkpointParsed   = 90
)

// Config captures runtime settings for the CLI backend.
type Config struct {
	// Binary is the whisper executable name or path.
	Binary string
	// Timeout bounds the transcription run. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Service shells out to the whisper binary.
type Service struct {
	cfg      Config
	logger   *slog.Logger
	reporter *progress.Reporter
	runner   services.CommandRunner
}

// New creates a CLI backend adapter.
func New(cfg Config, logger *slog.Logger, reporter *progress.Reporter) *Service {
	if cfg.Binary == "" {
		cfg.Binary = "whisper"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Service{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "whisper-cli"),
		reporter: reporter,
		runner:   services.Run,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner services.CommandRunner) {
	s.runner = runner
}

// Name implements services.Backend.
func (s *Service) Name() string { return "whisper-cli" }

// cliPayload is the JSON document the whisper binary writes next to the
// audio file stem in the output directory.
type cliPayload struct {
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe implements services.Backend.
func (s *Service) Transcribe(ctx context.Context, req services.Request) (result.Document, error) {
	var doc result.Document

	s.reporter.Report(checkpointStart)

	outputDir := filepath.Join(req.WorkDir, "cli-output")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return doc, services.Wrap(services.ErrExternalTool, s.Name(), "transcribe", "create output directory", err)
	}

	args := []string{
		req.AudioPath,
		"--model", req.Model,
		"--output_dir", outputDir,
		"--output_format", "json",
		"--verbose", "False",
	}
	if req.Language != "" {
		args = append(args, "--language", req.Language)
	}

	s.logger.Info("starting cli run",
		logging.String("binary", s.cfg.Binary),
		logging.String("model", req.Model),
		logging.Duration("timeout", s.cfg.Timeout),
	)

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	var stderrTail []string
	stderrLine := func(line string) {
		s.logger.Debug(line)
		stderrTail = append(stderrTail, line)
		if len(stderrTail) > 20 {
			stderrTail = stderrTail[1:]
		}
	}

	s.reporter.Report(checkpointLaunched)

	if _, err := s.runner(runCtx, stderrLine, s.cfg.Binary, args...); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			message := fmt.Sprintf("transcription timed out after %s", s.cfg.Timeout)
			return doc, services.Wrap(services.ErrTimeout, s.Name(), "transcribe", message, nil)
		}
		message := "CLI failed"
		if len(stderrTail) > 0 {
			message = fmt.Sprintf("CLI failed: %s", strings.Join(stderrTail, "\n"))
		}
		return doc, services.Wrap(services.ErrExternalTool, s.Name(), "transcribe", message, err)
	}

	s.reporter.Report(checkpointFinished)

	stem := strings.TrimSuffix(filepath.Base(req.AudioPath), filepath.Ext(req.AudioPath))
	jsonPath := filepath.Join(outputDir, stem+".json")
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			message := fmt.Sprintf("output JSON file not found: %s", jsonPath)
			return doc, services.Wrap(services.ErrExternalTool, s.Name(), "transcribe", message, nil)
		}
		return doc, services.Wrap(services.ErrExternalTool, s.Name(), "transcribe", "read output file", err)
	}

	var parsed cliPayload
	if err := json.Unmarshal(data, &parsed); err != nil {
		return doc, services.Wrap(services.ErrExternalTool, s.Name(), "parse output", "", err)
	}

	s.reporter.Report(checkpointParsed)

	segments := make([]result.Segment, 0, len(parsed.Segments))
	for _, seg := range parsed.Segments {
		segments = append(segments, result.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}

	s.logger.Info("transcription complete",
		logging.Int("segments", len(segments)),
		logging.String("language", parsed.Language),
	)
	return result.Success(parsed.Language, segments), nil
}
