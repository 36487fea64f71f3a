package whisperx

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"scribe/internal/deps"
	"scribe/internal/logging"
	"scribe/internal/progress"
	"scribe/internal/result"
	"scribe/internal/services"
)

//go:embed scripts/whisperx_runner.py
var runnerScript []byte

// Service runs WhisperX through its embedded Python runner.
type Service struct {
	cfg       Config
	logger    *slog.Logger
	reporter  *progress.Reporter
	runner    services.CommandRunner
	cudaProbe func() bool
}

// New creates a WhisperX backend adapter.
func New(cfg Config, logger *slog.Logger, reporter *progress.Reporter) *Service {
	if cfg.Python == "" {
		cfg.Python = "python3"
	}
	return &Service{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "whisperx"),
		reporter:  reporter,
		runner:    services.Run,
		cudaProbe: deps.CUDAAvailable,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner services.CommandRunner) {
	s.runner = runner
}

// WithCUDAProbe sets a custom CUDA availability probe (for testing).
func (s *Service) WithCUDAProbe(probe func() bool) {
	s.cudaProbe = probe
}

// Name implements services.Backend.
func (s *Service) Name() string { return "whisperx" }

// deviceAndComputeType selects cuda/float16 when CUDA is enabled and a driver
// is present, cpu/float32 otherwise. An explicit compute type wins.
func (s *Service) deviceAndComputeType() (string, string) {
	device := CPUDevice
	compute := CPUComputeType
	if s.cfg.CUDAEnabled && s.cudaProbe() {
		device = CUDADevice
		compute = CUDAComputeType
	}
	if s.cfg.ComputeType != "" {
		compute = s.cfg.ComputeType
	}
	return device, compute
}

// payload is the runner's stdout JSON shape.
type payload struct {
	Language string `json:"language"`
	Segments []struct {
		Start   float64 `json:"start"`
		End     float64 `json:"end"`
		Text    string  `json:"text"`
		Speaker string  `json:"speaker"`
		Words   []struct {
			Word    string  `json:"word"`
			Start   float64 `json:"start"`
			End     float64 `json:"end"`
			Score   float64 `json:"score"`
			Speaker string  `json:"speaker"`
		} `json:"words"`
	} `json:"segments"`
	AlignFailed      string `json:"align_failed"`
	DiarizeFailed    string `json:"diarize_failed"`
	DiarizeTraceback string `json:"diarize_traceback"`
}

// Transcribe implements services.Backend.
func (s *Service) Transcribe(ctx context.Context, req services.Request) (result.Document, error) {
	var doc result.Document

	s.reporter.Report(checkpointStart)

	scriptPath := filepath.Join(req.WorkDir, "whisperx_runner.py")
	if err := os.WriteFile(scriptPath, runnerScript, 0o755); err != nil {
		return doc, services.Wrap(services.ErrExternalTool, s.Name(), "transcribe", "write runner script", err)
	}

	device, computeType := s.deviceAndComputeType()
	s.logger.Info("starting whisperx run",
		logging.String("device", device),
		logging.String("compute_type", computeType),
		logging.String("model", req.Model),
		logging.Bool("diarize", s.cfg.DiarizationEnabled),
	)

	args := s.buildArgs(scriptPath, req, device, computeType)

	var failedStage services.StageEvent
	stderrLine := func(line string) {
		event, ok := services.ParseStageEvent(line)
		if !ok {
			s.logger.Debug(line)
			return
		}
		if !event.OK {
			switch event.Name {
			case "align":
				s.logger.Warn("alignment failed, continuing with unaligned segments",
					logging.String(logging.FieldStage, event.Name),
					logging.String("detail", event.Detail),
				)
			case "diarize":
				// Policy applied after the payload arrives, with traceback.
			default:
				failedStage = event
			}
			return
		}
		switch event.Name {
		case "load":
			s.reporter.Report(checkpointModelLoaded)
		case "audio":
			s.reporter.Report(checkpointAudioLoaded)
		case "transcribe":
			s.reporter.Report(checkpointTranscribed)
		case "align":
			s.reporter.Report(checkpointAligned)
		case "diarize":
			s.reporter.Report(checkpointDiarized)
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

	if parsed.DiarizeFailed != "" {
		if req.HardDiarization {
			return doc, &services.DiarizationError{
				Detail:    parsed.DiarizeFailed,
				Traceback: parsed.DiarizeTraceback,
			}
		}
		s.logger.Warn("speaker diarization failed, keeping single speaker label",
			logging.String("detail", parsed.DiarizeFailed),
		)
	}

	segments := make([]result.Segment, 0, len(parsed.Segments))
	for _, seg := range parsed.Segments {
		out := result.Segment{
			Start:   seg.Start,
			End:     seg.End,
			Text:    strings.TrimSpace(seg.Text),
			Speaker: seg.Speaker,
		}
		for _, word := range seg.Words {
			out.Words = append(out.Words, result.Word{
				Start: word.Start,
				End:   word.End,
				Word:  word.Word,
				Score: word.Score,
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

// buildArgs constructs the runner invocation.
func (s *Service) buildArgs(scriptPath string, req services.Request, device, computeType string) []string {
	batchSize := req.BatchSize
	if batchSize < 1 {
		batchSize = 16
	}
	args := []string{
		scriptPath,
		"--audio", req.AudioPath,
		"--model", req.Model,
		"--device", device,
		"--compute-type", computeType,
		"--batch-size", strconv.Itoa(batchSize),
	}
	if req.Language != "" {
		args = append(args, "--language", req.Language)
	}
	if s.cfg.DiarizationEnabled {
		args = append(args, "--diarize")
		if s.cfg.HFToken != "" {
			args = append(args, "--hf-token", s.cfg.HFToken)
		}
	}
	return args
}
