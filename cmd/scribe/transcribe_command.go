package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/deps"
	"scribe/internal/language"
	"scribe/internal/logging"
	"scribe/internal/media"
	"scribe/internal/progress"
	"scribe/internal/result"
	"scribe/internal/services"
	"scribe/internal/services/whisper"
	"scribe/internal/services/whispercli"
	"scribe/internal/services/whisperx"
	"scribe/internal/transcriptcache"
)

const lockRetryDelay = 250 * time.Millisecond

type transcribeOptions struct {
	audioPath     string
	model         string
	modelExplicit bool
	language      string
	backend       string
	strict        bool
	exclusive     bool
	normalize     bool
	batchSize     int
}

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var (
		modelFlag    string
		languageFlag string
		backendFlag  string
		strictFlag   bool
		exclusive    bool
		normalize    bool
		batchSize    int
	)

	cmd := &cobra.Command{
		Use:   "transcribe <audio-file> [model] [language]",
		Short: "Transcribe one audio file and print a JSON transcript",
		Long: "Transcribe runs the first available Whisper backend (whisper library,\n" +
			"whisperx library, or whisper CLI) against a single audio file. The\n" +
			"normalized transcript is printed to stdout as one JSON document;\n" +
			"progress markers and diagnostics go to stderr. Model and language may\n" +
			"be given positionally or via flags.",
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildTranscribeOptions(args, modelFlag, languageFlag, backendFlag,
				strictFlag, exclusive, normalize, batchSize, ctx.configValue())
			if err != nil {
				return emitFailure(cmd, err)
			}

			logger := ctx.ensureLogger(cmd)
			reporter := progress.NewReporter(cmd.ErrOrStderr())

			doc, err := runTranscription(cmd.Context(), ctx.configValue(), logger, reporter, opts)
			if err != nil {
				return emitFailure(cmd, err)
			}
			if err := doc.Encode(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("write transcript: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Whisper model size (tiny, base, small, medium, large, turbo)")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Language code or name (default: auto-detect)")
	cmd.Flags().StringVar(&backendFlag, "backend", "auto", "Backend to use (auto, whisper, whisperx, whisper-cli)")
	cmd.Flags().BoolVar(&strictFlag, "strict-diarization", false, "Fail the run when speaker diarization fails")
	cmd.Flags().BoolVar(&exclusive, "exclusive", false, "Hold a machine-wide lock for the duration of the run")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "Resample the audio to mono 16kHz WAV with ffmpeg first")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "WhisperX batch size (default from config)")

	return cmd
}

// emitFailure prints the uniform error document to stdout and passes the
// error up for the non-zero exit. Stdout stays valid JSON no matter what
// broke.
func emitFailure(cmd *cobra.Command, err error) error {
	traceback := ""
	var diarizeErr *services.DiarizationError
	if errors.As(err, &diarizeErr) {
		traceback = diarizeErr.Traceback
	}
	doc := result.ErrorDocument(err.Error(), traceback)
	if encodeErr := doc.Encode(cmd.OutOrStdout()); encodeErr != nil {
		return fmt.Errorf("%w (write error document: %v)", err, encodeErr)
	}
	return err
}

func buildTranscribeOptions(args []string, modelFlag, languageFlag, backendFlag string,
	strict, exclusive, normalize bool, batchSize int, cfg *config.Config) (transcribeOptions, error) {
	opts := transcribeOptions{
		audioPath: args[0],
		backend:   backendFlag,
		strict:    strict,
		exclusive: exclusive || cfg.Runtime.Exclusive,
		normalize: normalize || cfg.Audio.Normalize,
		batchSize: batchSize,
	}

	if len(args) > 1 {
		if modelFlag != "" && modelFlag != args[1] {
			return opts, fmt.Errorf("model given both as argument %q and flag %q", args[1], modelFlag)
		}
		opts.model = args[1]
	} else {
		opts.model = modelFlag
	}
	opts.modelExplicit = opts.model != ""
	if opts.model == "" {
		opts.model = cfg.Whisper.Model
	}

	if len(args) > 2 {
		if languageFlag != "" && languageFlag != args[2] {
			return opts, fmt.Errorf("language given both as argument %q and flag %q", args[2], languageFlag)
		}
		opts.language = args[2]
	} else {
		opts.language = languageFlag
	}

	if opts.batchSize == 0 {
		opts.batchSize = cfg.WhisperX.BatchSize
	}
	if opts.batchSize < 1 {
		return opts, fmt.Errorf("batch size must be positive, got %d", opts.batchSize)
	}

	switch opts.backend {
	case "", "auto", string(deps.BackendWhisper), string(deps.BackendWhisperX), string(deps.BackendWhisperCLI):
	default:
		return opts, fmt.Errorf("unknown backend %q (expected auto, whisper, whisperx, or whisper-cli)", opts.backend)
	}

	return opts, nil
}

func runTranscription(ctx context.Context, cfg *config.Config, logger *slog.Logger,
	reporter *progress.Reporter, opts transcribeOptions) (result.Document, error) {
	var doc result.Document

	audioPath, err := config.ExpandPath(opts.audioPath)
	if err != nil {
		return doc, fmt.Errorf("resolve audio path: %w", err)
	}
	if _, err := os.Stat(audioPath); err != nil {
		return doc, fmt.Errorf("audio file not found: %s", opts.audioPath)
	}

	if err := config.ValidateModel(opts.model); err != nil {
		return doc, err
	}
	langCode, err := language.Canonical(opts.language)
	if err != nil {
		return doc, err
	}
	if langCode != "" {
		logger.Debug("language fixed",
			logging.String("code", langCode),
			logging.String("name", language.DisplayName(langCode)),
		)
	}

	reporter.Report(progress.CheckpointStart)

	if opts.exclusive {
		lock := flock.New(cfg.LockPath())
		locked, err := lock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return doc, fmt.Errorf("acquire run lock: %w", err)
		}
		if !locked {
			return doc, fmt.Errorf("another transcription run holds %s", cfg.LockPath())
		}
		defer func() { _ = lock.Unlock() }()
	}

	backend := deps.Backend(opts.backend)
	if opts.backend == "" || opts.backend == "auto" {
		detector := deps.NewDetector(cfg.Whisper.Python, cfg.CLI.Binary)
		backend = detector.Detect(ctx)
	}
	if backend == deps.BackendNone {
		return doc, errors.New(deps.InstallHint())
	}
	logger.Info("using transcription backend", logging.String(logging.FieldBackend, string(backend)))

	model := opts.model
	if backend == deps.BackendWhisperX && !opts.modelExplicit && cfg.WhisperX.Model != "" {
		model = cfg.WhisperX.Model
	}

	policy := cfg.Diarization.Policy
	if opts.strict {
		policy = config.PolicyHard
	}

	var cache *transcriptcache.Store
	var cacheKey string
	if cfg.Cache.Enabled {
		store, err := transcriptcache.Open(cfg.CachePath())
		if err != nil {
			logger.Warn("transcript cache unavailable", logging.Error(err))
		} else {
			defer store.Close()
			key, keyErr := transcriptcache.Key(audioPath, string(backend), model, langCode, policy)
			if keyErr != nil {
				logger.Warn("derive cache key", logging.Error(keyErr))
			} else {
				cache, cacheKey = store, key
				cached, ok, lookupErr := store.Lookup(ctx, key)
				if lookupErr != nil {
					logger.Warn("cache lookup", logging.Error(lookupErr))
				} else if ok {
					logger.Info("transcript cache hit", logging.String("db", store.Path()))
					reporter.Report(progress.CheckpointComplete)
					return cached, nil
				}
			}
		}
	}

	workDir := filepath.Join(cfg.Paths.WorkDir, "scribe-"+uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return doc, fmt.Errorf("create work directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	runAudio := audioPath
	if opts.normalize {
		normalized := filepath.Join(workDir, "normalized.wav")
		if err := media.NormalizeAudio(ctx, cfg.Audio.FFmpeg, audioPath, normalized); err != nil {
			return doc, err
		}
		runAudio = normalized
	}

	svc, err := newBackendService(backend, cfg, logger, reporter)
	if err != nil {
		return doc, err
	}

	req := services.Request{
		AudioPath:       runAudio,
		Model:           model,
		Language:        langCode,
		BatchSize:       opts.batchSize,
		HardDiarization: policy == config.PolicyHard,
		WorkDir:         workDir,
	}

	doc, err = svc.Transcribe(ctx, req)
	if err != nil {
		return doc, err
	}

	reporter.Report(progress.CheckpointComplete)

	if cache != nil {
		if storeErr := cache.Store(ctx, cacheKey, string(backend), model, langCode, doc); storeErr != nil {
			logger.Warn("store transcript in cache", logging.Error(storeErr))
		}
	}
	return doc, nil
}

func newBackendService(backend deps.Backend, cfg *config.Config,
	logger *slog.Logger, reporter *progress.Reporter) (services.Backend, error) {
	switch backend {
	case deps.BackendWhisper:
		return whisper.New(whisper.Config{Python: cfg.Whisper.Python}, logger, reporter), nil
	case deps.BackendWhisperX:
		return whisperx.New(whisperx.Config{
			Python:             cfg.Whisper.Python,
			CUDAEnabled:        cfg.WhisperX.CUDAEnabled,
			ComputeType:        cfg.WhisperX.ComputeType,
			HFToken:            cfg.WhisperX.HFToken,
			DiarizationEnabled: cfg.Diarization.Enabled,
		}, logger, reporter), nil
	case deps.BackendWhisperCLI:
		return whispercli.New(whispercli.Config{
			Binary:  cfg.CLI.Binary,
			Timeout: time.Duration(cfg.CLI.TimeoutSeconds) * time.Second,
		}, logger, reporter), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}
