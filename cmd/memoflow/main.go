package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/memo-flow/internal/audio"
	"github.com/nguyentantai21042004/memo-flow/internal/claude"
	"github.com/nguyentantai21042004/memo-flow/internal/config"
	"github.com/nguyentantai21042004/memo-flow/internal/document"
	"github.com/nguyentantai21042004/memo-flow/internal/engine"
	"github.com/nguyentantai21042004/memo-flow/internal/gemini"
	"github.com/nguyentantai21042004/memo-flow/internal/logger"
	"github.com/nguyentantai21042004/memo-flow/internal/pipeline"
	"github.com/nguyentantai21042004/memo-flow/internal/runlog"
	"github.com/nguyentantai21042004/memo-flow/internal/transcriber"
	"github.com/nguyentantai21042004/memo-flow/internal/watcher"
	"github.com/nguyentantai21042004/memo-flow/internal/whisper"
	"github.com/nguyentantai21042004/memo-flow/pkg/executor"
)

var (
	flagAudioDir   string
	flagOutputDir  string
	flagPromptFile string
	flagLogFile    string
	flagConfig     string
	flagWatch      bool
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "memoflow",
	Short: "Transcribe and summarize voice memos into markdown documents",
	Long: `Memoflow drains a directory of voice memos through a local or cloud
transcription backend, optionally masks sensitive information, proofreads
and summarizes the text with an LLM, and writes one dated markdown
document per memo. Processed audio moves to a done/ subdirectory and every
outcome is appended to a JSONL audit log.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagAudioDir, "audio-dir", "", "directory of audio files to process (required)")
	rootCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "directory for markdown output (required)")
	rootCmd.Flags().StringVar(&flagPromptFile, "prompt-file", "", "summary prompt template file (required)")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "JSONL audit log file (required)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "optional YAML config file")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "keep watching the audio dir after the initial batch")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.MarkFlagRequired("audio-dir")
	rootCmd.MarkFlagRequired("output-dir")
	rootCmd.MarkFlagRequired("prompt-file")
	rootCmd.MarkFlagRequired("log-file")
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, warnings, err := loadConfig()
	if err != nil {
		// A config failure is still an auditable event. The run log gets
		// one failure entry naming the directory that was about to be
		// processed.
		if flagLogFile != "" {
			rec := runlog.New(flagLogFile)
			_ = rec.Append(filepath.Base(flagAudioDir), nil, runlog.StatusFailure, err.Error())
		}
		return err
	}

	if flagVerbose {
		cfg.Logging.Level = "debug"
	}
	log := logger.New(cfg.Logging.Level)

	for _, w := range warnings {
		log.Warn(ctx, "%s", w)
	}
	if cfg.Engines.MaskingForcedOff {
		log.Warn(ctx, "Masking disabled: transcription is cloud-only, audio already leaves the machine")
	}
	if cfg.NeedsGemini() {
		log.Warn(ctx, "Gemini engine selected: audio and/or text will be sent to the Gemini API")
	}

	log.Info(ctx, "Engines: transcribe=%s proofread=%s summarize=%s masking=%t",
		cfg.Engines.Transcribe, cfg.Engines.Proofread, cfg.Engines.Summarize, cfg.Engines.Masking)

	p, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}

	report, err := p.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Processed %d file(s): %d succeeded, %d failed\n",
		len(report.Results), report.Succeeded(), report.Failed())

	if !flagWatch {
		return nil
	}

	w, err := watcher.New(cfg.Paths.AudioDir, func(ctx context.Context, audioPath string) error {
		res := p.Handle(ctx, audioPath)
		return res.Err
	}, log)
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func loadConfig() (*config.Config, []string, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	warnings, err := config.FromEnv(cfg, os.Getenv)
	if err != nil {
		return nil, nil, err
	}

	cfg.Paths.AudioDir = flagAudioDir
	cfg.Paths.OutputDir = flagOutputDir
	cfg.Paths.PromptFile = flagPromptFile
	cfg.Paths.LogFile = flagLogFile

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, warnings, nil
}

// buildPipeline wires the backends the configured engines actually need.
// Unused backends stay nil; the dispatcher and transcriber never reach a
// backend their engine selection does not name.
func buildPipeline(cfg *config.Config, log logger.Logger) (pipeline.Pipeline, error) {
	exec := executor.New()

	var geminiClient *gemini.Client
	if cfg.NeedsGemini() {
		var err error
		geminiClient, err = gemini.New(cfg.Engines.GeminiAPIKeys, cfg.Gemini.Model, log)
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
	}

	var whisperBackend transcriber.Backend
	if cfg.NeedsWhisper() {
		if !exec.Available(cfg.Whisper.BinaryPath) {
			return nil, fmt.Errorf("whisper binary %q not found in PATH", cfg.Whisper.BinaryPath)
		}
		whisperBackend = whisper.New(cfg.Whisper, exec, log)
	}

	var claudeCLI engine.TextGenerator
	if cfg.NeedsClaude() {
		cli := claude.New(exec, os.Environ(), log)
		if !exec.Available("claude") {
			return nil, fmt.Errorf("claude CLI not found in PATH")
		}
		claudeCLI = cli
	}

	var geminiGen engine.TextGenerator
	var geminiTranscribe transcriber.Backend
	if geminiClient != nil {
		geminiGen = geminiClient
		geminiTranscribe = geminiClient
	}

	tr := transcriber.New(cfg, audio.NewProber(exec), audio.NewExporter(exec), whisperBackend, geminiTranscribe, log)
	disp := engine.New(cfg, claudeCLI, geminiGen, log)
	writer := document.NewWriter(cfg.Paths.OutputDir, cfg.Output.ExportDocx, log)
	rec := runlog.New(cfg.Paths.LogFile)

	return pipeline.New(cfg, tr, disp, writer, rec, log), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
