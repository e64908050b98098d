package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names. They are read exactly once, in FromEnv;
// no other package touches ambient process state.
const (
	EnvTranscribeEngine = "TRANSCRIBE_ENGINE"
	EnvProofreadEngine  = "PROOFREAD_ENGINE"
	EnvSummarizeEngine  = "SUMMARIZE_ENGINE"
	EnvWhisperModel     = "WHISPER_MODEL"
	EnvEnableMasking    = "ENABLE_MASKING"
	EnvGoogleAPIKey     = "GOOGLE_API_KEY"
)

const defaultWhisperModel = "mlx-community/whisper-large-v3-turbo"

type Config struct {
	Engines  EngineConfig   `yaml:"-"`
	Whisper  WhisperConfig  `yaml:"whisper"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Paths    PathsConfig    `yaml:"paths"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// EngineConfig is populated from the environment, not the YAML file.
type EngineConfig struct {
	Transcribe TranscribeEngine
	Proofread  ProofreadEngine
	Summarize  SummarizeEngine

	// Masking sanitizes transcripts before they reach a remote text
	// backend. MaskingForcedOff records that the user asked for masking
	// but transcription is cloud-only, where it protects nothing.
	Masking          bool
	MaskingForcedOff bool

	// GeminiAPIKeys holds one or more API keys; the client rotates
	// through them on quota errors.
	GeminiAPIKeys []string
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Model      string `yaml:"model"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

type ChunkingConfig struct {
	MaxDurationMS int64 `yaml:"max_duration_ms"`
	OverlapMS     int64 `yaml:"overlap_ms"`
}

// PathsConfig mixes the four required CLI paths with the YAML-configurable
// temp root for chunk caches.
type PathsConfig struct {
	AudioDir   string `yaml:"-"`
	OutputDir  string `yaml:"-"`
	PromptFile string `yaml:"-"`
	LogFile    string `yaml:"-"`
	Temp       string `yaml:"temp"`
}

type OutputConfig struct {
	ExportDocx bool `yaml:"export_docx"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads the optional YAML config file. An empty path yields a zero
// Config for FromEnv and Validate to fill in.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// FromEnv overlays engine selection onto cfg from a single snapshot of the
// environment. getenv is injected so tests never mutate the real process
// environment. Unknown proofread engines degrade to "none"; the returned
// warnings let the caller surface that without failing the run.
func FromEnv(cfg *Config, getenv func(string) string) (warnings []string, err error) {
	transcribe, err := ParseTranscribeEngine(getenv(EnvTranscribeEngine))
	if err != nil {
		return nil, err
	}
	cfg.Engines.Transcribe = transcribe

	proofread, perr := ParseProofreadEngine(getenv(EnvProofreadEngine))
	if perr != nil {
		warnings = append(warnings, fmt.Sprintf("%v, proofreading disabled", perr))
	}
	cfg.Engines.Proofread = proofread

	summarize, err := ParseSummarizeEngine(getenv(EnvSummarizeEngine))
	if err != nil {
		return warnings, err
	}
	cfg.Engines.Summarize = summarize

	if model := strings.TrimSpace(getenv(EnvWhisperModel)); model != "" {
		cfg.Whisper.Model = model
	}

	cfg.Engines.Masking = true
	if v := strings.TrimSpace(getenv(EnvEnableMasking)); v != "" {
		cfg.Engines.Masking = strings.EqualFold(v, "true")
	}

	for _, key := range strings.Split(getenv(EnvGoogleAPIKey), ",") {
		if key = strings.TrimSpace(key); key != "" {
			cfg.Engines.GeminiAPIKeys = append(cfg.Engines.GeminiAPIKeys, key)
		}
	}

	return warnings, nil
}

// Validate applies defaults and rejects configurations the pipeline cannot
// run with. It must be called after the CLI paths are set.
func (c *Config) Validate() error {
	if c.Paths.AudioDir == "" {
		return fmt.Errorf("audio processing directory is required")
	}
	if c.Paths.OutputDir == "" {
		return fmt.Errorf("markdown output directory is required")
	}
	if c.Paths.PromptFile == "" {
		return fmt.Errorf("summary prompt file path is required")
	}
	if c.Paths.LogFile == "" {
		return fmt.Errorf("processed log file path is required")
	}

	if c.Paths.Temp == "" {
		c.Paths.Temp = ".tmp_chunks"
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = defaultWhisperModel
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Chunking.MaxDurationMS == 0 {
		c.Chunking.MaxDurationMS = 20 * 60 * 1000
	}
	if c.Chunking.OverlapMS == 0 {
		c.Chunking.OverlapMS = 60 * 1000
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	// An overlap as long as the chunk itself would keep the window from
	// ever advancing.
	if c.Chunking.OverlapMS >= c.Chunking.MaxDurationMS {
		return fmt.Errorf("chunking.overlap_ms (%d) must be smaller than chunking.max_duration_ms (%d)",
			c.Chunking.OverlapMS, c.Chunking.MaxDurationMS)
	}

	// Masking runs on text that is about to leave the machine. When the
	// audio itself already went to the cloud for transcription there is
	// nothing left to protect.
	if c.Engines.Masking && c.Engines.Transcribe == TranscribeGemini {
		c.Engines.Masking = false
		c.Engines.MaskingForcedOff = true
	}

	if c.NeedsGemini() && len(c.Engines.GeminiAPIKeys) == 0 {
		return fmt.Errorf("%s is required when a Gemini engine is selected", EnvGoogleAPIKey)
	}

	return nil
}

// NeedsGemini reports whether any configured stage calls the Gemini API.
func (c *Config) NeedsGemini() bool {
	return c.Engines.Transcribe == TranscribeGemini ||
		c.Engines.Transcribe == TranscribeBoth ||
		c.Engines.Proofread == ProofreadGemini ||
		c.Engines.Summarize == SummarizeGemini
}

// NeedsWhisper reports whether local transcription is configured.
func (c *Config) NeedsWhisper() bool {
	return c.Engines.Transcribe == TranscribeWhisper ||
		c.Engines.Transcribe == TranscribeBoth
}

// NeedsClaude reports whether any configured stage shells out to the
// claude CLI.
func (c *Config) NeedsClaude() bool {
	return c.Engines.Proofread == ProofreadClaude ||
		c.Engines.Summarize == SummarizeClaude
}
