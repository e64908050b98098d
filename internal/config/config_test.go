package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func validPaths() PathsConfig {
	return PathsConfig{
		AudioDir:   "data/audio",
		OutputDir:  "data/notes",
		PromptFile: "prompts/summary.md",
		LogFile:    "data/processed.jsonl",
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
whisper:
  binary_path: "./whisper-cli"
  model: "models/ggml-large-v3.bin"
  language: "ja"
  threads: 8

gemini:
  model: "gemini-2.5-flash"

chunking:
  max_duration_ms: 1200000
  overlap_ms: 60000

output:
  export_docx: true

logging:
  level: "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Whisper.Model != "models/ggml-large-v3.bin" {
		t.Errorf("Whisper.Model = %q", cfg.Whisper.Model)
	}
	if cfg.Chunking.MaxDurationMS != 1200000 {
		t.Errorf("Chunking.MaxDurationMS = %d", cfg.Chunking.MaxDurationMS)
	}
	if !cfg.Output.ExportDocx {
		t.Error("Output.ExportDocx = false, want true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("nonexistent.yaml"); err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load(\"\") returned nil config")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := &Config{}
	warnings, err := FromEnv(cfg, testEnv(nil))
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if cfg.Engines.Transcribe != TranscribeWhisper {
		t.Errorf("Transcribe = %v, want whisper", cfg.Engines.Transcribe)
	}
	if cfg.Engines.Proofread != ProofreadNone {
		t.Errorf("Proofread = %v, want none", cfg.Engines.Proofread)
	}
	if cfg.Engines.Summarize != SummarizeClaude {
		t.Errorf("Summarize = %v, want claude", cfg.Engines.Summarize)
	}
	if !cfg.Engines.Masking {
		t.Error("Masking = false, want true by default")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg := &Config{}
	_, err := FromEnv(cfg, testEnv(map[string]string{
		EnvTranscribeEngine: "both",
		EnvProofreadEngine:  "gemini",
		EnvSummarizeEngine:  "gemini",
		EnvWhisperModel:     "models/custom.bin",
		EnvEnableMasking:    "false",
		EnvGoogleAPIKey:     "key-a, key-b",
	}))
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.Engines.Transcribe != TranscribeBoth {
		t.Errorf("Transcribe = %v, want both", cfg.Engines.Transcribe)
	}
	if cfg.Engines.Proofread != ProofreadGemini {
		t.Errorf("Proofread = %v, want gemini", cfg.Engines.Proofread)
	}
	if cfg.Whisper.Model != "models/custom.bin" {
		t.Errorf("Whisper.Model = %q", cfg.Whisper.Model)
	}
	if cfg.Engines.Masking {
		t.Error("Masking = true, want false")
	}
	if len(cfg.Engines.GeminiAPIKeys) != 2 || cfg.Engines.GeminiAPIKeys[1] != "key-b" {
		t.Errorf("GeminiAPIKeys = %v", cfg.Engines.GeminiAPIKeys)
	}
}

func TestFromEnvUnknownProofreadDegrades(t *testing.T) {
	cfg := &Config{}
	warnings, err := FromEnv(cfg, testEnv(map[string]string{
		EnvProofreadEngine: "gpt4",
	}))
	if err != nil {
		t.Fatalf("FromEnv() error = %v, unknown proofread engine must not be fatal", err)
	}
	if cfg.Engines.Proofread != ProofreadNone {
		t.Errorf("Proofread = %v, want none", cfg.Engines.Proofread)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "gpt4") {
		t.Errorf("warnings = %v, want one naming the bad engine", warnings)
	}
}

func TestFromEnvUnknownSummarizeFatal(t *testing.T) {
	cfg := &Config{}
	if _, err := FromEnv(cfg, testEnv(map[string]string{
		EnvSummarizeEngine: "gpt4",
	})); err == nil {
		t.Error("FromEnv() should fail for unknown summarize engine")
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{Paths: validPaths()}
	cfg.Engines.Masking = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Chunking.MaxDurationMS != 20*60*1000 {
		t.Errorf("MaxDurationMS = %d", cfg.Chunking.MaxDurationMS)
	}
	if cfg.Chunking.OverlapMS != 60*1000 {
		t.Errorf("OverlapMS = %d", cfg.Chunking.OverlapMS)
	}
	if cfg.Paths.Temp != ".tmp_chunks" {
		t.Errorf("Paths.Temp = %q", cfg.Paths.Temp)
	}
	if cfg.Whisper.Model != defaultWhisperModel {
		t.Errorf("Whisper.Model = %q", cfg.Whisper.Model)
	}
}

func TestValidateMissingPaths(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail without CLI paths")
	}
}

func TestValidateOverlapGuard(t *testing.T) {
	cfg := &Config{Paths: validPaths()}
	cfg.Chunking.MaxDurationMS = 60000
	cfg.Chunking.OverlapMS = 60000
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject overlap >= max chunk duration")
	}
}

func TestValidateMaskingForcedOffForCloudOnly(t *testing.T) {
	cfg := &Config{Paths: validPaths()}
	cfg.Engines.Transcribe = TranscribeGemini
	cfg.Engines.Masking = true
	cfg.Engines.GeminiAPIKeys = []string{"k"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Engines.Masking {
		t.Error("Masking should be forced off for cloud-only transcription")
	}
	if !cfg.Engines.MaskingForcedOff {
		t.Error("MaskingForcedOff should be recorded")
	}
}

func TestValidateMaskingKeptForBoth(t *testing.T) {
	cfg := &Config{Paths: validPaths()}
	cfg.Engines.Transcribe = TranscribeBoth
	cfg.Engines.Masking = true
	cfg.Engines.GeminiAPIKeys = []string{"k"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !cfg.Engines.Masking {
		t.Error("Masking should stay on for dual-engine transcription")
	}
}

func TestValidateRequiresAPIKeyForGemini(t *testing.T) {
	cfg := &Config{Paths: validPaths()}
	cfg.Engines.Summarize = SummarizeGemini
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail when Gemini is selected without an API key")
	}
}
