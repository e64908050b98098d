package config

import (
	"fmt"
	"strings"
)

// UnknownEngineError reports an engine identifier that no stage recognizes.
type UnknownEngineError struct {
	Stage string
	Name  string
}

func (e *UnknownEngineError) Error() string {
	return fmt.Sprintf("unknown %s engine: %q", e.Stage, e.Name)
}

// TranscribeEngine selects the speech-to-text backend.
type TranscribeEngine int

const (
	TranscribeWhisper TranscribeEngine = iota
	TranscribeGemini
	TranscribeBoth
)

func (e TranscribeEngine) String() string {
	switch e {
	case TranscribeGemini:
		return "gemini"
	case TranscribeBoth:
		return "both"
	default:
		return "whisper"
	}
}

func ParseTranscribeEngine(s string) (TranscribeEngine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "whisper":
		return TranscribeWhisper, nil
	case "gemini":
		return TranscribeGemini, nil
	case "both":
		return TranscribeBoth, nil
	default:
		return TranscribeWhisper, &UnknownEngineError{Stage: "transcribe", Name: s}
	}
}

// ProofreadEngine selects the proofreading backend. None skips the stage
// entirely without a backend call.
type ProofreadEngine int

const (
	ProofreadNone ProofreadEngine = iota
	ProofreadClaude
	ProofreadGemini
)

func (e ProofreadEngine) String() string {
	switch e {
	case ProofreadClaude:
		return "claude"
	case ProofreadGemini:
		return "gemini"
	default:
		return "none"
	}
}

// ParseProofreadEngine returns ProofreadNone alongside the error for an
// unknown identifier; callers downgrade that to a warning and pass text
// through unchanged instead of aborting the file.
func ParseProofreadEngine(s string) (ProofreadEngine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ProofreadNone, nil
	case "claude":
		return ProofreadClaude, nil
	case "gemini":
		return ProofreadGemini, nil
	default:
		return ProofreadNone, &UnknownEngineError{Stage: "proofread", Name: s}
	}
}

// SummarizeEngine selects the summarization backend. There is no "none":
// without a summary the pipeline has nothing to write, so an unknown
// identifier is fatal. Filename generation reuses this engine.
type SummarizeEngine int

const (
	SummarizeClaude SummarizeEngine = iota
	SummarizeGemini
)

func (e SummarizeEngine) String() string {
	if e == SummarizeGemini {
		return "gemini"
	}
	return "claude"
}

func ParseSummarizeEngine(s string) (SummarizeEngine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "claude":
		return SummarizeClaude, nil
	case "gemini":
		return SummarizeGemini, nil
	default:
		return SummarizeClaude, &UnknownEngineError{Stage: "summarize", Name: s}
	}
}
