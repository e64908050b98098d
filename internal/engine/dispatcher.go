package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/memo-flow/internal/config"
	"github.com/nguyentantai21042004/memo-flow/internal/naming"
)

func (d *implDispatcher) Proofread(ctx context.Context, text string) (string, error) {
	var backend TextGenerator
	switch d.cfg.Engines.Proofread {
	case config.ProofreadNone:
		return text, nil
	case config.ProofreadClaude:
		d.logger.Info(ctx, "Proofreading with Claude CLI...")
		backend = d.claude
	case config.ProofreadGemini:
		d.logger.Info(ctx, "Proofreading with Gemini API...")
		backend = d.gemini
	}
	if backend == nil {
		return "", fmt.Errorf("proofread backend %s is not configured", d.cfg.Engines.Proofread)
	}

	out, err := backend.Generate(ctx, buildProofreadPrompt(text))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		d.logger.Warn(ctx, "Proofreading returned empty output, using original text")
		return text, nil
	}
	return out, nil
}

func (d *implDispatcher) Summarize(ctx context.Context, text, promptTemplate string) (string, error) {
	prompt := strings.ReplaceAll(promptTemplate, TranscriptionPlaceholder, text)

	backend, name, err := d.summarizeBackend()
	if err != nil {
		return "", err
	}
	d.logger.Info(ctx, "Summarizing with %s...", name)
	return backend.Generate(ctx, prompt)
}

func (d *implDispatcher) SuggestFilename(ctx context.Context, summary string) (string, error) {
	backend, name, err := d.summarizeBackend()
	if err != nil {
		return "", err
	}
	d.logger.Info(ctx, "Generating filename from summary (%s)...", name)

	out, err := backend.Generate(ctx, buildFilenamePrompt(summary, naming.MaxTitleLength))
	if err != nil {
		// A failed suggestion costs only the nice title; the caller
		// falls back to the default one.
		d.logger.Warn(ctx, "Filename generation failed: %v", err)
		return "", nil
	}
	suggestion := strings.TrimSpace(out)
	if suggestion != "" {
		d.logger.Info(ctx, "Suggested filename: %s", suggestion)
	}
	return suggestion, nil
}

// summarizeBackend resolves the summarize engine. Filename generation
// always goes through the same backend.
func (d *implDispatcher) summarizeBackend() (TextGenerator, string, error) {
	switch d.cfg.Engines.Summarize {
	case config.SummarizeGemini:
		if d.gemini == nil {
			return nil, "", fmt.Errorf("summarize backend gemini is not configured")
		}
		return d.gemini, "Gemini API", nil
	default:
		if d.claude == nil {
			return nil, "", fmt.Errorf("summarize backend claude is not configured")
		}
		return d.claude, "Claude CLI", nil
	}
}
