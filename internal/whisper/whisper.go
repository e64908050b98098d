// Package whisper adapts a local whisper CLI build as a speech-to-text
// backend. Nothing leaves the machine on this path.
package whisper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/memo-flow/internal/config"
	"github.com/nguyentantai21042004/memo-flow/internal/logger"
	"github.com/nguyentantai21042004/memo-flow/pkg/executor"
)

type Backend struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a whisper Backend from its config section.
func New(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) *Backend {
	return &Backend{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

// Transcribe runs the whisper CLI on one audio file and returns the plain
// text output. The CLI writes <prefix>.txt next to the audio; that side
// file is removed after reading.
func (b *Backend) Transcribe(ctx context.Context, audioPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + "_whisper"

	b.logger.Info(ctx, "Transcribing with Whisper (model: %s): %s", b.cfg.Model, audioPath)

	args := []string{
		"-m", b.cfg.Model,
		"-f", audioPath,
		"-otxt",
		"-l", b.cfg.Language,
		"-t", strconv.Itoa(b.cfg.Threads),
		"--output-file", outputPrefix,
	}

	if _, err := b.executor.Execute(ctx, b.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := outputPrefix + ".txt"
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}
	if err := os.Remove(txtPath); err != nil {
		b.logger.Warn(ctx, "Failed to remove whisper output %s: %v", txtPath, err)
	}

	text := strings.TrimSpace(string(data))
	b.logger.Info(ctx, "Whisper transcription complete (%d chars)", len(text))
	return text, nil
}
