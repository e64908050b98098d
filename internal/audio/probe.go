// Package audio shells out to ffprobe and ffmpeg for the two operations
// the pipeline needs from an audio file: its duration and a time-windowed
// segment export.
package audio

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/memo-flow/pkg/executor"
)

type implProber struct {
	executor executor.Executor
}

// NewProber returns a duration prober backed by ffprobe.
func NewProber(exec executor.Executor) Prober {
	return &implProber{executor: exec}
}

// DurationMS probes the container duration of an audio file in
// milliseconds. Zero-length and unreadable files are errors: the chunker
// must fail before creating any chunk.
func (p *implProber) DurationMS(ctx context.Context, path string) (int64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	out, err := p.executor.Execute(ctx, "ffprobe", args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", strings.TrimSpace(out), err)
	}

	ms := int64(seconds * 1000)
	if ms <= 0 {
		return 0, fmt.Errorf("audio %s reports zero duration", path)
	}
	return ms, nil
}
