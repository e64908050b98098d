package audio

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/memo-flow/pkg/executor"
)

// Prober reports the duration of an audio file.
type Prober interface {
	DurationMS(ctx context.Context, path string) (int64, error)
}

// Exporter materializes one time window of an audio file as a WAV chunk.
type Exporter interface {
	ExportSegment(ctx context.Context, src, dst string, startMS, endMS int64) error
}

type implExporter struct {
	executor executor.Executor
}

// NewExporter returns an Exporter backed by ffmpeg.
func NewExporter(exec executor.Executor) Exporter {
	return &implExporter{executor: exec}
}

// ExportSegment writes [startMS, endMS) of src to dst as 16kHz mono PCM
// WAV, the format speech backends handle best.
func (e *implExporter) ExportSegment(ctx context.Context, src, dst string, startMS, endMS int64) error {
	args := []string{
		"-v", "error",
		"-i", src,
		"-ss", formatSeconds(startMS),
		"-to", formatSeconds(endMS),
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		dst,
	}

	if _, err := e.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("ffmpeg export segment %s [%d,%d): %w", src, startMS, endMS, err)
	}
	return nil
}

func formatSeconds(ms int64) string {
	return fmt.Sprintf("%d.%03d", ms/1000, ms%1000)
}
