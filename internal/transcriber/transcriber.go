package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/memo-flow/internal/config"
)

// Transcribe produces the transcript for one audio file with the
// configured engine. Dual-engine mode runs the chunked procedure once per
// backend and returns both transcripts under labeled headings instead of
// merging them.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	switch t.cfg.Engines.Transcribe {
	case config.TranscribeGemini:
		return t.run(ctx, audioPath, t.gemini, "")
	case config.TranscribeBoth:
		t.logger.Info(ctx, "[both] Transcribing with Whisper...")
		whisperText, err := t.run(ctx, audioPath, t.whisper, "whisper")
		if err != nil {
			return "", err
		}
		t.logger.Info(ctx, "[both] Transcribing with Gemini...")
		geminiText, err := t.run(ctx, audioPath, t.gemini, "gemini")
		if err != nil {
			return "", err
		}
		return "## Whisper（ローカル）の文字起こし結果\n\n" + whisperText +
			"\n\n---\n\n" +
			"## Gemini APIの文字起こし結果\n\n" + geminiText, nil
	default:
		return t.run(ctx, audioPath, t.whisper, "")
	}
}

// Cleanup removes every chunk working directory this source may have used.
func (t *implTranscriber) Cleanup(ctx context.Context, audioPath string) {
	for _, label := range []string{"", "whisper", "gemini"} {
		dir := t.workDir(audioPath, label)
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			t.logger.Warn(ctx, "Failed to remove chunk directory %s: %v", dir, err)
		} else {
			t.logger.Info(ctx, "Removed chunk directory: %s", dir)
		}
	}
}

// run is the chunked transcription procedure for one backend. label
// namespaces the caches when the procedure runs more than once per source
// (dual-engine mode).
func (t *implTranscriber) run(ctx context.Context, audioPath string, backend Backend, label string) (string, error) {
	if backend == nil {
		return "", fmt.Errorf("transcribe backend %q is not configured", label)
	}

	durationMS, err := t.prober.DurationMS(ctx, audioPath)
	if err != nil {
		return "", err
	}
	t.logger.Info(ctx, "Audio duration: %.2f minutes", float64(durationMS)/1000/60)

	maxMS := t.cfg.Chunking.MaxDurationMS
	if durationMS <= maxMS {
		return t.runDirect(ctx, audioPath, backend, label)
	}
	return t.runChunked(ctx, audioPath, backend, label, durationMS)
}

// runDirect transcribes the whole file in one backend call, short-circuited
// by a cache file kept beside the source.
func (t *implTranscriber) runDirect(ctx context.Context, audioPath string, backend Backend, label string) (string, error) {
	store := newDirStore(filepath.Dir(audioPath))
	key := directCacheKey(audioPath, label)

	if store.Has(key) {
		t.logger.Info(ctx, "Found cached transcription: %s", store.Path(key))
		return store.Load(key)
	}

	t.logger.Info(ctx, "Audio is short enough, transcribing directly")
	text, err := backend.Transcribe(ctx, audioPath)
	if err != nil {
		return "", err
	}
	if err := store.Store(key, text); err != nil {
		t.logger.Warn(ctx, "Failed to cache transcription: %v", err)
	} else {
		t.logger.Info(ctx, "Transcription cached to: %s", store.Path(key))
	}
	return text, nil
}

// runChunked splits the audio into overlapping windows, transcribing each
// at most once across runs. Overlap exists so no word is lost at a cut
// boundary; the joined text is not deduplicated.
func (t *implTranscriber) runChunked(ctx context.Context, audioPath string, backend Backend, label string, durationMS int64) (string, error) {
	workDir := t.workDir(audioPath, label)
	store := newDirStore(workDir)
	t.logger.Info(ctx, "Audio is long, splitting into chunks under %s", workDir)

	maxMS := t.cfg.Chunking.MaxDurationMS
	overlapMS := t.cfg.Chunking.OverlapMS

	var parts []string
	startMS := int64(0)
	for seq := 0; ; seq++ {
		endMS := startMS + maxMS
		if endMS > durationMS {
			endMS = durationMS
		}

		part, err := t.processChunk(ctx, audioPath, backend, store, seq, startMS, endMS)
		if err != nil {
			return "", err
		}
		if part != "" {
			parts = append(parts, part)
		}

		if endMS == durationMS {
			break
		}
		next := endMS - overlapMS
		if next < 0 {
			next = 0
		}
		if next <= startMS {
			return "", fmt.Errorf("chunk window failed to advance at %dms (max %dms, overlap %dms)",
				startMS, maxMS, overlapMS)
		}
		startMS = next
	}

	t.logger.Info(ctx, "Processed %d chunk(s)", len(parts))
	return strings.Join(parts, "\n\n"), nil
}

// processChunk materializes one chunk's audio and transcript artifacts,
// reusing whichever already exists on disk.
func (t *implTranscriber) processChunk(ctx context.Context, audioPath string, backend Backend, store Store, seq int, startMS, endMS int64) (string, error) {
	audioKey := fmt.Sprintf("chunk_%d.wav", seq)
	textKey := fmt.Sprintf("chunk_%d_transcription.txt", seq)

	if store.Has(audioKey) {
		t.logger.Info(ctx, "Audio chunk %s already exists", store.Path(audioKey))
	} else {
		if err := os.MkdirAll(filepath.Dir(store.Path(audioKey)), 0755); err != nil {
			return "", fmt.Errorf("create chunk directory: %w", err)
		}
		t.logger.Info(ctx, "Exporting audio chunk %d: %dms to %dms", seq, startMS, endMS)
		if err := t.exporter.ExportSegment(ctx, audioPath, store.Path(audioKey), startMS, endMS); err != nil {
			return "", err
		}
	}

	if store.Has(textKey) {
		t.logger.Info(ctx, "Found existing transcription for chunk %d", seq)
		if text, err := store.Load(textKey); err == nil {
			return text, nil
		}
		// Unreadable cache: fall through and transcribe again.
	}

	text, err := backend.Transcribe(ctx, store.Path(audioKey))
	if err != nil {
		return "", fmt.Errorf("transcribe chunk %d: %w", seq, err)
	}
	if err := store.Store(textKey, text); err != nil {
		t.logger.Warn(ctx, "Failed to cache chunk %d transcription: %v", seq, err)
	}
	return text, nil
}

func (t *implTranscriber) workDir(audioPath, label string) string {
	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	name := stem + "_chunks"
	if label != "" {
		name += "_" + label
	}
	return filepath.Join(t.cfg.Paths.Temp, name)
}

func directCacheKey(audioPath, label string) string {
	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	if label != "" {
		return stem + "_" + label + "_transcription.txt"
	}
	return stem + "_transcription.txt"
}
