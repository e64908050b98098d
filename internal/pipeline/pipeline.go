package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nguyentantai21042004/memo-flow/internal/document"
	"github.com/nguyentantai21042004/memo-flow/internal/masker"
	"github.com/nguyentantai21042004/memo-flow/internal/runlog"
)

// audioExtensions is the allow-list for source files; everything else in
// the processing directory is ignored.
var audioExtensions = map[string]bool{
	".wav": true,
	".mp3": true,
	".m4a": true,
}

// IsAudioFile reports whether path carries a supported audio extension.
func IsAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// Run processes every audio file in the processing directory, one at a
// time, in sorted order. A canceled context stops between files, never in
// the middle of one.
func (p *implPipeline) Run(ctx context.Context) (Report, error) {
	if err := os.MkdirAll(p.doneDir(), 0755); err != nil {
		return Report{}, fmt.Errorf("create done dir: %w", err)
	}

	files, err := p.discoverAudioFiles()
	if err != nil {
		return Report{}, fmt.Errorf("scan processing dir: %w", err)
	}
	if len(files) == 0 {
		p.logger.Info(ctx, "No audio files found in %s", p.cfg.Paths.AudioDir)
		return Report{}, nil
	}
	p.logger.Info(ctx, "Found %d audio file(s) to process in %s", len(files), p.cfg.Paths.AudioDir)

	var report Report
	for _, path := range files {
		if ctx.Err() != nil {
			p.logger.Warn(ctx, "Run canceled, %d file(s) left unprocessed", len(files)-len(report.Results))
			break
		}
		report.Results = append(report.Results, p.Handle(ctx, path))
	}

	p.logger.Info(ctx, "Batch complete: %d success, %d failed", report.Succeeded(), report.Failed())
	return report, nil
}

// Handle runs one file through the pipeline and appends its audit entry.
func (p *implPipeline) Handle(ctx context.Context, audioPath string) Result {
	p.logger.Info(ctx, "--- Processing file: %s ---", filepath.Base(audioPath))

	res := p.processFile(ctx, audioPath)

	var output *string
	if res.OutputName != "" {
		output = &res.OutputName
	}
	errMsg := ""
	if res.Err != nil {
		errMsg = res.Err.Error()
		p.logger.Error(ctx, "Processing %s: %v", res.SourceAudio, res.Err)
	}
	if err := p.recorder.Append(res.SourceAudio, output, res.Status, errMsg); err != nil {
		p.logger.Error(ctx, "Failed to append audit log entry for %s: %v", res.SourceAudio, err)
	}
	return res
}

// processFile is the per-file state machine. Every failure maps to the
// most specific status available; the source file is moved only after the
// document is safely on disk.
func (p *implPipeline) processFile(ctx context.Context, audioPath string) Result {
	filename := filepath.Base(audioPath)
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	res := Result{SourceAudio: filename}

	// Transcribe. Failure leaves the source untouched for a retry; the
	// chunk caches survive with it.
	transcript, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		res.Status = runlog.StatusTranscribeFailure
		res.Err = err
		return res
	}
	p.saveTranscriptCopy(ctx, stem, transcript)

	// Mask before any text leaves the machine.
	textForLLM := transcript
	if p.cfg.Engines.Masking {
		p.logger.Info(ctx, "Applying masking to sensitive information...")
		masked, count := masker.Mask(transcript)
		textForLLM = masked
		if count > 0 {
			p.logger.Info(ctx, "Masked %d sensitive item(s)", count)
		} else {
			p.logger.Info(ctx, "No sensitive information detected")
		}
	}

	// Proofread. The only non-terminal stage: on failure the pipeline
	// continues with the unproofread text.
	proofread := textForLLM
	if out, perr := p.dispatcher.Proofread(ctx, textForLLM); perr != nil {
		p.logger.Warn(ctx, "Proofreading failed (%v), using unproofread text", perr)
	} else {
		proofread = out
	}

	// Summarize.
	template, err := os.ReadFile(p.cfg.Paths.PromptFile)
	if err != nil {
		res.Status = runlog.StatusSummaryFailure
		res.Err = fmt.Errorf("read summary prompt: %w", err)
		return res
	}
	summary, err := p.dispatcher.Summarize(ctx, proofread, string(template))
	if err != nil {
		res.Status = runlog.StatusSummaryFailure
		res.Err = err
		return res
	}

	// Name and save.
	suggestion, err := p.dispatcher.SuggestFilename(ctx, summary)
	if err != nil {
		res.Status = runlog.StatusSummaryFailure
		res.Err = err
		return res
	}

	doc := document.Document{
		Summary:    summary,
		Proofread:  proofread,
		Transcript: transcript,
	}
	outputName, err := p.writer.Write(ctx, doc, p.sourceDate(audioPath), suggestion)
	if err != nil {
		res.Status = runlog.StatusSummaryFailure
		res.Err = err
		return res
	}
	res.OutputName = outputName
	p.logger.Info(ctx, "Processing successful for %s", filename)

	// Move the source to done. The document already exists, so this
	// failure gets its own status to make the discrepancy visible.
	if err := p.moveToDone(ctx, audioPath); err != nil {
		res.Status = runlog.StatusMoveFailure
		res.Err = err
		return res
	}

	p.transcriber.Cleanup(ctx, audioPath)

	res.Status = runlog.StatusSummarySuccess
	return res
}

// saveTranscriptCopy keeps a plain-text transcript next to the processed
// audio in the done dir. Best effort: the document is the real artifact.
func (p *implPipeline) saveTranscriptCopy(ctx context.Context, stem, transcript string) {
	path := filepath.Join(p.doneDir(), stem+"_transcription.txt")
	if err := os.MkdirAll(p.doneDir(), 0755); err != nil {
		p.logger.Warn(ctx, "Failed to create done dir: %v", err)
		return
	}
	if err := os.WriteFile(path, []byte(transcript), 0644); err != nil {
		p.logger.Warn(ctx, "Failed to save transcription copy: %v", err)
		return
	}
	p.logger.Info(ctx, "Transcription saved to: %s", path)
}

func (p *implPipeline) moveToDone(ctx context.Context, audioPath string) error {
	dest := filepath.Join(p.doneDir(), filepath.Base(audioPath))
	if err := os.Rename(audioPath, dest); err != nil {
		return fmt.Errorf("move to done dir: %w", err)
	}
	p.logger.Info(ctx, "Moved %s to %s", filepath.Base(audioPath), p.doneDir())
	return nil
}

func (p *implPipeline) doneDir() string {
	return filepath.Join(p.cfg.Paths.AudioDir, "done")
}

// sourceDate is the timestamp used for the YYYYMMDD prefix of the output
// name. File mod time is the closest portable stand-in for creation time.
func (p *implPipeline) sourceDate(audioPath string) time.Time {
	info, err := os.Stat(audioPath)
	if err != nil {
		return time.Now()
	}
	return info.ModTime()
}

func (p *implPipeline) discoverAudioFiles() ([]string, error) {
	entries, err := os.ReadDir(p.cfg.Paths.AudioDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if IsAudioFile(e.Name()) {
			files = append(files, filepath.Join(p.cfg.Paths.AudioDir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
