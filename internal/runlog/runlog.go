// Package runlog keeps the append-only audit trail: one JSON object per
// processed file, one line each, never rewritten.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Status is the terminal outcome of processing one audio file.
type Status string

const (
	StatusSummarySuccess    Status = "summary_success"
	StatusTranscribeFailure Status = "transcribe_failure"
	StatusSummaryFailure    Status = "summary_failure"
	StatusMoveFailure       Status = "move_to_done_failure"
	StatusFailure           Status = "failure"
)

// Entry is one immutable audit record. OutputMarkdown is nil when the
// failure happened before any document was produced.
type Entry struct {
	SourceAudio    string  `json:"source_audio"`
	OutputMarkdown *string `json:"output_markdown"`
	ProcessedAt    string  `json:"processed_at"`
	Status         Status  `json:"status"`
	ErrorMessage   string  `json:"error_message,omitempty"`
}

// Recorder appends entries to the audit log.
type Recorder interface {
	Append(sourceAudio string, outputMarkdown *string, status Status, errorMessage string) error
}

type implRecorder struct {
	path string
	now  func() time.Time
}

// New creates a Recorder appending to the JSONL file at path. The file is
// created on first append.
func New(path string) Recorder {
	return &implRecorder{path: path, now: time.Now}
}

func (r *implRecorder) Append(sourceAudio string, outputMarkdown *string, status Status, errorMessage string) error {
	entry := Entry{
		SourceAudio:    sourceAudio,
		OutputMarkdown: outputMarkdown,
		ProcessedAt:    r.now().Format(time.RFC3339),
		Status:         status,
		ErrorMessage:   errorMessage,
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal log entry: %w", err)
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	return nil
}
