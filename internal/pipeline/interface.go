package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/memo-flow/internal/runlog"
)

// Result is the terminal outcome of one audio file. Failures are values,
// not escaped errors: one bad file never aborts the batch.
type Result struct {
	SourceAudio string
	OutputName  string
	Status      runlog.Status
	Err         error
}

// Report collects per-file results for one batch run.
type Report struct {
	Results []Result
}

func (r Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == runlog.StatusSummarySuccess {
			n++
		}
	}
	return n
}

func (r Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Pipeline drives audio files through transcribe → mask → proofread →
// summarize → name → save → move, sequentially.
type Pipeline interface {
	// Run processes every audio file currently in the processing
	// directory, in sorted order, and returns the batch report.
	Run(ctx context.Context) (Report, error)
	// Handle processes a single audio file and records its audit log
	// entry. Used by Run and by watch mode.
	Handle(ctx context.Context, audioPath string) Result
}
