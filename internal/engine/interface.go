package engine

import "context"

// TextGenerator is the uniform contract every text backend satisfies:
// prompt in, text out, or failure.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Dispatcher maps a pipeline stage to the backend the configuration
// selected for it.
type Dispatcher interface {
	// Proofread returns the corrected text, or the input unchanged when
	// the proofread engine is "none" (no backend call is made).
	Proofread(ctx context.Context, text string) (string, error)
	// Summarize substitutes text into the prompt template and runs the
	// summarize backend.
	Summarize(ctx context.Context, text, promptTemplate string) (string, error)
	// SuggestFilename asks the summarize backend for a title reflecting
	// the summary. Backend trouble degrades to an empty suggestion; the
	// caller substitutes the fallback title.
	SuggestFilename(ctx context.Context, summary string) (string, error)
}
