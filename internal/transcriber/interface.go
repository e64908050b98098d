package transcriber

import "context"

// Backend turns one audio file into text. Adapters exist for the local
// whisper CLI and the Gemini API; the chunker does not care which.
type Backend interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Transcriber produces the full transcript for a source audio file,
// splitting it into overlapping chunks when it exceeds the backend
// duration limit and caching every intermediate artifact so an
// interrupted run resumes where it stopped.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
	// Cleanup removes the chunk working directories for a source file.
	// Called only after the file completed successfully; failed files
	// keep their caches for the next run.
	Cleanup(ctx context.Context, audioPath string)
}
