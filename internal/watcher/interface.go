package watcher

import "context"

// Watcher monitors the processing directory for newly dropped audio files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one audio file path. Handlers run sequentially:
// the next event is not read until the current handler returns.
type EventHandler func(ctx context.Context, audioPath string) error
