package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/memo-flow/internal/logger"
)

// New creates a Watcher on audioDir. Processing is strictly sequential so
// the whisper binary and the shared chunk temp dir are never contended.
func New(audioDir string, handler EventHandler, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(audioDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		audioDir: audioDir,
		handler:  handler,
		logger:   log,
		watcher:  fsw,
	}, nil
}
