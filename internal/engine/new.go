package engine

import (
	"github.com/nguyentantai21042004/memo-flow/internal/config"
	"github.com/nguyentantai21042004/memo-flow/internal/logger"
)

type implDispatcher struct {
	cfg    *config.Config
	claude TextGenerator
	gemini TextGenerator
	logger logger.Logger
}

// New creates a Dispatcher over the configured engines. Backends not
// selected by the configuration may be nil.
func New(cfg *config.Config, claude, gemini TextGenerator, log logger.Logger) Dispatcher {
	return &implDispatcher{
		cfg:    cfg,
		claude: claude,
		gemini: gemini,
		logger: log,
	}
}
