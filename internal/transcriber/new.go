package transcriber

import (
	"github.com/nguyentantai21042004/memo-flow/internal/audio"
	"github.com/nguyentantai21042004/memo-flow/internal/config"
	"github.com/nguyentantai21042004/memo-flow/internal/logger"
)

type implTranscriber struct {
	cfg      *config.Config
	prober   audio.Prober
	exporter audio.Exporter
	whisper  Backend
	gemini   Backend
	logger   logger.Logger
}

// New creates a Transcriber routing to the configured engine(s). Backends
// not selected by the configuration may be nil.
func New(cfg *config.Config, prober audio.Prober, exporter audio.Exporter, whisper, gemini Backend, log logger.Logger) Transcriber {
	return &implTranscriber{
		cfg:      cfg,
		prober:   prober,
		exporter: exporter,
		whisper:  whisper,
		gemini:   gemini,
		logger:   log,
	}
}
