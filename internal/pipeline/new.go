package pipeline

import (
	"github.com/nguyentantai21042004/memo-flow/internal/config"
	"github.com/nguyentantai21042004/memo-flow/internal/document"
	"github.com/nguyentantai21042004/memo-flow/internal/engine"
	"github.com/nguyentantai21042004/memo-flow/internal/logger"
	"github.com/nguyentantai21042004/memo-flow/internal/runlog"
	"github.com/nguyentantai21042004/memo-flow/internal/transcriber"
)

type implPipeline struct {
	cfg         *config.Config
	transcriber transcriber.Transcriber
	dispatcher  engine.Dispatcher
	writer      document.Writer
	recorder    runlog.Recorder
	logger      logger.Logger
}

// New creates a Pipeline instance.
func New(cfg *config.Config, tr transcriber.Transcriber, disp engine.Dispatcher, writer document.Writer, rec runlog.Recorder, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:         cfg,
		transcriber: tr,
		dispatcher:  disp,
		writer:      writer,
		recorder:    rec,
		logger:      log,
	}
}
