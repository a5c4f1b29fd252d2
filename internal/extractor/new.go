package extractor

import (
	"github.com/nguyentantai21042004/video-knowledge/internal/config"
	"github.com/nguyentantai21042004/video-knowledge/internal/logger"
	"github.com/nguyentantai21042004/video-knowledge/pkg/executor"
)

type implExtractor struct {
	cfg      config.ExtractionConfig
	workDir  string
	executor executor.Executor
	logger   logger.Logger
}

// New creates an Extractor that caches its artifacts under workDir/<video>.
func New(cfg config.ExtractionConfig, workDir string, exec executor.Executor, log logger.Logger) Extractor {
	return &implExtractor{
		cfg:      cfg,
		workDir:  workDir,
		executor: exec,
		logger:   log,
	}
}
