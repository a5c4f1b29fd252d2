package processor

import (
	"github.com/nguyentantai21042004/video-knowledge/internal/config"
	"github.com/nguyentantai21042004/video-knowledge/internal/extractor"
	"github.com/nguyentantai21042004/video-knowledge/internal/index"
	"github.com/nguyentantai21042004/video-knowledge/internal/logger"
	"github.com/nguyentantai21042004/video-knowledge/internal/summarizer"
)

type Options struct {
	// Archive moves the source video to paths.archived after success.
	Archive bool
	// Force redoes steps whose artifacts already exist.
	Force bool
}

type implProcessor struct {
	cfg        *config.Config
	extractor  extractor.Extractor
	summarizer summarizer.Summarizer
	indexer    index.Indexer
	logger     logger.Logger
	opts       Options
}

// New creates a new Processor instance. indexer may be nil when indexing is
// disabled.
func New(cfg *config.Config, ext extractor.Extractor, sum summarizer.Summarizer, idx index.Indexer, log logger.Logger, opts Options) Processor {
	return &implProcessor{
		cfg:        cfg,
		extractor:  ext,
		summarizer: sum,
		indexer:    idx,
		logger:     log,
		opts:       opts,
	}
}
