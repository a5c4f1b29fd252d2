package output

import "github.com/nguyentantai21042004/video-knowledge/internal/logger"

type implSink struct {
	logger logger.Logger
}

// New creates a file Sink. Targets ending in .docx are rendered from
// markdown, everything else is written verbatim.
func New(log logger.Logger) Sink {
	return &implSink{logger: log}
}
