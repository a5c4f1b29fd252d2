package summarizer

import (
	"github.com/nguyentantai21042004/video-knowledge/internal/llm"
	"github.com/nguyentantai21042004/video-knowledge/internal/logger"
	"github.com/nguyentantai21042004/video-knowledge/internal/output"
)

type implSummarizer struct {
	generator llm.Generator
	sink      output.Sink
	logger    logger.Logger
	prompts   Prompts
}

// New creates a Summarizer. Each Run owns its own PipelineState, so one
// Summarizer may serve concurrent runs as long as their Targets differ.
func New(gen llm.Generator, sink output.Sink, log logger.Logger) Summarizer {
	return &implSummarizer{
		generator: gen,
		sink:      sink,
		logger:    log,
		prompts:   DefaultPrompts(),
	}
}
