package processor

import (
	"context"

	"github.com/nguyentantai21042004/video-knowledge/internal/summarizer"
)

// Processor turns one video into a summary, full documentation and an index.
type Processor interface {
	Process(ctx context.Context, videoPath string) error
	Summarize(ctx context.Context, name string, in summarizer.Input) (*summarizer.Result, error)
	Targets(name string) summarizer.Targets
}
