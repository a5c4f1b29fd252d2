package extractor

import "context"

// Extractor pulls the spoken transcript and the per-frame on-screen text out
// of a video file.
type Extractor interface {
	Extract(ctx context.Context, videoPath string, force bool) (*Extraction, error)
}

// Extraction is the raw material for the summarizer. FrameTexts holds one
// entry per sampled frame in timeline order, duplicates included.
type Extraction struct {
	FrameTexts     []string
	Transcript     string
	TranscriptPath string
	FramesPath     string
}
