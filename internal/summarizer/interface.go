package summarizer

import "context"

// Summarizer turns the OCR text and transcript of one video into a summary
// and a full document.
type Summarizer interface {
	Run(ctx context.Context, in Input, out Targets) (*Result, error)
}

// Input holds the two texts extracted from a video. OCRText is expected to be
// deduplicated already.
type Input struct {
	OCRText        string
	TranscriptText string
}

// Targets names where the two final documents are persisted.
type Targets struct {
	SummaryPath       string
	DocumentationPath string
}

// Result is the record returned by a successful run.
type Result struct {
	Summary                 string `json:"summary"`
	FullDocumentation       string `json:"full_documentation"`
	OCRSummary              string `json:"ocr_summary"`
	TranscriptDocumentation string `json:"transcript_documentation"`

	OCRText        string `json:"ocr_text"`
	TranscriptText string `json:"transcript_text"`
}
