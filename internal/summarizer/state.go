package summarizer

import "fmt"

type State int

const (
	StateInit State = iota
	StateOCRDone
	StateTranscriptDone
	StateFused
	StatePersisted
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateOCRDone:
		return "OCR_DONE"
	case StateTranscriptDone:
		return "TRANSCRIPT_DONE"
	case StateFused:
		return "FUSED"
	case StatePersisted:
		return "PERSISTED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type onceField struct {
	value string
	set   bool
}

func (f *onceField) store(v string) error {
	if f.set {
		return errFieldSet
	}
	f.value = v
	f.set = true
	return nil
}

// PipelineState is owned by a single run. Every field is written at most once
// and the run advances one state at a time.
type PipelineState struct {
	state State

	ocrText                 string
	transcriptText          string
	ocrSummary              onceField
	transcriptDocumentation onceField
	summary                 onceField
	fullDocumentation       onceField
}

func NewPipelineState(in Input) *PipelineState {
	return &PipelineState{
		state:          StateInit,
		ocrText:        in.OCRText,
		transcriptText: in.TranscriptText,
	}
}

func (s *PipelineState) State() State                    { return s.state }
func (s *PipelineState) OCRText() string                 { return s.ocrText }
func (s *PipelineState) TranscriptText() string          { return s.transcriptText }
func (s *PipelineState) OCRSummary() string              { return s.ocrSummary.value }
func (s *PipelineState) TranscriptDocumentation() string { return s.transcriptDocumentation.value }
func (s *PipelineState) Summary() string                 { return s.summary.value }
func (s *PipelineState) FullDocumentation() string       { return s.fullDocumentation.value }

func (s *PipelineState) advance(from, to State) error {
	if s.state != from || to != from+1 {
		return fmt.Errorf("%w: %s -> %s (current %s)", errBadTransition, from, to, s.state)
	}
	s.state = to
	return nil
}

func (s *PipelineState) setOCRSummary(v string) error {
	if err := s.ocrSummary.store(v); err != nil {
		return fmt.Errorf("ocr_summary: %w", err)
	}
	return s.advance(StateInit, StateOCRDone)
}

func (s *PipelineState) setTranscriptDocumentation(v string) error {
	if err := s.transcriptDocumentation.store(v); err != nil {
		return fmt.Errorf("transcript_documentation: %w", err)
	}
	return s.advance(StateOCRDone, StateTranscriptDone)
}

func (s *PipelineState) setFused(summary, doc string) error {
	if err := s.summary.store(summary); err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	if err := s.fullDocumentation.store(doc); err != nil {
		return fmt.Errorf("full_documentation: %w", err)
	}
	return s.advance(StateTranscriptDone, StateFused)
}

func (s *PipelineState) markPersisted() error {
	return s.advance(StateFused, StatePersisted)
}

func (s *PipelineState) result() *Result {
	return &Result{
		Summary:                 s.Summary(),
		FullDocumentation:       s.FullDocumentation(),
		OCRSummary:              s.OCRSummary(),
		TranscriptDocumentation: s.TranscriptDocumentation(),
		OCRText:                 s.ocrText,
		TranscriptText:          s.transcriptText,
	}
}
