package summarizer

import (
	"context"
	"fmt"
)

// Run executes OCR summary, transcript documentation and fusion in that
// order, then writes the summary and the full documentation. A failed stage
// stops the run before anything is written.
func (s *implSummarizer) Run(ctx context.Context, in Input, out Targets) (*Result, error) {
	if out.SummaryPath == "" || out.DocumentationPath == "" {
		return nil, errMissingTargets
	}

	st := NewPipelineState(in)

	// INIT -> OCR_DONE
	ocrSummary, err := s.runStage(ctx, StageOCR, s.prompts.OCR, st)
	if err != nil {
		return nil, err
	}
	if err := st.setOCRSummary(ocrSummary); err != nil {
		return nil, err
	}

	// OCR_DONE -> TRANSCRIPT_DONE
	transcriptDoc, err := s.runStage(ctx, StageTranscript, s.prompts.Transcript, st)
	if err != nil {
		return nil, err
	}
	if err := st.setTranscriptDocumentation(transcriptDoc); err != nil {
		return nil, err
	}

	// TRANSCRIPT_DONE -> FUSED
	raw, err := s.runStage(ctx, StageFusion, s.prompts.Fusion, st)
	if err != nil {
		return nil, err
	}
	summary, doc, ok := Split(raw)
	if !ok {
		s.logger.Warn(ctx, "[%s] response is missing %q / %q, keeping raw text as documentation",
			StageFusion, SummaryMarker, DocumentationMarker)
	}
	if err := st.setFused(summary, doc); err != nil {
		return nil, err
	}

	// FUSED -> PERSISTED
	if err := s.persist(ctx, st, out); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Summary saved to: %s", out.SummaryPath)
	s.logger.Info(ctx, "Full documentation saved to: %s", out.DocumentationPath)

	return st.result(), nil
}

func (s *implSummarizer) persist(ctx context.Context, st *PipelineState, out Targets) error {
	if st.State() != StateFused {
		return fmt.Errorf("%w: persist from %s", errBadTransition, st.State())
	}

	if err := s.sink.Write(ctx, out.SummaryPath, st.Summary()); err != nil {
		return &PersistError{Path: out.SummaryPath, Err: err}
	}
	if err := s.sink.Write(ctx, out.DocumentationPath, st.FullDocumentation()); err != nil {
		return &PersistError{Path: out.DocumentationPath, Err: err}
	}

	return st.markPersisted()
}
