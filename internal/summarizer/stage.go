package summarizer

import (
	"context"
	"time"
)

// runStage renders the prompt against the current state, makes one call and
// returns the raw text. A failed call is wrapped in a StageError.
func (s *implSummarizer) runStage(ctx context.Context, stage Stage, prompt StagePrompt, st *PipelineState) (string, error) {
	start := time.Now()
	instruction := prompt.Render(st)

	s.logger.Debug(ctx, "[%s] sending %d chars of instruction", stage, len(instruction))

	text, err := s.generator.Generate(ctx, prompt.RoleContext, instruction)
	if err != nil {
		s.logger.Error(ctx, "[%s] failed after %s: %v", stage, time.Since(start), err)
		return "", &StageError{Stage: stage, Err: err}
	}

	s.logger.Info(ctx, "[%s] done in %s (%d chars)", stage, time.Since(start).Round(time.Millisecond), len(text))
	return text, nil
}
