// Package qa answers questions about an indexed video.
package qa

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/video-knowledge/internal/index"
	"github.com/nguyentantai21042004/video-knowledge/internal/llm"
	"github.com/nguyentantai21042004/video-knowledge/internal/logger"
)

const systemPrompt = `You are an expert AI assistant helping users understand the content of a technical video.
Use the provided context to answer the user's question clearly and concisely.
If the context is insufficient, say so.`

const questionTemplate = `Context:
"""%s"""

Question:
%s`

type Answerer struct {
	index     index.Indexer
	generator llm.Generator
	logger    logger.Logger
	topK      int
}

func New(idx index.Indexer, gen llm.Generator, log logger.Logger, topK int) *Answerer {
	if topK <= 0 {
		topK = 4
	}
	return &Answerer{index: idx, generator: gen, logger: log, topK: topK}
}

// Ask retrieves the closest chunks of video and asks the model to answer
// from them. With no hits the model is still asked and is expected to say
// the context is insufficient.
func (a *Answerer) Ask(ctx context.Context, video, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("empty question")
	}

	hits, err := a.index.Search(ctx, video, question, a.topK)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}
	a.logger.Debug(ctx, "Retrieved %d chunks for question about %s", len(hits), video)

	parts := make([]string, 0, len(hits))
	for _, h := range hits {
		parts = append(parts, h.Content)
	}

	answer, err := a.generator.Generate(ctx, systemPrompt, fmt.Sprintf(questionTemplate, strings.Join(parts, "\n\n"), question))
	if err != nil {
		return "", fmt.Errorf("answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
