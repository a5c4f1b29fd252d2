package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Generate sends roleContext as the system instruction and instruction as the
// user turn. Provider errors are returned as is; nothing is retried here.
func (g *implGenerator) Generate(ctx context.Context, roleContext, instruction string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	}
	if roleContext != "" {
		cfg.SystemInstruction = genai.NewContentFromText(roleContext, genai.RoleUser)
	}

	result, err := g.models.GenerateContent(ctx, g.model, genai.Text(instruction), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return responseText(result)
}

func responseText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from model")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
