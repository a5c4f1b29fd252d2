package llm

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/video-knowledge/internal/config"
	"github.com/nguyentantai21042004/video-knowledge/internal/logger"
	"google.golang.org/genai"
)

type implGenerator struct {
	models      contentGenerator
	model       string
	temperature float32
}

// contentGenerator is the part of *genai.Models the generator uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewClient builds a genai client for one credential.
func NewClient(ctx context.Context, cfg config.GenAIConfig, apiKey string) (*genai.Client, error) {
	cc := &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.Endpoint},
	}

	switch cfg.Backend {
	case config.BackendVertex:
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.Project
		cc.Location = cfg.Location
	default:
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = apiKey
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

// New creates a Generator bound to one client, model and temperature.
func New(client *genai.Client, model string, temperature float32) Generator {
	return &implGenerator{
		models:      client.Models,
		model:       model,
		temperature: temperature,
	}
}

// FromConfig creates one Generator per configured key. With several keys the
// generators are wrapped so that a rate-limited key hands over to the next.
func FromConfig(ctx context.Context, cfg config.GenAIConfig, temperature float32, log logger.Logger) (Generator, error) {
	keys := cfg.APIKeys
	if cfg.Backend == config.BackendVertex {
		keys = []string{""}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no credentials configured")
	}

	gens := make([]Generator, 0, len(keys))
	for i, key := range keys {
		client, err := NewClient(ctx, cfg, key)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i+1, err)
		}
		gens = append(gens, New(client, cfg.Model, temperature))
	}

	if len(gens) == 1 {
		return gens[0], nil
	}
	return NewRotating(gens, log), nil
}
