package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/video-knowledge/internal/logger"
)

type rotatingGenerator struct {
	gens    []Generator
	logger  logger.Logger
	mu      sync.Mutex
	current int
}

// NewRotating wraps several generators (one per API key). A call that fails
// with a quota error is repeated on the next generator; any other error is
// returned immediately.
func NewRotating(gens []Generator, log logger.Logger) Generator {
	return &rotatingGenerator{gens: gens, logger: log}
}

func (r *rotatingGenerator) Generate(ctx context.Context, roleContext, instruction string) (string, error) {
	var lastErr error

	for range r.gens {
		idx := r.active()

		text, err := r.gens[idx].Generate(ctx, roleContext, instruction)
		if err == nil {
			return text, nil
		}
		if !IsQuotaError(err) {
			return "", err
		}

		r.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
		r.rotateFrom(idx)
		lastErr = err
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (r *rotatingGenerator) active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// rotateFrom advances only if no concurrent caller already moved past idx.
func (r *rotatingGenerator) rotateFrom(idx int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == idx {
		r.current = (r.current + 1) % len(r.gens)
	}
}

// IsQuotaError reports whether err looks like a rate-limit or quota response.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
