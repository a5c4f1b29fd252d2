package llm

import "context"

// Generator is the text-generation capability: one synchronous request made
// of a role context and an instruction, answered with raw text.
type Generator interface {
	Generate(ctx context.Context, roleContext, instruction string) (string, error)
}
