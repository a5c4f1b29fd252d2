package output

import "context"

// Sink persists one generated document.
type Sink interface {
	Write(ctx context.Context, path, content string) error
}
