package watcher

import "context"

// Watcher hands every video that appears in a directory to a Handler.
type Watcher interface {
	// Start blocks until ctx is cancelled, then waits for running handlers.
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one video. Its error is logged and does not stop the
// watcher.
type Handler func(ctx context.Context, videoPath string) error
