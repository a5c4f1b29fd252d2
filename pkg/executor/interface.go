package executor

import "context"

// Executor runs external tools (ffmpeg, whisper, tesseract) and returns
// their stdout.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
}
