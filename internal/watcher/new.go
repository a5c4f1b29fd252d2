package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/video-knowledge/internal/logger"
)

// DefaultExtensions lists the video formats picked up when none are configured.
var DefaultExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv"}

type Options struct {
	MaxConcurrent int
	// SettleDelay is waited before a new file is handed over so the writer
	// can finish copying it.
	SettleDelay time.Duration
	Extensions  []string
	// ScanExisting dispatches videos already present when Start is called.
	ScanExisting bool
}

// New creates a new Watcher instance with concurrency control
func New(inputDir string, handler Handler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	// Default to 2 concurrent if not specified
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = 500 * time.Millisecond
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}

	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, e := range opts.Extensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = struct{}{}
	}

	return &implWatcher{
		inputDir:   inputDir,
		handler:    handler,
		logger:     log,
		watcher:    watcher,
		opts:       opts,
		extensions: exts,
		semaphore:  newSemaphore(opts.MaxConcurrent),
		inFlight:   make(map[string]struct{}),
	}, nil
}
