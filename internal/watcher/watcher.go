package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/video-knowledge/internal/logger"
)

type implWatcher struct {
	inputDir   string
	handler    Handler
	logger     logger.Logger
	watcher    *fsnotify.Watcher
	opts       Options
	extensions map[string]struct{}
	semaphore  *semaphore
	wg         sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// Start begins monitoring the input directory for new video files. Every
// handler call processes one video on its own, so no state is shared between
// concurrent runs.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.opts.MaxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(w.opts.Extensions, ", "))

	if w.opts.ScanExisting {
		if err := w.scanExisting(ctx); err != nil {
			w.logger.Warn(ctx, "Failed to scan %s: %v", w.inputDir, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.isVideoFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-video file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New video detected: %s", event.Name)
			w.dispatch(ctx, event.Name, w.opts.SettleDelay)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) scanExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return err
	}

	var found []string
	for _, e := range entries {
		if !e.IsDir() && w.isVideoFile(e.Name()) {
			found = append(found, filepath.Join(w.inputDir, e.Name()))
		}
	}
	sort.Strings(found)

	if len(found) > 0 {
		w.logger.Info(ctx, "Found %d existing video(s) in %s", len(found), w.inputDir)
	}
	for _, path := range found {
		w.dispatch(ctx, path, 0)
	}
	return nil
}

// dispatch runs the handler for path in its own goroutine once a semaphore
// slot is free. A path already being handled is skipped.
func (w *implWatcher) dispatch(ctx context.Context, path string, delay time.Duration) {
	w.mu.Lock()
	if _, busy := w.inFlight[path]; busy {
		w.mu.Unlock()
		w.logger.Debug(ctx, "Already processing %s", path)
		return
	}
	w.inFlight[path] = struct{}{}
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.done(path)

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
		}

		if err := w.semaphore.acquire(ctx); err != nil {
			return
		}
		defer w.semaphore.release()

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
}

func (w *implWatcher) done(path string) {
	w.mu.Lock()
	delete(w.inFlight, path)
	w.mu.Unlock()
}

// isVideoFile checks if the file has a supported video extension
func (w *implWatcher) isVideoFile(path string) bool {
	_, ok := w.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
