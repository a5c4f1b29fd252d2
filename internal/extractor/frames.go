package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// extractFrames samples one frame every FrameInterval seconds into dir and
// returns the frame paths in timeline order.
func (e *implExtractor) extractFrames(ctx context.Context, videoPath, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create frames dir: %w", err)
	}

	absVideoPath, err := filepath.Abs(videoPath)
	if err != nil {
		return nil, fmt.Errorf("resolve video path: %w", err)
	}

	e.logger.Info(ctx, "Extracting frames every %ds: %s", e.cfg.FrameInterval, videoPath)

	// relative output pattern, resolved against dir
	args := []string{
		"-i", absVideoPath,
		"-vf", fmt.Sprintf("fps=1/%d", e.cfg.FrameInterval),
		"-y",
		"frame_%04d.png",
	}
	if _, err := e.executor.ExecuteInDir(ctx, dir, e.cfg.FFmpegBinary, args...); err != nil {
		return nil, fmt.Errorf("ffmpeg extract frames: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frames dir: %w", err)
	}

	var frames []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "frame_") {
			continue
		}
		frames = append(frames, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(frames)

	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames extracted from %s", videoPath)
	}

	e.logger.Info(ctx, "Extracted %d frames", len(frames))
	return frames, nil
}

// ocrFrames reads each frame with tesseract. The text is kept exactly as
// tesseract prints it so identical frames produce identical strings.
func (e *implExtractor) ocrFrames(ctx context.Context, frames []string) ([]string, error) {
	texts := make([]string, 0, len(frames))

	for i, frame := range frames {
		text, err := e.executor.Execute(ctx, e.cfg.TesseractBinary, frame, "stdout", "-l", e.cfg.TesseractLanguage)
		if err != nil {
			return nil, fmt.Errorf("tesseract %s: %w", filepath.Base(frame), err)
		}
		texts = append(texts, text)

		if (i+1)%20 == 0 || i+1 == len(frames) {
			e.logger.Debug(ctx, "OCR progress: %d/%d frames", i+1, len(frames))
		}
	}

	return texts, nil
}
