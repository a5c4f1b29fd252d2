package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extract produces the transcript and frame texts for videoPath. Artifacts of
// an earlier run are reused unless force is set.
func (e *implExtractor) Extract(ctx context.Context, videoPath string, force bool) (*Extraction, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return nil, fmt.Errorf("video file: %w", err)
	}

	name := BaseName(videoPath)
	dir := filepath.Join(e.workDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}

	out := &Extraction{
		TranscriptPath: filepath.Join(dir, name+"_transcription.txt"),
		FramesPath:     filepath.Join(dir, name+"_frames.json"),
	}

	transcript, err := e.loadOrTranscribe(ctx, videoPath, dir, out.TranscriptPath, force)
	if err != nil {
		return nil, err
	}
	out.Transcript = transcript

	texts, err := e.loadOrReadFrames(ctx, videoPath, dir, out.FramesPath, force)
	if err != nil {
		return nil, err
	}
	out.FrameTexts = texts

	return out, nil
}

func (e *implExtractor) loadOrTranscribe(ctx context.Context, videoPath, dir, cachePath string, force bool) (string, error) {
	if !force {
		if data, err := os.ReadFile(cachePath); err == nil {
			e.logger.Info(ctx, "Transcription already exists, skipping: %s", cachePath)
			return string(data), nil
		}
	}

	audioPath, err := e.extractAudio(ctx, videoPath, dir)
	if err != nil {
		return "", fmt.Errorf("extract audio: %w", err)
	}
	defer e.cleanupTempFile(ctx, audioPath)

	transcript, err := e.transcribe(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	if err := os.WriteFile(cachePath, []byte(transcript), 0644); err != nil {
		return "", fmt.Errorf("write transcription: %w", err)
	}
	return transcript, nil
}

func (e *implExtractor) loadOrReadFrames(ctx context.Context, videoPath, dir, cachePath string, force bool) ([]string, error) {
	if !force {
		if data, err := os.ReadFile(cachePath); err == nil {
			var texts []string
			if err := json.Unmarshal(data, &texts); err == nil {
				e.logger.Info(ctx, "OCR already exists, skipping: %s", cachePath)
				return texts, nil
			}
			e.logger.Warn(ctx, "Ignoring unreadable OCR cache %s", cachePath)
		}
	}

	framesDir := filepath.Join(dir, "frames")
	defer func() {
		if err := os.RemoveAll(framesDir); err != nil {
			e.logger.Warn(ctx, "Failed to remove frames dir %s: %v", framesDir, err)
		}
	}()

	frames, err := e.extractFrames(ctx, videoPath, framesDir)
	if err != nil {
		return nil, fmt.Errorf("extract frames: %w", err)
	}

	texts, err := e.ocrFrames(ctx, frames)
	if err != nil {
		return nil, fmt.Errorf("ocr frames: %w", err)
	}

	data, err := json.MarshalIndent(texts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode frame texts: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		return nil, fmt.Errorf("write frame texts: %w", err)
	}
	return texts, nil
}

func (e *implExtractor) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		e.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		e.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}

// BaseName is the video file name without directory and extension. It keys
// every artifact derived from the video.
func BaseName(videoPath string) string {
	base := filepath.Base(videoPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
