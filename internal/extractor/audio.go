package extractor

import (
	"context"
	"fmt"
	"path/filepath"
)

// extractAudio converts the video's audio track to 16kHz mono PCM, the input
// whisper expects.
func (e *implExtractor) extractAudio(ctx context.Context, videoPath, dir string) (string, error) {
	audioPath := filepath.Join(dir, "audio_temp.wav")

	e.logger.Info(ctx, "Extracting audio: %s", videoPath)

	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := e.executor.Execute(ctx, e.cfg.FFmpegBinary, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	e.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return audioPath, nil
}
