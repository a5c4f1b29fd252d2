package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// transcribe runs whisper.cpp on the wav file and returns the plain text,
// whitespace collapsed to single spaces.
func (e *implExtractor) transcribe(ctx context.Context, audioPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	e.logger.Info(ctx, "Starting transcription with %d threads: %s", e.cfg.WhisperThreads, audioPath)

	// -otxt: plain text without timestamps
	// -l: force language (prevents hallucination)
	// -bo: best of 5 for better accuracy
	args := []string{
		"-m", e.cfg.WhisperModelPath,
		"-f", audioPath,
		"-otxt",
		"-l", e.cfg.WhisperLanguage,
		"-t", strconv.Itoa(e.cfg.WhisperThreads),
		"-bo", "5",
		"--output-file", outputPrefix,
	}

	if _, err := e.executor.Execute(ctx, e.cfg.WhisperBinary, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := outputPrefix + ".txt"
	defer e.cleanupTempFile(ctx, txtPath)

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	transcript := strings.Join(strings.Fields(string(data)), " ")
	e.logger.Info(ctx, "Transcription completed: %d chars", len(transcript))
	return transcript, nil
}
