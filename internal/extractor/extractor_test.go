package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nguyentantai21042004/video-knowledge/internal/config"
	"github.com/nguyentantai21042004/video-knowledge/internal/logger"
)

// fakeExecutor imitates ffmpeg, whisper and tesseract by writing the files
// the real tools would produce.
type fakeExecutor struct {
	frameTexts []string
	transcript string
	failOn     string
	calls      []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, "", name, args...)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	f.calls = append(f.calls, name)
	if name == f.failOn {
		return "", errors.New(name + " crashed")
	}

	switch name {
	case "ffmpeg":
		if contains(args, "-vn") {
			return "", os.WriteFile(args[len(args)-1], []byte("RIFF"), 0644)
		}
		for i := range f.frameTexts {
			p := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i+1))
			if err := os.WriteFile(p, []byte{byte(i)}, 0644); err != nil {
				return "", err
			}
		}
		return "", nil
	case "whisper-cli":
		prefix := args[indexOf(args, "--output-file")+1]
		return "", os.WriteFile(prefix+".txt", []byte(f.transcript), 0644)
	case "tesseract":
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return f.frameTexts[int(data[0])], nil
	}
	return "", fmt.Errorf("unexpected command %s", name)
}

func contains(args []string, s string) bool { return indexOf(args, s) >= 0 }

func indexOf(args []string, s string) int {
	for i, a := range args {
		if a == s {
			return i
		}
	}
	return -1
}

func testConfig() config.ExtractionConfig {
	return config.ExtractionConfig{
		FFmpegBinary:      "ffmpeg",
		FrameInterval:     3,
		TesseractBinary:   "tesseract",
		TesseractLanguage: "eng",
		WhisperBinary:     "whisper-cli",
		WhisperModelPath:  "models/ggml-small.bin",
		WhisperLanguage:   "en",
		WhisperThreads:    4,
	}
}

func writeVideo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lecture.mp4")
	if err := os.WriteFile(path, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtract(t *testing.T) {
	exec := &fakeExecutor{
		frameTexts: []string{"Slide 1\n", "Slide 1\n", "Slide 2\n"},
		transcript: "  Hello\n world \n",
	}
	workDir := t.TempDir()
	e := New(testConfig(), workDir, exec, logger.Nop())

	got, err := e.Extract(context.Background(), writeVideo(t), false)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if got.Transcript != "Hello world" {
		t.Errorf("Transcript = %q, want %q", got.Transcript, "Hello world")
	}
	// duplicates are kept, dedup happens downstream
	if diff := cmp.Diff([]string{"Slide 1\n", "Slide 1\n", "Slide 2\n"}, got.FrameTexts); diff != "" {
		t.Errorf("FrameTexts mismatch (-want +got):\n%s", diff)
	}

	if got.TranscriptPath != filepath.Join(workDir, "lecture", "lecture_transcription.txt") {
		t.Errorf("TranscriptPath = %s", got.TranscriptPath)
	}
	if _, err := os.Stat(filepath.Join(workDir, "lecture", "frames")); !os.IsNotExist(err) {
		t.Error("frames dir should be removed after OCR")
	}
	if _, err := os.Stat(filepath.Join(workDir, "lecture", "audio_temp.wav")); !os.IsNotExist(err) {
		t.Error("temp audio should be removed after transcription")
	}
}

func TestExtractReusesArtifacts(t *testing.T) {
	exec := &fakeExecutor{frameTexts: []string{"A"}, transcript: "hi"}
	workDir := t.TempDir()
	e := New(testConfig(), workDir, exec, logger.Nop())
	video := writeVideo(t)

	if _, err := e.Extract(context.Background(), video, false); err != nil {
		t.Fatal(err)
	}
	first := len(exec.calls)

	got, err := e.Extract(context.Background(), video, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(exec.calls) != first {
		t.Errorf("second run invoked %v, want no tools", exec.calls[first:])
	}
	if got.Transcript != "hi" || len(got.FrameTexts) != 1 {
		t.Errorf("cached extraction = %+v", got)
	}

	if _, err := e.Extract(context.Background(), video, true); err != nil {
		t.Fatal(err)
	}
	if len(exec.calls) == first {
		t.Error("force should re-run the tools")
	}
}

func TestExtractErrors(t *testing.T) {
	for _, tool := range []string{"ffmpeg", "whisper-cli", "tesseract"} {
		t.Run(tool, func(t *testing.T) {
			exec := &fakeExecutor{frameTexts: []string{"A"}, transcript: "hi", failOn: tool}
			e := New(testConfig(), t.TempDir(), exec, logger.Nop())

			_, err := e.Extract(context.Background(), writeVideo(t), false)
			if err == nil || !strings.Contains(err.Error(), "crashed") {
				t.Errorf("Extract() error = %v, want %s failure", err, tool)
			}
		})
	}
}

func TestExtractMissingVideo(t *testing.T) {
	e := New(testConfig(), t.TempDir(), &fakeExecutor{}, logger.Nop())
	if _, err := e.Extract(context.Background(), "missing.mp4", false); err == nil {
		t.Error("Extract() should fail for a missing video")
	}
}

func TestExtractNoFrames(t *testing.T) {
	exec := &fakeExecutor{transcript: "hi"}
	e := New(testConfig(), t.TempDir(), exec, logger.Nop())

	if _, err := e.Extract(context.Background(), writeVideo(t), false); err == nil {
		t.Error("Extract() should fail when ffmpeg yields no frames")
	}
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"data/input/AI.mp4":      "AI",
		"lecture.final.mov":      "lecture.final",
		"/abs/path/no_extension": "no_extension",
	}
	for in, want := range tests {
		if got := BaseName(in); got != want {
			t.Errorf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}
