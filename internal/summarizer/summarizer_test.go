package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nguyentantai21042004/video-knowledge/internal/logger"
	"github.com/nguyentantai21042004/video-knowledge/internal/output"
)

type call struct {
	roleContext string
	instruction string
}

// stubGenerator answers with "SUMMARY:" + instruction[:10] until the fusion
// call, which gets fusionResponse. failOn makes the n-th call (1-based) fail.
type stubGenerator struct {
	calls          []call
	fusionResponse string
	failOn         int
}

func (g *stubGenerator) Generate(ctx context.Context, roleContext, instruction string) (string, error) {
	g.calls = append(g.calls, call{roleContext, instruction})
	if len(g.calls) == g.failOn {
		return "", errors.New("quota exceeded")
	}
	if len(g.calls) == 3 {
		return g.fusionResponse, nil
	}
	n := 10
	if len(instruction) < n {
		n = len(instruction)
	}
	return "SUMMARY:" + instruction[:n], nil
}

type write struct {
	path    string
	content string
}

type stubSink struct {
	writes []write
	failOn int
}

func (s *stubSink) Write(ctx context.Context, path, content string) error {
	s.writes = append(s.writes, write{path, content})
	if len(s.writes) == s.failOn {
		return errors.New("disk full")
	}
	return nil
}

var targets = Targets{SummaryPath: "results/v_summary.md", DocumentationPath: "results/v_full_doc.md"}

func TestRunEndToEnd(t *testing.T) {
	gen := &stubGenerator{fusionResponse: "### SUMMARY\nShort.\n### FULL DOCUMENTATION\nLong."}
	sink := &stubSink{}
	s := New(gen, sink, logger.Nop())

	in := Input{OCRText: "Slide 1\nSlide 2", TranscriptText: "Hello world"}
	res, err := s.Run(context.Background(), in, targets)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := &Result{
		Summary:                 "Short.",
		FullDocumentation:       "Long.",
		OCRSummary:              "SUMMARY:The follow",
		TranscriptDocumentation: "SUMMARY:Here is a ",
		OCRText:                 in.OCRText,
		TranscriptText:          in.TranscriptText,
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Result mismatch (-want +got):\n%s", diff)
	}

	wantWrites := []write{
		{targets.SummaryPath, "Short."},
		{targets.DocumentationPath, "Long."},
	}
	if diff := cmp.Diff(wantWrites, sink.writes, cmp.AllowUnexported(write{})); diff != "" {
		t.Errorf("sink writes mismatch (-want +got):\n%s", diff)
	}
}

func TestResultRecordKeys(t *testing.T) {
	gen := &stubGenerator{fusionResponse: "### SUMMARY\nS\n### FULL DOCUMENTATION\nD"}
	res, err := New(gen, &stubSink{}, logger.Nop()).Run(context.Background(), Input{OCRText: "o", TranscriptText: "t"}, targets)
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	var rec map[string]string
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatal(err)
	}

	var keys []string
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	want := []string{"full_documentation", "ocr_summary", "ocr_text", "summary", "transcript_documentation", "transcript_text"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("record keys mismatch (-want +got):\n%s", diff)
	}
}

func TestRunStageOrderAndInputs(t *testing.T) {
	gen := &stubGenerator{fusionResponse: "### SUMMARY\nS\n### FULL DOCUMENTATION\nD"}
	s := New(gen, &stubSink{}, logger.Nop())

	_, err := s.Run(context.Background(), Input{OCRText: "OCR-INPUT", TranscriptText: "TRANSCRIPT-INPUT"}, targets)
	if err != nil {
		t.Fatal(err)
	}

	if len(gen.calls) != 3 {
		t.Fatalf("calls = %d, want 3", len(gen.calls))
	}

	// OCR stage strictly first, transcript second
	if !strings.Contains(gen.calls[0].instruction, "OCR-INPUT") || strings.Contains(gen.calls[0].instruction, "TRANSCRIPT-INPUT") {
		t.Errorf("first call is not the OCR stage: %q", gen.calls[0].instruction)
	}
	if !strings.Contains(gen.calls[1].instruction, "TRANSCRIPT-INPUT") {
		t.Errorf("second call is not the transcript stage: %q", gen.calls[1].instruction)
	}

	// fusion sees both earlier outputs
	fusion := gen.calls[2].instruction
	for _, want := range []string{"SUMMARY:The follow", "SUMMARY:Here is a ", SummaryMarker, DocumentationMarker} {
		if !strings.Contains(fusion, want) {
			t.Errorf("fusion instruction missing %q", want)
		}
	}

	for i, c := range gen.calls {
		if c.roleContext != systemContext {
			t.Errorf("call %d role context differs from the system context", i+1)
		}
	}
}

func TestRunStageFailureNothingPersisted(t *testing.T) {
	for _, failOn := range []int{1, 2, 3} {
		gen := &stubGenerator{failOn: failOn, fusionResponse: "### SUMMARY\nS\n### FULL DOCUMENTATION\nD"}
		sink := &stubSink{}
		s := New(gen, sink, logger.Nop())

		res, err := s.Run(context.Background(), Input{OCRText: "o", TranscriptText: "t"}, targets)
		if err == nil {
			t.Fatalf("failOn=%d: Run() should return error", failOn)
		}
		if res != nil {
			t.Errorf("failOn=%d: result = %+v, want nil", failOn, res)
		}
		if len(sink.writes) != 0 {
			t.Errorf("failOn=%d: sink called %d times, want 0", failOn, len(sink.writes))
		}
		if len(gen.calls) != failOn {
			t.Errorf("failOn=%d: generator called %d times, later stages must not run", failOn, len(gen.calls))
		}

		var stageErr *StageError
		if !errors.As(err, &stageErr) {
			t.Fatalf("failOn=%d: error %v is not a StageError", failOn, err)
		}
		wantStage := []Stage{StageOCR, StageTranscript, StageFusion}[failOn-1]
		if stageErr.Stage != wantStage {
			t.Errorf("failOn=%d: stage = %s, want %s", failOn, stageErr.Stage, wantStage)
		}
	}
}

func TestRunParseFailureStillPersists(t *testing.T) {
	raw := "I could not follow the format, but here are my notes."
	gen := &stubGenerator{fusionResponse: raw}
	sink := &stubSink{}
	s := New(gen, sink, logger.Nop())

	res, err := s.Run(context.Background(), Input{OCRText: "o", TranscriptText: "t"}, targets)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.Summary != SplitFailedSummary {
		t.Errorf("Summary = %q, want sentinel", res.Summary)
	}
	if res.FullDocumentation != raw {
		t.Errorf("FullDocumentation = %q, want raw response", res.FullDocumentation)
	}
	if len(sink.writes) != 2 {
		t.Errorf("sink called %d times, want 2", len(sink.writes))
	}
}

func TestRunPersistFailure(t *testing.T) {
	gen := &stubGenerator{fusionResponse: "### SUMMARY\nS\n### FULL DOCUMENTATION\nD"}
	sink := &stubSink{failOn: 2}
	s := New(gen, sink, logger.Nop())

	_, err := s.Run(context.Background(), Input{}, targets)

	var persistErr *PersistError
	if !errors.As(err, &persistErr) {
		t.Fatalf("error %v is not a PersistError", err)
	}
	if persistErr.Path != targets.DocumentationPath {
		t.Errorf("Path = %q, want %q", persistErr.Path, targets.DocumentationPath)
	}
}

func TestRunRequiresTargets(t *testing.T) {
	gen := &stubGenerator{}
	s := New(gen, &stubSink{}, logger.Nop())

	if _, err := s.Run(context.Background(), Input{}, Targets{SummaryPath: "a.md"}); err == nil {
		t.Fatal("Run() should reject missing documentation path")
	}
	if len(gen.calls) != 0 {
		t.Errorf("generator called %d times, want 0", len(gen.calls))
	}
}

func TestRunWithFileSink(t *testing.T) {
	dir := t.TempDir()
	out := Targets{
		SummaryPath:       filepath.Join(dir, "results", "lecture_summary.md"),
		DocumentationPath: filepath.Join(dir, "results", "lecture_full_doc.md"),
	}
	gen := &stubGenerator{fusionResponse: "### SUMMARY\nS\n### FULL DOCUMENTATION\nD"}
	s := New(gen, output.New(logger.Nop()), logger.Nop())

	if _, err := s.Run(context.Background(), Input{OCRText: "o", TranscriptText: "t"}, out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for path, want := range map[string]string{out.SummaryPath: "S", out.DocumentationPath: "D"} {
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}
}

func TestStagePromptRender(t *testing.T) {
	st := NewPipelineState(Input{OCRText: "50% off", TranscriptText: "t"})
	p := DefaultPrompts()

	got := p.OCR.Render(st)
	if !strings.Contains(got, `"""50% off"""`) {
		t.Errorf("OCR instruction = %q, want quoted input", got)
	}
}
