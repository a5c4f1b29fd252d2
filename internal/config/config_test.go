package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				GenAI: GenAIConfig{APIKeys: []string{"key-1"}},
				Paths: PathsConfig{Output: "data/results"},
			},
			wantErr: false,
		},
		{
			name: "missing output path",
			config: Config{
				GenAI: GenAIConfig{APIKeys: []string{"key-1"}},
			},
			wantErr: true,
		},
		{
			name: "index enabled without dsn",
			config: Config{
				GenAI: GenAIConfig{APIKeys: []string{"key-1"}},
				Paths: PathsConfig{Output: "data/results"},
				Index: IndexConfig{Enabled: true},
			},
			wantErr: true,
		},
		{
			name: "vertex without project",
			config: Config{
				GenAI: GenAIConfig{Backend: BackendVertex},
				Paths: PathsConfig{Output: "data/results"},
			},
			wantErr: true,
		},
		{
			name: "unknown backend",
			config: Config{
				GenAI: GenAIConfig{Backend: "openai", APIKeys: []string{"key-1"}},
				Paths: PathsConfig{Output: "data/results"},
			},
			wantErr: true,
		},
		{
			name: "temperature out of range",
			config: Config{
				GenAI: GenAIConfig{APIKeys: []string{"key-1"}, Temperature: 3},
				Paths: PathsConfig{Output: "data/results"},
			},
			wantErr: true,
		},
		{
			name: "unknown output format",
			config: Config{
				GenAI:  GenAIConfig{APIKeys: []string{"key-1"}},
				Paths:  PathsConfig{Output: "data/results"},
				Output: OutputConfig{Format: "pdf"},
			},
			wantErr: true,
		},
		{
			name: "overlap not smaller than chunk size",
			config: Config{
				GenAI: GenAIConfig{APIKeys: []string{"key-1"}},
				Paths: PathsConfig{Output: "data/results"},
				Index: IndexConfig{ChunkSize: 100, ChunkOverlap: 100},
			},
			wantErr: true,
		},
		{
			name: "negative chunk overlap",
			config: Config{
				GenAI: GenAIConfig{APIKeys: []string{"key-1"}},
				Paths: PathsConfig{Output: "data/results"},
				Index: IndexConfig{ChunkSize: 10, ChunkOverlap: -5},
			},
			wantErr: true,
		},
		{
			name: "negative frame interval",
			config: Config{
				GenAI:      GenAIConfig{APIKeys: []string{"key-1"}},
				Paths:      PathsConfig{Output: "data/results"},
				Extraction: ExtractionConfig{FrameInterval: -3},
			},
			wantErr: true,
		},
		{
			name: "qa temperature out of range",
			config: Config{
				GenAI: GenAIConfig{APIKeys: []string{"key-1"}, QATemperature: ptr(float32(2.5))},
				Paths: PathsConfig{Output: "data/results"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GOOGLE_API_KEY", "")
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		GenAI: GenAIConfig{APIKeys: []string{"key-1"}},
		Paths: PathsConfig{Output: "data/results"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.GenAI.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %v, want gemini-2.5-flash", cfg.GenAI.Model)
	}
	if cfg.GenAI.Backend != BackendGemini {
		t.Errorf("Backend = %v, want %v", cfg.GenAI.Backend, BackendGemini)
	}
	if cfg.Extraction.FrameInterval != 3 {
		t.Errorf("FrameInterval = %v, want 3", cfg.Extraction.FrameInterval)
	}
	if cfg.Index.TopK != 4 {
		t.Errorf("TopK = %v, want 4", cfg.Index.TopK)
	}
	if cfg.Output.Format != FormatMarkdown {
		t.Errorf("Format = %v, want %v", cfg.Output.Format, FormatMarkdown)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %v, want 2", cfg.Performance.MaxConcurrent)
	}
	if cfg.GenAI.QATemperature == nil || *cfg.GenAI.QATemperature != 0.2 {
		t.Errorf("QATemperature = %v, want 0.2", cfg.GenAI.QATemperature)
	}
}

func TestValidateKeepsZeroQATemperature(t *testing.T) {
	cfg := Config{
		GenAI: GenAIConfig{APIKeys: []string{"key-1"}, QATemperature: ptr(float32(0))},
		Paths: PathsConfig{Output: "data/results"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if *cfg.GenAI.QATemperature != 0 {
		t.Errorf("QATemperature = %v, want 0", *cfg.GenAI.QATemperature)
	}
}

func ptr[T any](v T) *T { return &v }

func TestValidateKeysFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "key-a, key-b,,")

	cfg := Config{Paths: PathsConfig{Output: "data/results"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if diff := cmp.Diff([]string{"key-a", "key-b"}, cfg.GenAI.APIKeys); diff != "" {
		t.Errorf("APIKeys mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	content := `
genai:
  api_keys: ["key-1", "key-2"]
  model: "gemini-2.5-pro"
  temperature: 0.3
  qa_temperature: 0

extraction:
  frame_interval: 5
  whisper_model_path: "models/test.bin"

paths:
  input: "data/input"
  output: "data/results"

output:
  format: "docx"

index:
  enabled: true
  dsn: "postgres://localhost/test"

logging:
  level: "debug"
  format: "json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GenAI.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %v, want %v", cfg.GenAI.Model, "gemini-2.5-pro")
	}
	if cfg.GenAI.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", cfg.GenAI.Temperature)
	}
	if cfg.GenAI.QATemperature == nil || *cfg.GenAI.QATemperature != 0 {
		t.Errorf("QATemperature = %v, want explicit 0", cfg.GenAI.QATemperature)
	}
	if cfg.Extraction.FrameInterval != 5 {
		t.Errorf("FrameInterval = %v, want 5", cfg.Extraction.FrameInterval)
	}
	if cfg.Output.Format != FormatDocx {
		t.Errorf("Format = %v, want %v", cfg.Output.Format, FormatDocx)
	}
	if cfg.Index.DSN != "postgres://localhost/test" {
		t.Errorf("DSN = %v, want postgres://localhost/test", cfg.Index.DSN)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %v, want json", cfg.Logging.Format)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("genai: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should return error for malformed YAML")
	}
}
