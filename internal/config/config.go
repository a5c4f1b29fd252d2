package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	GenAI       GenAIConfig       `yaml:"genai"`
	Extraction  ExtractionConfig  `yaml:"extraction"`
	Paths       PathsConfig       `yaml:"paths"`
	Output      OutputConfig      `yaml:"output"`
	Index       IndexConfig       `yaml:"index"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

// GenAIConfig selects the hosted text-generation capability.
// Endpoint, APIKeys, Model and Temperature are the per-pipeline options;
// nothing here is read from process-wide state after Load.
type GenAIConfig struct {
	Backend             string   `yaml:"backend"`
	Endpoint            string   `yaml:"endpoint"`
	APIKeys             []string `yaml:"api_keys"`
	Project             string   `yaml:"project"`
	Location            string   `yaml:"location"`
	Model               string   `yaml:"model"`
	Temperature         float32  `yaml:"temperature"`
	// QATemperature is a pointer so an explicit 0 survives the default.
	QATemperature       *float32 `yaml:"qa_temperature"`
	EmbeddingModel      string   `yaml:"embedding_model"`
	EmbeddingDimensions int      `yaml:"embedding_dimensions"`
}

type ExtractionConfig struct {
	FFmpegBinary      string `yaml:"ffmpeg_binary"`
	FrameInterval     int    `yaml:"frame_interval"`
	TesseractBinary   string `yaml:"tesseract_binary"`
	TesseractLanguage string `yaml:"tesseract_language"`
	WhisperBinary     string `yaml:"whisper_binary"`
	WhisperModelPath  string `yaml:"whisper_model_path"`
	WhisperLanguage   string `yaml:"whisper_language"`
	WhisperThreads    int    `yaml:"whisper_threads"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Work     string `yaml:"work"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

type IndexConfig struct {
	Enabled       bool   `yaml:"enabled"`
	DSN           string `yaml:"dsn"`
	ChunkSize     int    `yaml:"chunk_size"`
	ChunkOverlap  int    `yaml:"chunk_overlap"`
	TopK          int    `yaml:"top_k"`
	BatchSize     int    `yaml:"batch_size"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

const (
	BackendGemini = "gemini"
	BackendVertex = "vertex"

	FormatMarkdown = "md"
	FormatDocx     = "docx"
)

func (c *Config) Validate() error {
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Index.Enabled && c.Index.DSN == "" {
		return fmt.Errorf("index.dsn is required when index.enabled is true")
	}

	if c.GenAI.Backend == "" {
		c.GenAI.Backend = BackendGemini
	}
	switch c.GenAI.Backend {
	case BackendGemini:
		if len(c.GenAI.APIKeys) == 0 {
			c.GenAI.APIKeys = keysFromEnv()
		}
		if len(c.GenAI.APIKeys) == 0 {
			return fmt.Errorf("genai.api_keys is required (or set GOOGLE_API_KEY)")
		}
	case BackendVertex:
		if c.GenAI.Project == "" || c.GenAI.Location == "" {
			return fmt.Errorf("genai.project and genai.location are required for the vertex backend")
		}
	default:
		return fmt.Errorf("genai.backend %q is not supported", c.GenAI.Backend)
	}
	if c.GenAI.Temperature < 0 || c.GenAI.Temperature > 2 {
		return fmt.Errorf("genai.temperature must be within [0, 2]")
	}

	if c.Output.Format == "" {
		c.Output.Format = FormatMarkdown
	}
	if c.Output.Format != FormatMarkdown && c.Output.Format != FormatDocx {
		return fmt.Errorf("output.format must be %q or %q", FormatMarkdown, FormatDocx)
	}

	if c.GenAI.Model == "" {
		c.GenAI.Model = "gemini-2.5-flash"
	}
	if c.GenAI.QATemperature == nil {
		qa := float32(0.2)
		c.GenAI.QATemperature = &qa
	}
	if t := *c.GenAI.QATemperature; t < 0 || t > 2 {
		return fmt.Errorf("genai.qa_temperature must be within [0, 2]")
	}
	if c.GenAI.EmbeddingModel == "" {
		c.GenAI.EmbeddingModel = "text-embedding-004"
	}
	if c.GenAI.EmbeddingDimensions == 0 {
		c.GenAI.EmbeddingDimensions = 768
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Work == "" {
		c.Paths.Work = "data/work"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Extraction.FFmpegBinary == "" {
		c.Extraction.FFmpegBinary = "ffmpeg"
	}
	if c.Extraction.FrameInterval == 0 {
		c.Extraction.FrameInterval = 3
	}
	if c.Extraction.FrameInterval < 0 {
		return fmt.Errorf("extraction.frame_interval must be positive")
	}
	if c.Extraction.TesseractBinary == "" {
		c.Extraction.TesseractBinary = "tesseract"
	}
	if c.Extraction.TesseractLanguage == "" {
		c.Extraction.TesseractLanguage = "eng"
	}
	if c.Extraction.WhisperBinary == "" {
		c.Extraction.WhisperBinary = "whisper-cli"
	}
	if c.Extraction.WhisperLanguage == "" {
		c.Extraction.WhisperLanguage = "en"
	}
	if c.Extraction.WhisperThreads == 0 {
		c.Extraction.WhisperThreads = 8
	}
	if c.Index.ChunkSize == 0 {
		c.Index.ChunkSize = 1000
	}
	if c.Index.ChunkSize < 0 || c.Index.ChunkOverlap < 0 {
		return fmt.Errorf("index.chunk_size and index.chunk_overlap must not be negative")
	}
	if c.Index.ChunkOverlap >= c.Index.ChunkSize {
		return fmt.Errorf("index.chunk_overlap must be smaller than index.chunk_size")
	}
	if c.Index.TopK == 0 {
		c.Index.TopK = 4
	}
	if c.Index.BatchSize == 0 {
		c.Index.BatchSize = 50
	}
	if c.Index.MaxConcurrent == 0 {
		c.Index.MaxConcurrent = 4
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}

func keysFromEnv() []string {
	var keys []string
	for _, k := range strings.Split(os.Getenv("GOOGLE_API_KEY"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
