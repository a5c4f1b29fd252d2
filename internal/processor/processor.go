package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/video-knowledge/internal/config"
	"github.com/nguyentantai21042004/video-knowledge/internal/extractor"
	"github.com/nguyentantai21042004/video-knowledge/internal/frametext"
	"github.com/nguyentantai21042004/video-knowledge/internal/index"
	"github.com/nguyentantai21042004/video-knowledge/internal/summarizer"
)

// Process orchestrates the entire video processing pipeline
func (p *implProcessor) Process(ctx context.Context, videoPath string) error {
	startTime := time.Now()
	runID := uuid.NewString()[:8]
	name := extractor.BaseName(videoPath)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "[run %s] Starting video processing: %s", runID, videoPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Extract transcript and frame texts
	ex, err := p.extractor.Extract(ctx, videoPath, p.opts.Force)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	// Step 2: Drop repeated frame texts
	unique := frametext.Dedup(ex.FrameTexts)
	p.logger.Info(ctx, "[run %s] OCR: %d frames, %d unique texts", runID, len(ex.FrameTexts), len(unique))

	// Step 3: Summarize and index
	in := summarizer.Input{
		OCRText:        frametext.Join(unique),
		TranscriptText: ex.Transcript,
	}
	if _, err := p.Summarize(ctx, name, in); err != nil {
		return err
	}

	// Step 4: Move original video to archived folder
	if p.opts.Archive {
		if err := p.moveToArchived(ctx, videoPath); err != nil {
			p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
		}
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "[run %s] Processing completed successfully!", runID)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime).Round(time.Second))
	p.logger.Info(ctx, "========================================")

	return nil
}

// Summarize runs the summarizer for name unless both result files already
// exist, then indexes the texts.
func (p *implProcessor) Summarize(ctx context.Context, name string, in summarizer.Input) (*summarizer.Result, error) {
	targets := p.Targets(name)

	var res *summarizer.Result
	if !p.opts.Force && fileExists(targets.SummaryPath) && fileExists(targets.DocumentationPath) {
		p.logger.Info(ctx, "Summary and full documentation already exist, skipping summarization")
		res = p.loadResult(ctx, targets, in)
	} else {
		var err error
		res, err = p.summarizer.Run(ctx, in, targets)
		if err != nil {
			return nil, fmt.Errorf("summarize: %w", err)
		}
	}

	if err := p.buildIndex(ctx, name, res); err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}

	return res, nil
}

// Targets returns the result file paths for a video name.
func (p *implProcessor) Targets(name string) summarizer.Targets {
	ext := "." + p.cfg.Output.Format
	return summarizer.Targets{
		SummaryPath:       filepath.Join(p.cfg.Paths.Output, name+"_summary"+ext),
		DocumentationPath: filepath.Join(p.cfg.Paths.Output, name+"_full_doc"+ext),
	}
}

// loadResult rebuilds a Result from persisted markdown. Docx output cannot be
// read back, so only the inputs are filled in that case and the
// documentation stays out of the index.
func (p *implProcessor) loadResult(ctx context.Context, targets summarizer.Targets, in summarizer.Input) *summarizer.Result {
	res := &summarizer.Result{OCRText: in.OCRText, TranscriptText: in.TranscriptText}
	if p.cfg.Output.Format != config.FormatMarkdown {
		p.logger.Warn(ctx, "Existing %s results cannot be read back; documentation will not be indexed (use --force to regenerate): %s",
			p.cfg.Output.Format, targets.DocumentationPath)
		return res
	}
	if data, err := os.ReadFile(targets.SummaryPath); err == nil {
		res.Summary = string(data)
	}
	if data, err := os.ReadFile(targets.DocumentationPath); err == nil {
		res.FullDocumentation = string(data)
	}
	return res
}

func (p *implProcessor) buildIndex(ctx context.Context, name string, res *summarizer.Result) error {
	if p.indexer == nil {
		return nil
	}

	if !p.opts.Force {
		exists, err := p.indexer.Has(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			p.logger.Info(ctx, "Vector index already exists for %s, skipping", name)
			return nil
		}
	}

	var docs []index.Document
	for _, d := range []index.Document{
		{Source: "ocr", Text: res.OCRText},
		{Source: "transcript", Text: res.TranscriptText},
		{Source: "documentation", Text: res.FullDocumentation},
	} {
		if d.Text != "" {
			docs = append(docs, d)
		}
	}

	if len(docs) == 0 {
		p.logger.Warn(ctx, "No text to index for %s", name)
		return nil
	}

	_, err := p.indexer.Build(ctx, name, docs)
	return err
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
