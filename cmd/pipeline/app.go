package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/nguyentantai21042004/video-knowledge/internal/config"
	"github.com/nguyentantai21042004/video-knowledge/internal/extractor"
	"github.com/nguyentantai21042004/video-knowledge/internal/index"
	"github.com/nguyentantai21042004/video-knowledge/internal/llm"
	"github.com/nguyentantai21042004/video-knowledge/internal/logger"
	"github.com/nguyentantai21042004/video-knowledge/internal/output"
	"github.com/nguyentantai21042004/video-knowledge/internal/processor"
	"github.com/nguyentantai21042004/video-knowledge/internal/summarizer"
	"github.com/nguyentantai21042004/video-knowledge/pkg/executor"
)

// app holds the wired dependencies shared by the subcommands.
type app struct {
	cfg       *config.Config
	log       logger.Logger
	processor processor.Processor
	indexer   index.Indexer
	store     *index.PostgresStore
}

func newApp(ctx context.Context, opts processor.Options) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Model: %s (%s backend), output format: %s", cfg.GenAI.Model, cfg.GenAI.Backend, cfg.Output.Format)

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	gen, err := llm.FromConfig(ctx, cfg.GenAI, cfg.GenAI.Temperature, log)
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}

	a := &app{cfg: cfg, log: log}
	if cfg.Index.Enabled {
		if err := a.openIndex(ctx); err != nil {
			return nil, err
		}
	}

	ext := extractor.New(cfg.Extraction, cfg.Paths.Work, executor.New(), log)
	sum := summarizer.New(gen, output.New(log), log)
	a.processor = processor.New(cfg, ext, sum, a.indexer, log, opts)

	return a, nil
}

func (a *app) openIndex(ctx context.Context) error {
	var apiKey string
	if len(a.cfg.GenAI.APIKeys) > 0 {
		apiKey = a.cfg.GenAI.APIKeys[0]
	}
	client, err := llm.NewClient(ctx, a.cfg.GenAI, apiKey)
	if err != nil {
		return fmt.Errorf("create embedding client: %w", err)
	}

	store, err := index.NewPostgresStore(ctx, a.cfg.Index.DSN, a.cfg.GenAI.EmbeddingDimensions)
	if err != nil {
		return fmt.Errorf("open vector store: %w", err)
	}
	if err := store.InitSchema(ctx); err != nil {
		store.Close()
		return fmt.Errorf("init vector schema: %w", err)
	}

	a.store = store
	a.indexer = index.New(
		index.NewEmbedder(client, a.cfg.GenAI.EmbeddingModel, a.cfg.GenAI.EmbeddingDimensions),
		store,
		a.log,
		index.Options{
			ChunkSize:     a.cfg.Index.ChunkSize,
			ChunkOverlap:  a.cfg.Index.ChunkOverlap,
			BatchSize:     a.cfg.Index.BatchSize,
			MaxConcurrent: a.cfg.Index.MaxConcurrent,
		},
	)
	a.log.Info(ctx, "Vector index enabled (%s, %d dims)", a.cfg.GenAI.EmbeddingModel, a.cfg.GenAI.EmbeddingDimensions)
	return nil
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Work,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
