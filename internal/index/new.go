package index

import "github.com/nguyentantai21042004/video-knowledge/internal/logger"

type Options struct {
	ChunkSize     int
	ChunkOverlap  int
	BatchSize     int
	MaxConcurrent int
}

type implIndexer struct {
	embedder Embedder
	store    Store
	logger   logger.Logger
	opts     Options
}

// New creates an Indexer over the given embedder and store.
func New(embedder Embedder, store Store, log logger.Logger, opts Options) Indexer {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 1000
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}
	return &implIndexer{
		embedder: embedder,
		store:    store,
		logger:   log,
		opts:     opts,
	}
}
