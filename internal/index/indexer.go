package index

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Build chunks and embeds docs and replaces the stored index of video.
// It returns the number of chunks stored.
func (i *implIndexer) Build(ctx context.Context, video string, docs []Document) (int, error) {
	start := time.Now()

	var chunks []Chunk
	for _, doc := range docs {
		for pos, text := range SplitText(doc.Text, i.opts.ChunkSize, i.opts.ChunkOverlap) {
			chunks = append(chunks, Chunk{Source: doc.Source, Position: pos, Content: text})
		}
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("nothing to index for %s", video)
	}

	i.logger.Info(ctx, "Embedding %d chunks for %s", len(chunks), video)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.opts.MaxConcurrent)

	for lo := 0; lo < len(chunks); lo += i.opts.BatchSize {
		hi := min(lo+i.opts.BatchSize, len(chunks))
		batch := chunks[lo:hi]

		g.Go(func() error {
			texts := make([]string, len(batch))
			for j, c := range batch {
				texts[j] = c.Content
			}

			vectors, err := i.embedder.Embed(gctx, texts, TaskDocument)
			if err != nil {
				return fmt.Errorf("embed chunks %d-%d: %w", lo, hi, err)
			}
			// each goroutine owns a disjoint slice range
			for j := range batch {
				batch[j].Embedding = vectors[j]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := i.store.Replace(ctx, video, chunks); err != nil {
		return 0, fmt.Errorf("store chunks: %w", err)
	}

	i.logger.Info(ctx, "Indexed %s: %d chunks in %s", video, len(chunks), time.Since(start).Round(time.Millisecond))
	return len(chunks), nil
}

// Search embeds the query and returns the k closest chunks of video.
func (i *implIndexer) Search(ctx context.Context, video, query string, k int) ([]Hit, error) {
	vectors, err := i.embedder.Embed(ctx, []string{query}, TaskQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embed query: no embedding returned")
	}

	hits, err := i.store.Search(ctx, video, vectors[0], k)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return hits, nil
}

// Has reports whether video already has an index.
func (i *implIndexer) Has(ctx context.Context, video string) (bool, error) {
	n, err := i.store.Count(ctx, video)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
