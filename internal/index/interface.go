package index

import "context"

// Indexer builds and queries the per-video retrieval index.
type Indexer interface {
	Build(ctx context.Context, video string, docs []Document) (int, error)
	Search(ctx context.Context, video, query string, k int) ([]Hit, error)
	Has(ctx context.Context, video string) (bool, error)
}

// Embedder turns texts into vectors. Documents and queries use different
// task types.
type Embedder interface {
	Embed(ctx context.Context, texts []string, task TaskType) ([][]float32, error)
}

// Store persists chunk embeddings and answers nearest-neighbour queries.
type Store interface {
	Replace(ctx context.Context, video string, chunks []Chunk) error
	Search(ctx context.Context, video string, embedding []float32, k int) ([]Hit, error)
	Count(ctx context.Context, video string) (int, error)
}

type TaskType string

const (
	TaskDocument TaskType = "RETRIEVAL_DOCUMENT"
	TaskQuery    TaskType = "RETRIEVAL_QUERY"
)

// Document is one source text of a video (transcript, OCR text, ...).
type Document struct {
	Source string
	Text   string
}

type Chunk struct {
	Source    string
	Position  int
	Content   string
	Embedding []float32
}

type Hit struct {
	Source     string
	Position   int
	Content    string
	Similarity float64
}
