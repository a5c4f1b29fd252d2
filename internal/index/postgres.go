package index

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// PostgresStore keeps chunks in Postgres with the pgvector extension.
type PostgresStore struct {
	pool       *pgxpool.Pool
	dimensions int
}

// NewPostgresStore connects to dsn and verifies the connection.
func NewPostgresStore(ctx context.Context, dsn string, dimensions int) (*PostgresStore, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("embedding dimensions must be positive, got %d", dimensions)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool, dimensions: dimensions}, nil
}

// Close closes the database connection
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema creates the vector extension, tables and indexes if missing.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS videos (
            id SERIAL PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            created_at TIMESTAMPTZ NOT NULL,
            indexed_at TIMESTAMPTZ,
            UNIQUE(name)
        );

        CREATE TABLE IF NOT EXISTS chunks (
            id SERIAL PRIMARY KEY,
            video_id INTEGER REFERENCES videos(id) ON DELETE CASCADE,
            source VARCHAR(64) NOT NULL,
            position INTEGER NOT NULL,
            content TEXT NOT NULL,
            embedding vector(%d) NOT NULL,
            created_at TIMESTAMPTZ NOT NULL,
            UNIQUE(video_id, source, position)
        );
    `, s.dimensions))
	if err != nil {
		return fmt.Errorf("failed to create database schema: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
        CREATE INDEX IF NOT EXISTS idx_chunks_video_id ON chunks(video_id);
        CREATE INDEX IF NOT EXISTS idx_chunks_embedding ON chunks USING hnsw (embedding vector_cosine_ops);
    `)
	if err != nil {
		return fmt.Errorf("failed to create database indexes: %w", err)
	}

	return nil
}

// Replace swaps every chunk of video for chunks in one transaction.
func (s *PostgresStore) Replace(ctx context.Context, video string, chunks []Chunk) error {
	for _, c := range chunks {
		if len(c.Embedding) != s.dimensions {
			return fmt.Errorf("chunk %s/%d has %d dimensions, want %d", c.Source, c.Position, len(c.Embedding), s.dimensions)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()

	var videoID int
	err = tx.QueryRow(ctx,
		`INSERT INTO videos (name, created_at, indexed_at) VALUES ($1, $2, $2)
        ON CONFLICT (name) DO UPDATE SET indexed_at = EXCLUDED.indexed_at
        RETURNING id`,
		video, now).Scan(&videoID)
	if err != nil {
		return fmt.Errorf("failed to upsert video entry: %w", err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM chunks WHERE video_id = $1", videoID); err != nil {
		return fmt.Errorf("failed to clear previous chunks: %w", err)
	}

	batch := &pgx.Batch{}
	for _, c := range chunks {
		batch.Queue(
			`INSERT INTO chunks (video_id, source, position, content, embedding, created_at)
            VALUES ($1, $2, $3, $4, $5, $6)`,
			videoID, c.Source, c.Position, c.Content, pgvector.NewVector(c.Embedding), now)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to store chunks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Search returns the k chunks of video closest to embedding by cosine distance.
func (s *PostgresStore) Search(ctx context.Context, video string, embedding []float32, k int) ([]Hit, error) {
	if len(embedding) != s.dimensions {
		return nil, fmt.Errorf("query has %d dimensions, want %d", len(embedding), s.dimensions)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT c.source, c.position, c.content,
        1 - (c.embedding <=> $1) AS similarity
        FROM chunks c
        JOIN videos v ON c.video_id = v.id
        WHERE v.name = $2
        ORDER BY c.embedding <=> $1
        LIMIT $3`,
		pgvector.NewVector(embedding), video, k)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.Source, &h.Position, &h.Content, &h.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan search results: %w", err)
		}
		hits = append(hits, h)
	}

	return hits, rows.Err()
}

// Count returns how many chunks are stored for video.
func (s *PostgresStore) Count(ctx context.Context, video string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(c.id) FROM videos v
        LEFT JOIN chunks c ON c.video_id = v.id
        WHERE v.name = $1
        GROUP BY v.id`,
		video).Scan(&n)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return n, nil
}
