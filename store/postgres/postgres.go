// Package postgres implements pdfgenie.VectorStore using PostgreSQL with
// pgvector for native vector similarity search.
//
// The Store accepts an externally-owned *pgxpool.Pool via constructor
// injection. The caller creates and closes the pool; Close here is a no-op
// on the pool itself.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	pdfgenie "github.com/ravandi/pdfgenie"
)

// Store implements pdfgenie.VectorStore backed by PostgreSQL with pgvector.
// Vector search uses HNSW indexes with cosine distance.
type Store struct {
	pool *pgxpool.Pool
	cfg  pgConfig
}

// pgConfig holds store configuration set via Option functions.
type pgConfig struct {
	embeddingDimension int // 0 = untyped vector column
	hnswM              int // 0 = pgvector default (16)
	hnswEFConstruction int // 0 = pgvector default (64)
}

// Option configures a PostgreSQL Store.
type Option func(*pgConfig)

// WithEmbeddingDimension sets the vector column dimension (e.g. 1536).
// When set, CREATE TABLE uses vector(N) instead of untyped vector,
// catching dimension mismatches at insert time. Only affects new table
// creation.
func WithEmbeddingDimension(dim int) Option {
	return func(c *pgConfig) { c.embeddingDimension = dim }
}

// WithHNSWM sets the HNSW m parameter (max connections per node).
// Higher values improve recall at the cost of memory.
func WithHNSWM(m int) Option {
	return func(c *pgConfig) { c.hnswM = m }
}

// WithEFConstruction sets the HNSW ef_construction parameter (build-time
// candidate list size).
func WithEFConstruction(ef int) Option {
	return func(c *pgConfig) { c.hnswEFConstruction = ef }
}

var _ pdfgenie.VectorStore = (*Store)(nil)

// New creates a Store using an existing pgxpool.Pool.
// The caller owns the pool and is responsible for closing it.
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	var cfg pgConfig
	for _, o := range opts {
		o(&cfg)
	}
	return &Store{pool: pool, cfg: cfg}
}

// vectorType returns "vector" or "vector(N)" depending on config.
func (s *Store) vectorType() string {
	if s.cfg.embeddingDimension > 0 {
		return fmt.Sprintf("vector(%d)", s.cfg.embeddingDimension)
	}
	return "vector"
}

// hnswWithClause returns the WITH (...) clause for HNSW index creation,
// or an empty string if no tuning params are set.
func (s *Store) hnswWithClause() string {
	var parts []string
	if s.cfg.hnswM > 0 {
		parts = append(parts, fmt.Sprintf("m = %d", s.cfg.hnswM))
	}
	if s.cfg.hnswEFConstruction > 0 {
		parts = append(parts, fmt.Sprintf("ef_construction = %d", s.cfg.hnswEFConstruction))
	}
	if len(parts) == 0 {
		return ""
	}
	return " WITH (" + strings.Join(parts, ", ") + ")"
}

// Init creates the pgvector extension, tables, and indexes.
// Safe to call multiple times (all statements are idempotent).
func (s *Store) Init(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,

		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			source TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			chunk_index INTEGER NOT NULL,
			embedding %s
		)`, s.vectorType()),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS chunks_embedding_idx
			ON chunks USING hnsw (embedding vector_cosine_ops)%s`, s.hnswWithClause()),
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: init: %w", err)
		}
	}
	return nil
}

// Close is a no-op; the caller owns the pool.
func (s *Store) Close() error { return nil }

// StoreDocument persists a document and its chunks in one transaction.
func (s *Store) StoreDocument(ctx context.Context, doc pdfgenie.Document, chunks []pdfgenie.Chunk) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx,
		`INSERT INTO documents (id, title, source, content, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
		   title = EXCLUDED.title,
		   source = EXCLUDED.source,
		   content = EXCLUDED.content,
		   created_at = EXCLUDED.created_at`,
		doc.ID, doc.Title, doc.Source, doc.Content, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: insert document: %w", err)
	}

	for _, chunk := range chunks {
		if len(chunk.Embedding) > 0 {
			_, err = tx.Exec(ctx,
				`INSERT INTO chunks (id, document_id, content, chunk_index, embedding)
				 VALUES ($1, $2, $3, $4, $5::vector)
				 ON CONFLICT (id) DO UPDATE SET
				   document_id = EXCLUDED.document_id,
				   content = EXCLUDED.content,
				   chunk_index = EXCLUDED.chunk_index,
				   embedding = EXCLUDED.embedding`,
				chunk.ID, chunk.DocumentID, chunk.Content, chunk.ChunkIndex, serializeEmbedding(chunk.Embedding))
		} else {
			_, err = tx.Exec(ctx,
				`INSERT INTO chunks (id, document_id, content, chunk_index, embedding)
				 VALUES ($1, $2, $3, $4, NULL)
				 ON CONFLICT (id) DO UPDATE SET
				   document_id = EXCLUDED.document_id,
				   content = EXCLUDED.content,
				   chunk_index = EXCLUDED.chunk_index,
				   embedding = NULL`,
				chunk.ID, chunk.DocumentID, chunk.Content, chunk.ChunkIndex)
		}
		if err != nil {
			return fmt.Errorf("postgres: insert chunk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// SearchChunks returns the topK chunks nearest to the query embedding by
// cosine distance, scored as 1 - distance.
func (s *Store) SearchChunks(ctx context.Context, embedding []float32, topK int) ([]pdfgenie.ScoredChunk, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, document_id, content, chunk_index,
		        1 - (embedding <=> $1::vector) AS score
		 FROM chunks
		 WHERE embedding IS NOT NULL
		 ORDER BY embedding <=> $1::vector
		 LIMIT $2`,
		serializeEmbedding(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("postgres: search chunks: %w", err)
	}
	defer rows.Close()

	var results []pdfgenie.ScoredChunk
	for rows.Next() {
		var c pdfgenie.Chunk
		var score float32
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.Content, &c.ChunkIndex, &score); err != nil {
			return nil, fmt.Errorf("postgres: scan chunk: %w", err)
		}
		results = append(results, pdfgenie.ScoredChunk{Chunk: c, Score: score})
	}
	return results, rows.Err()
}

// CountChunks reports how many chunks the store holds.
func (s *Store) CountChunks(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count chunks: %w", err)
	}
	return n, nil
}

// serializeEmbedding converts []float32 to a pgvector text literal
// ("[0.1,0.2,...]"), which happens to match the JSON array encoding.
func serializeEmbedding(embedding []float32) string {
	data, _ := json.Marshal(embedding)
	return string(data)
}
