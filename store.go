package pdfgenie

import "context"

// VectorStore abstracts chunk persistence with similarity search.
type VectorStore interface {
	// StoreDocument persists a document and its embedded chunks.
	StoreDocument(ctx context.Context, doc Document, chunks []Chunk) error
	// SearchChunks returns the topK chunks most similar to the query
	// embedding, sorted by score descending.
	SearchChunks(ctx context.Context, embedding []float32, topK int) ([]ScoredChunk, error)
	// CountChunks reports how many chunks the store holds.
	CountChunks(ctx context.Context) (int, error)

	// --- Lifecycle ---
	Init(ctx context.Context) error
	Close() error
}
