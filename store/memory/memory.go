// Package memory implements pdfgenie.VectorStore as an in-process
// brute-force cosine similarity index. This is the default store: the
// knowledge base lives and dies with the session.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	pdfgenie "github.com/ravandi/pdfgenie"
)

// Store holds documents and embedded chunks in memory.
type Store struct {
	mu     sync.RWMutex
	docs   []pdfgenie.Document
	chunks []pdfgenie.Chunk
}

var _ pdfgenie.VectorStore = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store { return &Store{} }

// Init is a no-op for the in-memory store.
func (s *Store) Init(context.Context) error { return nil }

// Close discards all stored data.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = nil
	s.chunks = nil
	return nil
}

// StoreDocument appends the document and its chunks.
func (s *Store) StoreDocument(_ context.Context, doc pdfgenie.Document, chunks []pdfgenie.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
	s.chunks = append(s.chunks, chunks...)
	return nil
}

// SearchChunks scores every stored chunk against the query embedding and
// returns the topK by cosine similarity descending.
func (s *Store) SearchChunks(_ context.Context, embedding []float32, topK int) ([]pdfgenie.ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]pdfgenie.ScoredChunk, 0, len(s.chunks))
	for _, c := range s.chunks {
		if len(c.Embedding) == 0 {
			continue
		}
		results = append(results, pdfgenie.ScoredChunk{
			Chunk: c,
			Score: cosineSimilarity(embedding, c.Embedding),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// CountChunks reports how many chunks the store holds.
func (s *Store) CountChunks(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

// cosineSimilarity computes the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return float32(dot / denom)
}
