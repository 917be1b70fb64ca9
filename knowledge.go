package pdfgenie

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ravandi/pdfgenie/ingest"
)

// ExtractPolicy decides what happens when extraction of one document in a
// batch fails.
type ExtractPolicy int

const (
	// PolicyAbort fails the whole build on the first extraction error.
	PolicyAbort ExtractPolicy = iota
	// PolicySkip drops the failing document and indexes the rest.
	PolicySkip
)

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithChunker overrides the text chunker. Default is a LineChunker with a
// 500-character target and 20-character overlap.
func WithChunker(c ingest.Chunker) BuilderOption {
	return func(b *Builder) { b.chunker = c }
}

// WithExtractPolicy sets the per-document extraction failure policy.
// Default is PolicyAbort.
func WithExtractPolicy(p ExtractPolicy) BuilderOption {
	return func(b *Builder) { b.policy = p }
}

// WithBuildTracer sets an optional tracer around the build pipeline.
func WithBuildTracer(t Tracer) BuilderOption {
	return func(b *Builder) { b.tracer = t }
}

// WithBuildLogger sets a structured logger for the builder.
func WithBuildLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// Builder turns uploaded documents into a queryable KnowledgeBase:
// extract text per document, concatenate, chunk, embed, store.
type Builder struct {
	embedding EmbeddingProvider
	store     VectorStore
	chunker   ingest.Chunker
	policy    ExtractPolicy
	tracer    Tracer
	logger    *slog.Logger
}

// NewBuilder creates a Builder over the given embedding provider and store.
func NewBuilder(embedding EmbeddingProvider, store VectorStore, opts ...BuilderOption) *Builder {
	b := &Builder{
		embedding: embedding,
		store:     store,
		chunker:   ingest.NewLineChunker(),
		logger:    slog.New(discardHandler{}),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Build extracts text from every upload, concatenates it, splits it into
// overlapping chunks, embeds each chunk, and stores the (chunk, vector)
// pairs. It returns a handle for querying the resulting index.
func (b *Builder) Build(ctx context.Context, uploads []Upload) (*KnowledgeBase, error) {
	if b.tracer != nil {
		var span Span
		ctx, span = b.tracer.Start(ctx, "knowledge.build", IntAttr("documents", len(uploads)))
		defer span.End()
	}
	if len(uploads) == 0 {
		return nil, fmt.Errorf("build: no documents supplied")
	}

	text, sources, err := b.extractAll(uploads)
	if err != nil {
		return nil, err
	}

	chunks := b.chunker.Chunk(text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("build: no text extracted from %d document(s)", len(uploads))
	}

	vectors, err := b.embedding.Embed(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embed chunks: got %d vectors for %d chunks", len(vectors), len(chunks))
	}

	doc := Document{
		ID:        NewID(),
		Title:     fmt.Sprintf("%d uploaded document(s)", len(sources)),
		Source:    strings.Join(sources, ", "),
		Content:   text,
		CreatedAt: NowUnix(),
	}
	records := make([]Chunk, len(chunks))
	for i, c := range chunks {
		records[i] = Chunk{
			ID:         NewID(),
			DocumentID: doc.ID,
			Content:    c,
			ChunkIndex: i,
			Embedding:  vectors[i],
		}
	}
	if err := b.store.StoreDocument(ctx, doc, records); err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}

	b.logger.Debug("knowledge base built",
		"documents", len(sources), "chunks", len(records), "embedding", b.embedding.Name())

	return &KnowledgeBase{
		id:        NewID(),
		store:     b.store,
		embedding: b.embedding,
	}, nil
}

// extractAll runs extraction per upload and concatenates the results,
// joined with newlines so chunking can split at document boundaries.
// Extracted text is NFC-normalized before chunking.
func (b *Builder) extractAll(uploads []Upload) (string, []string, error) {
	var text strings.Builder
	var sources []string
	for _, u := range uploads {
		extractor := ingest.ExtractorFor(u.Name)
		extracted, err := extractor.Extract(u.Content)
		if err != nil {
			if b.policy == PolicySkip {
				b.logger.Warn("skipping document", "name", u.Name, "err", err)
				continue
			}
			return "", nil, fmt.Errorf("%w: %s: %v", ErrExtraction, u.Name, err)
		}
		if text.Len() > 0 {
			text.WriteByte('\n')
		}
		text.WriteString(norm.NFC.String(extracted))
		sources = append(sources, u.Name)
	}
	return text.String(), sources, nil
}

// KnowledgeBase is the session-owned handle to an in-memory (or backed)
// semantic index over document chunks.
type KnowledgeBase struct {
	id        string
	store     VectorStore
	embedding EmbeddingProvider
}

// ID returns the handle's unique identifier.
func (kb *KnowledgeBase) ID() string { return kb.id }

// Search embeds the query and returns the topK most similar chunks,
// ranked by cosine similarity descending.
func (kb *KnowledgeBase) Search(ctx context.Context, query string, topK int) ([]ScoredChunk, error) {
	vecs, err := kb.embedding.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("embed query: no embedding returned")
	}
	return kb.store.SearchChunks(ctx, vecs[0], topK)
}

// discardHandler is a slog handler that drops everything. Components log
// nothing unless a logger is configured.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
