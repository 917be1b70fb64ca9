package observer

import (
	"context"

	pdfgenie "github.com/ravandi/pdfgenie"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ObservedStore wraps a pdfgenie.VectorStore, counting documents ingested
// and chunks stored.
type ObservedStore struct {
	inner pdfgenie.VectorStore
	inst  *Instruments
}

// WrapStore returns an instrumented vector store.
func WrapStore(inner pdfgenie.VectorStore, inst *Instruments) *ObservedStore {
	return &ObservedStore{inner: inner, inst: inst}
}

func (o *ObservedStore) StoreDocument(ctx context.Context, doc pdfgenie.Document, chunks []pdfgenie.Chunk) error {
	ctx, span := o.inst.Tracer.Start(ctx, "store.document", trace.WithAttributes(
		AttrDocumentSource.String(doc.Source),
		AttrChunkCount.Int(len(chunks)),
	))
	defer span.End()

	if err := o.inner.StoreDocument(ctx, doc, chunks); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	o.inst.DocumentsIngested.Add(ctx, 1)
	o.inst.ChunksStored.Add(ctx, int64(len(chunks)))
	return nil
}

func (o *ObservedStore) SearchChunks(ctx context.Context, embedding []float32, topK int) ([]pdfgenie.ScoredChunk, error) {
	return o.inner.SearchChunks(ctx, embedding, topK)
}

func (o *ObservedStore) CountChunks(ctx context.Context) (int, error) {
	return o.inner.CountChunks(ctx)
}

func (o *ObservedStore) Init(ctx context.Context) error { return o.inner.Init(ctx) }
func (o *ObservedStore) Close() error                   { return o.inner.Close() }

var _ pdfgenie.VectorStore = (*ObservedStore)(nil)
