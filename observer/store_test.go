package observer

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	pdfgenie "github.com/ravandi/pdfgenie"
)

type recordingStore struct {
	docs   int
	chunks int
	fail   bool
}

func (s *recordingStore) StoreDocument(_ context.Context, _ pdfgenie.Document, chunks []pdfgenie.Chunk) error {
	if s.fail {
		return errors.New("disk full")
	}
	s.docs++
	s.chunks += len(chunks)
	return nil
}

func (s *recordingStore) SearchChunks(context.Context, []float32, int) ([]pdfgenie.ScoredChunk, error) {
	return nil, nil
}
func (s *recordingStore) CountChunks(context.Context) (int, error) { return s.chunks, nil }
func (s *recordingStore) Init(context.Context) error               { return nil }
func (s *recordingStore) Close() error                             { return nil }

func testInstruments(t *testing.T) (*Instruments, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	inst, err := newInstruments(nil)
	if err != nil {
		t.Fatalf("newInstruments: %v", err)
	}
	return inst, reader
}

func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect metrics: %v", err)
	}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s data is %T, want Sum[int64]", name, m.Data)
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func TestObservedStoreCountsDocumentsAndChunks(t *testing.T) {
	inst, reader := testInstruments(t)
	inner := &recordingStore{}
	store := WrapStore(inner, inst)
	ctx := context.Background()

	if err := store.StoreDocument(ctx, pdfgenie.Document{Source: "a.pdf"}, make([]pdfgenie.Chunk, 3)); err != nil {
		t.Fatalf("StoreDocument: %v", err)
	}
	if err := store.StoreDocument(ctx, pdfgenie.Document{Source: "b.pdf"}, make([]pdfgenie.Chunk, 2)); err != nil {
		t.Fatalf("StoreDocument: %v", err)
	}

	if inner.docs != 2 || inner.chunks != 5 {
		t.Errorf("inner store got %d docs / %d chunks, want 2 / 5", inner.docs, inner.chunks)
	}
	if got := counterValue(t, reader, "ingest.documents"); got != 2 {
		t.Errorf("ingest.documents = %d, want 2", got)
	}
	if got := counterValue(t, reader, "ingest.chunks"); got != 5 {
		t.Errorf("ingest.chunks = %d, want 5", got)
	}
}

func TestObservedStoreSkipsCountersOnFailure(t *testing.T) {
	inst, reader := testInstruments(t)
	store := WrapStore(&recordingStore{fail: true}, inst)

	err := store.StoreDocument(context.Background(), pdfgenie.Document{}, make([]pdfgenie.Chunk, 4))
	if err == nil {
		t.Fatal("StoreDocument = nil, want error")
	}
	if got := counterValue(t, reader, "ingest.documents"); got != 0 {
		t.Errorf("ingest.documents = %d, want 0", got)
	}
	if got := counterValue(t, reader, "ingest.chunks"); got != 0 {
		t.Errorf("ingest.chunks = %d, want 0", got)
	}
}
