package pdfgenie

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestBuildStoresOneChunkPerVector(t *testing.T) {
	emb := &fakeEmbedding{}
	store := &fakeStore{}
	b := NewBuilder(emb, store)

	uploads := []Upload{
		{Name: "a.txt", Content: []byte("First document line.\nSecond line.")},
		{Name: "b.txt", Content: []byte("Another document entirely.")},
	}
	kb, err := b.Build(context.Background(), uploads)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if kb == nil {
		t.Fatal("Build returned nil handle")
	}
	if len(store.docs) != 1 {
		t.Fatalf("stored %d documents, want 1 batch document", len(store.docs))
	}
	if len(store.chunks) == 0 {
		t.Fatal("no chunks stored")
	}
	for i, c := range store.chunks {
		if c.ChunkIndex != i {
			t.Errorf("chunks[%d].ChunkIndex = %d", i, c.ChunkIndex)
		}
		if len(c.Embedding) != 3 {
			t.Errorf("chunks[%d] embedding dim = %d, want 3", i, len(c.Embedding))
		}
		if c.DocumentID != store.docs[0].ID {
			t.Errorf("chunks[%d].DocumentID = %q, want %q", i, c.DocumentID, store.docs[0].ID)
		}
	}
	if !strings.Contains(store.docs[0].Source, "a.txt") || !strings.Contains(store.docs[0].Source, "b.txt") {
		t.Errorf("Source = %q, want both upload names", store.docs[0].Source)
	}
}

func TestBuildConcatenatesDocuments(t *testing.T) {
	emb := &fakeEmbedding{}
	store := &fakeStore{}
	b := NewBuilder(emb, store)

	uploads := []Upload{
		{Name: "a.txt", Content: []byte("alpha")},
		{Name: "b.txt", Content: []byte("beta")},
	}
	if _, err := b.Build(context.Background(), uploads); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := store.docs[0].Content; got != "alpha\nbeta" {
		t.Errorf("Content = %q, want %q", got, "alpha\nbeta")
	}
}

func TestBuildNoUploads(t *testing.T) {
	b := NewBuilder(&fakeEmbedding{}, &fakeStore{})
	if _, err := b.Build(context.Background(), nil); err == nil {
		t.Error("expected error for empty upload batch")
	}
}

func TestBuildNoExtractableText(t *testing.T) {
	b := NewBuilder(&fakeEmbedding{}, &fakeStore{})
	_, err := b.Build(context.Background(), []Upload{{Name: "empty.txt", Content: []byte("   \n  ")}})
	if err == nil {
		t.Error("expected error when nothing was extracted")
	}
}

func TestBuildAbortPolicyFailsOnBadDocument(t *testing.T) {
	emb := &fakeEmbedding{}
	store := &fakeStore{}
	b := NewBuilder(emb, store) // PolicyAbort is the default

	uploads := []Upload{
		{Name: "good.txt", Content: []byte("fine text")},
		{Name: "broken.pdf", Content: []byte("not really a pdf")},
	}
	_, err := b.Build(context.Background(), uploads)
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("Build = %v, want ErrExtraction", err)
	}
	if emb.calls != 0 {
		t.Errorf("embedding called %d times on aborted build", emb.calls)
	}
	if len(store.docs) != 0 {
		t.Error("store written on aborted build")
	}
}

func TestBuildSkipPolicyIndexesTheRest(t *testing.T) {
	emb := &fakeEmbedding{}
	store := &fakeStore{}
	b := NewBuilder(emb, store, WithExtractPolicy(PolicySkip))

	uploads := []Upload{
		{Name: "good.txt", Content: []byte("fine text")},
		{Name: "broken.pdf", Content: []byte("not really a pdf")},
	}
	if _, err := b.Build(context.Background(), uploads); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if store.docs[0].Source != "good.txt" {
		t.Errorf("Source = %q, want only the good document", store.docs[0].Source)
	}
	if store.docs[0].Content != "fine text" {
		t.Errorf("Content = %q, want %q", store.docs[0].Content, "fine text")
	}
}

func TestBuildEmbeddingFailure(t *testing.T) {
	store := &fakeStore{}
	b := NewBuilder(&fakeEmbedding{fail: true}, store)

	_, err := b.Build(context.Background(), []Upload{{Name: "a.txt", Content: []byte("text")}})
	if err == nil {
		t.Fatal("expected embedding error")
	}
	if len(store.docs) != 0 {
		t.Error("store written despite embedding failure")
	}
}

func TestBuildStoreFailure(t *testing.T) {
	b := NewBuilder(&fakeEmbedding{}, &fakeStore{failStore: true})
	if _, err := b.Build(context.Background(), []Upload{{Name: "a.txt", Content: []byte("text")}}); err == nil {
		t.Error("expected store error")
	}
}

func TestSearchEmbedsQueryOnce(t *testing.T) {
	emb := &fakeEmbedding{}
	store := &fakeStore{}
	b := NewBuilder(emb, store)

	kb, err := b.Build(context.Background(), []Upload{{Name: "a.txt", Content: []byte("The sky is blue.")}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	callsAfterBuild := emb.calls

	results, err := kb.Search(context.Background(), "what color is the sky?", 4)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if emb.calls != callsAfterBuild+1 {
		t.Errorf("Search made %d embed calls, want 1", emb.calls-callsAfterBuild)
	}
	if store.searches != 1 {
		t.Errorf("store searched %d times, want 1", store.searches)
	}
	if len(results) == 0 {
		t.Error("no results returned")
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted by score: [%d]=%f > [%d]=%f", i, results[i].Score, i-1, results[i-1].Score)
		}
	}
}
