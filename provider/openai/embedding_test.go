package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pdfgenie "github.com/ravandi/pdfgenie"
)

func TestEmbed(t *testing.T) {
	var gotReq embeddingRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("path = %q, want /embeddings", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"data": [
			{"index": 0, "embedding": [0.1, 0.2]},
			{"index": 1, "embedding": [0.3, 0.4]}
		]}`))
	}))
	defer server.Close()

	e := NewEmbedding("sk", "text-embedding-3-small", 2, server.URL)
	vecs, err := e.Embed(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("len = %d, want 2", len(vecs))
	}
	if vecs[0][0] != 0.1 || vecs[1][1] != 0.4 {
		t.Errorf("vecs = %v", vecs)
	}
	if gotReq.Model != "text-embedding-3-small" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Input) != 2 || gotReq.Input[0] != "first" {
		t.Errorf("input = %v", gotReq.Input)
	}
}

func TestEmbedPlacesVectorsByIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Out-of-order response data.
		w.Write([]byte(`{"data": [
			{"index": 1, "embedding": [2.0]},
			{"index": 0, "embedding": [1.0]}
		]}`))
	}))
	defer server.Close()

	e := NewEmbedding("sk", "m", 1, server.URL)
	vecs, err := e.Embed(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if vecs[0][0] != 1.0 || vecs[1][0] != 2.0 {
		t.Errorf("vecs = %v, want input order restored", vecs)
	}
}

func TestEmbedCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"index": 0, "embedding": [1.0]}]}`))
	}))
	defer server.Close()

	e := NewEmbedding("sk", "m", 1, server.URL)
	_, err := e.Embed(context.Background(), []string{"a", "b"})
	var llmErr *pdfgenie.ErrLLM
	if !errors.As(err, &llmErr) {
		t.Fatalf("err = %v, want ErrLLM", err)
	}
}

func TestEmbedEmptyInput(t *testing.T) {
	e := NewEmbedding("sk", "m", 1, "http://unreachable.invalid")
	vecs, err := e.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if vecs != nil {
		t.Errorf("vecs = %v, want nil without a request", vecs)
	}
}

func TestEmbedHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("slow down"))
	}))
	defer server.Close()

	e := NewEmbedding("sk", "m", 1, server.URL)
	_, err := e.Embed(context.Background(), []string{"a"})
	var httpErr *pdfgenie.ErrHTTP
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want ErrHTTP", err)
	}
	if httpErr.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want 429", httpErr.Status)
	}
}

func TestEmbeddingDimensions(t *testing.T) {
	e := NewEmbedding("sk", "m", 1536, "")
	if e.Dimensions() != 1536 {
		t.Errorf("Dimensions = %d, want 1536", e.Dimensions())
	}
}
