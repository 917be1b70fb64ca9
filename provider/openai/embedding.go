package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	pdfgenie "github.com/ravandi/pdfgenie"
)

// Embedding implements pdfgenie.EmbeddingProvider over the embeddings endpoint.
type Embedding struct {
	apiKey  string
	model   string
	baseURL string
	dims    int
	client  *http.Client
	name    string
}

var (
	_ pdfgenie.EmbeddingProvider = (*Embedding)(nil)
	_ pdfgenie.APIKeyCarrier     = (*Embedding)(nil)
)

// EmbeddingOption configures an Embedding provider.
type EmbeddingOption func(*Embedding)

// WithEmbeddingName sets the name returned by Name() (default "openai").
func WithEmbeddingName(name string) EmbeddingOption {
	return func(e *Embedding) { e.name = name }
}

// WithEmbeddingHTTPClient sets a custom HTTP client.
func WithEmbeddingHTTPClient(c *http.Client) EmbeddingOption {
	return func(e *Embedding) { e.client = c }
}

// NewEmbedding creates an OpenAI-compatible embedding provider. dims is
// the vector size of the chosen model; pass "" as baseURL for the OpenAI
// default.
func NewEmbedding(apiKey, model string, dims int, baseURL string, opts ...EmbeddingOption) *Embedding {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	e := &Embedding{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		dims:    dims,
		client:  &http.Client{},
		name:    "openai",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the provider name.
func (e *Embedding) Name() string { return e.name }

// SetAPIKey replaces the bearer credential used for subsequent requests.
func (e *Embedding) SetAPIKey(key string) { e.apiKey = key }

// Dimensions returns the embedding vector size.
func (e *Embedding) Dimensions() int { return e.dims }

// Embed returns one vector per input text, in input order.
func (e *Embedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(embeddingRequest{Model: e.model, Input: texts})
	if err != nil {
		return nil, &pdfgenie.ErrLLM{Provider: e.name, Message: fmt.Sprintf("marshal request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, &pdfgenie.ErrLLM{Provider: e.name, Message: fmt.Sprintf("create request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, &pdfgenie.ErrLLM{Provider: e.name, Message: fmt.Sprintf("send request: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpErr(resp)
	}

	var parsed embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &pdfgenie.ErrLLM{Provider: e.name, Message: fmt.Sprintf("decode response: %v", err)}
	}
	if len(parsed.Data) != len(texts) {
		return nil, &pdfgenie.ErrLLM{Provider: e.name, Message: fmt.Sprintf("got %d embeddings for %d inputs", len(parsed.Data), len(texts))}
	}

	// The API may return data out of order; place each vector by index.
	vectors := make([][]float32, len(texts))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, &pdfgenie.ErrLLM{Provider: e.name, Message: fmt.Sprintf("embedding index %d out of range", d.Index)}
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// --- wire types ---

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Usage *usage `json:"usage,omitempty"`
}
