// Package openai implements the pdfgenie provider contracts against any
// OpenAI-compatible API: chat completions for answer generation,
// embeddings for indexing, and audio transcriptions for voice questions.
//
// Works with OpenAI, OpenRouter, Groq, Together, Mistral, Ollama, vLLM,
// and any other service exposing the same HTTP surface.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	pdfgenie "github.com/ravandi/pdfgenie"
)

// DefaultBaseURL is the OpenAI API base.
const DefaultBaseURL = "https://api.openai.com/v1"

// Provider implements pdfgenie.Provider over the chat completions endpoint.
type Provider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	name    string
	opts    []Option
}

var (
	_ pdfgenie.Provider      = (*Provider)(nil)
	_ pdfgenie.APIKeyCarrier = (*Provider)(nil)
)

// NewProvider creates an OpenAI-compatible chat provider.
//
// baseURL is the API base (e.g. "https://api.openai.com/v1",
// "http://localhost:11434/v1"); pass "" for the OpenAI default. The
// /chat/completions path is appended automatically.
func NewProvider(apiKey, model, baseURL string, opts ...ProviderOption) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	p := &Provider{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{},
		name:    "openai",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name (default "openai", configurable via WithName).
func (p *Provider) Name() string { return p.name }

// SetAPIKey replaces the bearer credential used for subsequent requests.
// Call before the first Chat; the client is not safe for concurrent re-keying.
func (p *Provider) SetAPIKey(key string) { p.apiKey = key }

// Chat sends a chat completions request and returns the complete response.
func (p *Provider) Chat(ctx context.Context, req pdfgenie.ChatRequest) (pdfgenie.ChatResponse, error) {
	body := chatRequest{Model: p.model}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}
	for _, opt := range p.opts {
		opt(&body)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return pdfgenie.ChatResponse{}, &pdfgenie.ErrLLM{Provider: p.name, Message: fmt.Sprintf("marshal request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return pdfgenie.ChatResponse{}, &pdfgenie.ErrLLM{Provider: p.name, Message: fmt.Sprintf("create request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return pdfgenie.ChatResponse{}, &pdfgenie.ErrLLM{Provider: p.name, Message: fmt.Sprintf("send request: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pdfgenie.ChatResponse{}, httpErr(resp)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return pdfgenie.ChatResponse{}, &pdfgenie.ErrLLM{Provider: p.name, Message: fmt.Sprintf("decode response: %v", err)}
	}
	if len(parsed.Choices) == 0 {
		return pdfgenie.ChatResponse{}, &pdfgenie.ErrLLM{Provider: p.name, Message: "no choices in response"}
	}

	out := pdfgenie.ChatResponse{Content: parsed.Choices[0].Message.Content}
	if parsed.Usage != nil {
		out.Usage = pdfgenie.Usage{
			InputTokens:  parsed.Usage.PromptTokens,
			OutputTokens: parsed.Usage.CompletionTokens,
		}
	}
	return out, nil
}

// httpErr reads the response body and returns an ErrHTTP.
func httpErr(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return &pdfgenie.ErrHTTP{Status: resp.StatusCode, Body: string(body)}
}

// --- wire types ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
	Seed        *int          `json:"seed,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *usage `json:"usage,omitempty"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
