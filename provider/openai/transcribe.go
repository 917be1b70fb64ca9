package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	pdfgenie "github.com/ravandi/pdfgenie"
)

// Transcriber implements pdfgenie.Recognizer over the audio
// transcriptions endpoint (Whisper-compatible).
//
// Failure mapping follows the voice contract: an unreachable service
// or a 5xx response yields ErrRecognizerUnavailable, and a successful
// response with no recognized text yields ErrNoSpeech. Both are
// recoverable for the session.
type Transcriber struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	name    string
}

var (
	_ pdfgenie.Recognizer    = (*Transcriber)(nil)
	_ pdfgenie.APIKeyCarrier = (*Transcriber)(nil)
)

// TranscriberOption configures a Transcriber.
type TranscriberOption func(*Transcriber)

// WithTranscriberName sets the name returned by Name() (default "openai").
func WithTranscriberName(name string) TranscriberOption {
	return func(t *Transcriber) { t.name = name }
}

// WithTranscriberHTTPClient sets a custom HTTP client.
func WithTranscriberHTTPClient(c *http.Client) TranscriberOption {
	return func(t *Transcriber) { t.client = c }
}

// NewTranscriber creates a Whisper-compatible speech recognizer.
// Pass "" as baseURL for the OpenAI default.
func NewTranscriber(apiKey, model, baseURL string, opts ...TranscriberOption) *Transcriber {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	t := &Transcriber{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{},
		name:    "openai",
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the recognizer name.
func (t *Transcriber) Name() string { return t.name }

// SetAPIKey replaces the bearer credential used for subsequent requests.
func (t *Transcriber) SetAPIKey(key string) { t.apiKey = key }

// Transcribe uploads the recorded audio and returns the recognized text.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", fileNameFor(mimeType))
	if err != nil {
		return "", fmt.Errorf("build form: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("build form: %w", err)
	}
	if err := form.WriteField("model", t.model); err != nil {
		return "", fmt.Errorf("build form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("build form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", form.FormDataContentType())
	if t.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+t.apiKey)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", pdfgenie.ErrRecognizerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return "", fmt.Errorf("%w: http %d", pdfgenie.ErrRecognizerUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", httpErr(resp)
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	text := strings.TrimSpace(parsed.Text)
	if text == "" {
		return "", pdfgenie.ErrNoSpeech
	}
	return text, nil
}

func fileNameFor(mimeType string) string {
	switch mimeType {
	case "audio/mpeg", "audio/mp3":
		return "audio.mp3"
	case "audio/ogg":
		return "audio.ogg"
	case "audio/flac":
		return "audio.flac"
	default:
		return "audio.wav"
	}
}
