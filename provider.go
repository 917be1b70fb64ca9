package pdfgenie

import "context"

// Provider abstracts the answer-generating LLM backend.
type Provider interface {
	// Chat sends a request and returns a complete response.
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	// Name returns the provider name (e.g. "openai").
	Name() string
}

// EmbeddingProvider abstracts text embedding.
type EmbeddingProvider interface {
	// Embed returns embedding vectors for the given texts, one per input.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Dimensions returns the embedding vector size.
	Dimensions() int
	// Name returns the provider name.
	Name() string
}

// APIKeyCarrier is implemented by providers whose credential can be set
// after construction. The license key activated through the gate is the
// ambient credential for every provider built without one; the frontend
// hands it over via this interface once the gate passes.
type APIKeyCarrier interface {
	SetAPIKey(key string)
}

// Recognizer abstracts speech-to-text recognition.
//
// Transcribe returns ErrNoSpeech when the utterance cannot be understood
// and ErrRecognizerUnavailable when the service cannot be reached. Both
// are recoverable; see VoiceInput.
type Recognizer interface {
	// Transcribe converts recorded audio to text. mimeType identifies the
	// audio container (e.g. "audio/wav").
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	// Name returns the recognizer name.
	Name() string
}
