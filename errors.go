package pdfgenie

import (
	"errors"
	"fmt"
)

// ErrLLM reports a failure from an LLM or embedding provider.
type ErrLLM struct {
	Provider string
	Message  string
}

func (e *ErrLLM) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// ErrHTTP reports a non-2xx response from a provider API.
type ErrHTTP struct {
	Status int
	Body   string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}

// Sentinel errors. Callers check these with errors.Is.
var (
	// ErrNotReady is returned when an operation requires a session state
	// the session has not reached (asking before the knowledge base is
	// built, identifying before the license gate passed).
	ErrNotReady = errors.New("session not ready")

	// ErrEmptyKey is returned by Gate.Activate for an empty license key.
	ErrEmptyKey = errors.New("license key is empty")

	// ErrEmptyTranscript is returned when exporting a transcript with no messages.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrNoSpeech is returned by a Recognizer when the utterance could not
	// be understood. Recoverable; the session is left unchanged.
	ErrNoSpeech = errors.New("speech not understood")

	// ErrRecognizerUnavailable is returned when the recognition service
	// cannot be reached. Recoverable; the session is left unchanged.
	ErrRecognizerUnavailable = errors.New("recognition service unavailable")

	// ErrExtraction is wrapped around per-document extraction failures so
	// the builder policy can distinguish them from embedding or store errors.
	ErrExtraction = errors.New("document extraction failed")
)
