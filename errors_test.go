package pdfgenie

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrLLMMessage(t *testing.T) {
	err := &ErrLLM{Provider: "openai", Message: "model overloaded"}
	if got := err.Error(); got != "openai: model overloaded" {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrHTTPMessage(t *testing.T) {
	err := &ErrHTTP{Status: 429, Body: "rate limited"}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("Error() = %q, want status code", err.Error())
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	cases := []error{ErrNotReady, ErrEmptyKey, ErrEmptyTranscript, ErrNoSpeech, ErrRecognizerUnavailable, ErrExtraction}
	for _, sentinel := range cases {
		wrapped := fmt.Errorf("outer: %w", sentinel)
		if !errors.Is(wrapped, sentinel) {
			t.Errorf("errors.Is failed for %v", sentinel)
		}
	}
}
