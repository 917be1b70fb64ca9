package pdfgenie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// AudioSource supplies one recorded utterance. Capture details — device
// access, ambient-noise calibration, utterance-end detection — belong to
// the source implementation.
type AudioSource interface {
	Record(ctx context.Context) (audio []byte, mimeType string, err error)
}

// WAVFileSource reads a pre-recorded WAV utterance from disk.
type WAVFileSource struct {
	Path string
}

var _ AudioSource = (*WAVFileSource)(nil)

func (s *WAVFileSource) Record(_ context.Context) ([]byte, string, error) {
	audio, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, "", fmt.Errorf("read recording: %w", err)
	}
	return audio, "audio/wav", nil
}

// VoiceInput converts a spoken utterance into question text.
type VoiceInput struct {
	recognizer Recognizer
	logger     *slog.Logger
}

// VoiceOption configures a VoiceInput.
type VoiceOption func(*VoiceInput)

// WithVoiceLogger sets a structured logger for the voice adapter.
func WithVoiceLogger(l *slog.Logger) VoiceOption {
	return func(v *VoiceInput) { v.logger = l }
}

// NewVoiceInput creates a VoiceInput over the given recognizer.
func NewVoiceInput(recognizer Recognizer, opts ...VoiceOption) *VoiceInput {
	v := &VoiceInput{recognizer: recognizer, logger: slog.New(discardHandler{})}
	for _, o := range opts {
		o(v)
	}
	return v
}

// CaptureSpokenQuestion records one utterance from source and returns the
// recognized text. When the utterance cannot be understood (ErrNoSpeech)
// or the recognition service cannot be reached (ErrRecognizerUnavailable),
// it returns "" together with that sentinel; both are recoverable and
// leave the session untouched. Any other failure is returned as-is.
func (v *VoiceInput) CaptureSpokenQuestion(ctx context.Context, source AudioSource) (string, error) {
	audio, mimeType, err := source.Record(ctx)
	if err != nil {
		return "", err
	}
	text, err := v.recognizer.Transcribe(ctx, audio, mimeType)
	if err != nil {
		if errors.Is(err, ErrNoSpeech) || errors.Is(err, ErrRecognizerUnavailable) {
			v.logger.Warn("voice capture failed", "err", err)
			return "", err
		}
		return "", fmt.Errorf("transcribe: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoSpeech
	}
	v.logger.Debug("voice question recognized", "recognizer", v.recognizer.Name(), "chars", len(text))
	return text, nil
}
