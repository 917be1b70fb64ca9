package openai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	pdfgenie "github.com/ravandi/pdfgenie"
)

func TestTranscribe(t *testing.T) {
	var gotModel, gotFileName string
	var gotAudio []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("path = %q, want /audio/transcriptions", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotModel = r.FormValue("model")
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		gotFileName = header.Filename
		gotAudio, _ = io.ReadAll(file)
		w.Write([]byte(`{"text": "what color is the sky"}`))
	}))
	defer server.Close()

	tr := NewTranscriber("sk", "whisper-1", server.URL)
	text, err := tr.Transcribe(context.Background(), []byte("RIFF-audio-bytes"), "audio/wav")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "what color is the sky" {
		t.Errorf("text = %q", text)
	}
	if gotModel != "whisper-1" {
		t.Errorf("model = %q", gotModel)
	}
	if gotFileName != "audio.wav" {
		t.Errorf("filename = %q, want audio.wav", gotFileName)
	}
	if string(gotAudio) != "RIFF-audio-bytes" {
		t.Errorf("audio = %q", gotAudio)
	}
}

func TestTranscribeEmptyTextIsNoSpeech(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "   "}`))
	}))
	defer server.Close()

	tr := NewTranscriber("sk", "whisper-1", server.URL)
	_, err := tr.Transcribe(context.Background(), []byte("audio"), "audio/wav")
	if !errors.Is(err, pdfgenie.ErrNoSpeech) {
		t.Errorf("err = %v, want ErrNoSpeech", err)
	}
}

func TestTranscribeServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	tr := NewTranscriber("sk", "whisper-1", server.URL)
	_, err := tr.Transcribe(context.Background(), []byte("audio"), "audio/wav")
	if !errors.Is(err, pdfgenie.ErrRecognizerUnavailable) {
		t.Errorf("err = %v, want ErrRecognizerUnavailable", err)
	}
}

func TestTranscribeUnreachableIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	tr := NewTranscriber("sk", "whisper-1", server.URL)
	_, err := tr.Transcribe(context.Background(), []byte("audio"), "audio/wav")
	if !errors.Is(err, pdfgenie.ErrRecognizerUnavailable) {
		t.Errorf("err = %v, want ErrRecognizerUnavailable", err)
	}
}

func TestTranscribeClientErrorIsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("unsupported format"))
	}))
	defer server.Close()

	tr := NewTranscriber("sk", "whisper-1", server.URL)
	_, err := tr.Transcribe(context.Background(), []byte("audio"), "audio/wav")
	var httpErr *pdfgenie.ErrHTTP
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want ErrHTTP", err)
	}
	if errors.Is(err, pdfgenie.ErrRecognizerUnavailable) {
		t.Error("client errors must not map to ErrRecognizerUnavailable")
	}
}

func TestFileNameFor(t *testing.T) {
	cases := map[string]string{
		"audio/wav":  "audio.wav",
		"audio/mpeg": "audio.mp3",
		"audio/mp3":  "audio.mp3",
		"audio/ogg":  "audio.ogg",
		"audio/flac": "audio.flac",
		"":           "audio.wav",
	}
	for mime, want := range cases {
		if got := fileNameFor(mime); got != want {
			t.Errorf("fileNameFor(%q) = %q, want %q", mime, got, want)
		}
	}
}
