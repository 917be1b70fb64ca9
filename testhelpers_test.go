package pdfgenie

import (
	"context"
	"errors"
)

// fakeEmbedding returns deterministic vectors and counts calls.
// Embed this behavior in tests that assert collaborator usage.
type fakeEmbedding struct {
	calls int
	fail  bool
}

func (f *fakeEmbedding) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("embedding backend down")
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t)), 1, 0}
	}
	return out, nil
}

func (f *fakeEmbedding) Dimensions() int { return 3 }
func (f *fakeEmbedding) Name() string    { return "fake-embedding" }

// fakeStore records stored documents and serves searches from them in
// insertion order with descending synthetic scores.
type fakeStore struct {
	docs      []Document
	chunks    []Chunk
	searches  int
	lastTopK  int
	failStore bool
}

func (s *fakeStore) StoreDocument(_ context.Context, doc Document, chunks []Chunk) error {
	if s.failStore {
		return errors.New("store unavailable")
	}
	s.docs = append(s.docs, doc)
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func (s *fakeStore) SearchChunks(_ context.Context, _ []float32, topK int) ([]ScoredChunk, error) {
	s.searches++
	s.lastTopK = topK
	n := topK
	if n > len(s.chunks) {
		n = len(s.chunks)
	}
	out := make([]ScoredChunk, n)
	for i := 0; i < n; i++ {
		out[i] = ScoredChunk{Chunk: s.chunks[i], Score: 1 - float32(i)*0.05}
	}
	return out, nil
}

func (s *fakeStore) CountChunks(_ context.Context) (int, error) { return len(s.chunks), nil }
func (s *fakeStore) Init(_ context.Context) error               { return nil }
func (s *fakeStore) Close() error                               { return nil }

// fakeProvider replies with a canned answer and records received messages.
type fakeProvider struct {
	reply string
	fail  bool
	calls int
	msgs  []ChatMessage
}

func (p *fakeProvider) Chat(_ context.Context, req ChatRequest) (ChatResponse, error) {
	p.calls++
	p.msgs = append(p.msgs, req.Messages...)
	if p.fail {
		return ChatResponse{}, &ErrLLM{Provider: p.Name(), Message: "model overloaded"}
	}
	return ChatResponse{Content: p.reply, Usage: Usage{InputTokens: 10, OutputTokens: 5}}, nil
}

func (p *fakeProvider) Name() string { return "fake-llm" }

// fakeRecognizer returns a scripted transcription result.
type fakeRecognizer struct {
	text    string
	err     error
	gotMIME string
}

func (r *fakeRecognizer) Transcribe(_ context.Context, _ []byte, mimeType string) (string, error) {
	r.gotMIME = mimeType
	if r.err != nil {
		return "", r.err
	}
	return r.text, nil
}

func (r *fakeRecognizer) Name() string { return "fake-recognizer" }

// fakeSource supplies a canned utterance.
type fakeSource struct {
	audio []byte
	mime  string
	err   error
}

func (s *fakeSource) Record(_ context.Context) ([]byte, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.audio, s.mime, nil
}

// memLicenseStore keeps the license record in memory.
type memLicenseStore struct {
	rec     LicenseRecord
	ok      bool
	loadErr error
	saveErr error
}

func (s *memLicenseStore) Load() (LicenseRecord, bool, error) {
	if s.loadErr != nil {
		return LicenseRecord{}, false, s.loadErr
	}
	return s.rec, s.ok, nil
}

func (s *memLicenseStore) Save(rec LicenseRecord) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.rec = rec
	s.ok = true
	return nil
}

// readySession builds a session already in StateReady over the given fakes.
func readySession(t interface{ Fatalf(string, ...any) }, name string, emb *fakeEmbedding, store *fakeStore) *Session {
	ls := &memLicenseStore{}
	sess := NewSession(NewGate(ls))
	if err := sess.Activate("valid-key"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if name != "" {
		if err := sess.SetUserName(name); err != nil {
			t.Fatalf("SetUserName: %v", err)
		}
	} else {
		if err := sess.SkipIdentity(); err != nil {
			t.Fatalf("SkipIdentity: %v", err)
		}
	}
	b := NewBuilder(emb, store)
	uploads := []Upload{{Name: "notes.txt", Content: []byte("The sky is blue.\nGrass is green.")}}
	if _, err := sess.BuildKnowledgeBase(context.Background(), b, uploads); err != nil {
		t.Fatalf("BuildKnowledgeBase: %v", err)
	}
	return sess
}
