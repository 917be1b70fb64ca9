package pdfgenie

import (
	"context"
	"fmt"
)

// State is the position of a session in its interaction lifecycle.
type State int

const (
	// StateAwaitingLicense gates everything: no other operation is legal
	// until the license checks out as valid or a key is activated.
	StateAwaitingLicense State = iota
	// StateAwaitingIdentity waits for the optional user name.
	StateAwaitingIdentity
	// StateAwaitingDocuments waits for uploads and the build request.
	StateAwaitingDocuments
	// StateReady accepts questions.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateAwaitingLicense:
		return "awaiting-license"
	case StateAwaitingIdentity:
		return "awaiting-identity"
	case StateAwaitingDocuments:
		return "awaiting-documents"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session aggregates all per-session state: license validity, the optional
// user identity, the knowledge base handle, and the transcript. A Session
// lives for one interactive run; nothing but the license record survives
// it. Sessions are not safe for concurrent use — the driving surface is
// expected to run one handler at a time.
type Session struct {
	state      State
	gate       *Gate
	userName   string
	kb         *KnowledgeBase
	transcript Transcript
}

// NewSession creates a session at the license gate.
func NewSession(gate *Gate) *Session {
	return &Session{state: StateAwaitingLicense, gate: gate}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State { return s.state }

// Gate returns the session's license gate.
func (s *Session) Gate() *Gate { return s.gate }

// CheckLicense consults the gate and advances past it when the stored key
// is valid. Absent and expired keys leave the session at the gate; the
// caller surfaces the status as a warning and collects a new key.
func (s *Session) CheckLicense() (Status, error) {
	status, err := s.gate.Check()
	if err != nil {
		return status, err
	}
	if status == StatusValid && s.state == StateAwaitingLicense {
		s.state = StateAwaitingIdentity
	}
	return status, nil
}

// Activate stores a new key via the gate and advances past it. Overwrites
// any expired record.
func (s *Session) Activate(key string) error {
	if err := s.gate.Activate(key); err != nil {
		return err
	}
	if s.state == StateAwaitingLicense {
		s.state = StateAwaitingIdentity
	}
	return nil
}

// SetUserName records the display name used to personalize answers.
// Set at most once per session and never cleared. Only legal while the
// session is awaiting identity.
func (s *Session) SetUserName(name string) error {
	if s.state != StateAwaitingIdentity {
		return fmt.Errorf("%w: set name in state %s", ErrNotReady, s.state)
	}
	s.userName = name
	s.state = StateAwaitingDocuments
	return nil
}

// SkipIdentity advances past the identity prompt without a name.
// Identity is optional; answers are then returned unpersonalized.
func (s *Session) SkipIdentity() error {
	if s.state != StateAwaitingIdentity {
		return fmt.Errorf("%w: skip identity in state %s", ErrNotReady, s.state)
	}
	s.state = StateAwaitingDocuments
	return nil
}

// UserName returns the display name, or "" when none was set.
func (s *Session) UserName() string { return s.userName }

// BuildKnowledgeBase indexes the uploads through the builder and moves the
// session to StateReady. Building happens at most once per session: when a
// knowledge base already exists the existing handle is returned unchanged
// and no collaborator is called. That is deliberate policy, to avoid
// paying for redundant embeddings.
func (s *Session) BuildKnowledgeBase(ctx context.Context, b *Builder, uploads []Upload) (*KnowledgeBase, error) {
	if s.kb != nil {
		return s.kb, nil
	}
	if s.state != StateAwaitingDocuments {
		return nil, fmt.Errorf("%w: build in state %s", ErrNotReady, s.state)
	}
	kb, err := b.Build(ctx, uploads)
	if err != nil {
		return nil, err
	}
	s.kb = kb
	s.state = StateReady
	return kb, nil
}

// KnowledgeBase returns the session's index handle, or nil before a build.
func (s *Session) KnowledgeBase() *KnowledgeBase { return s.kb }

// Transcript returns the session's conversation log.
func (s *Session) Transcript() *Transcript { return &s.transcript }
