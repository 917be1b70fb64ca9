package pdfgenie

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// DefaultTopK is how many passages are retrieved per question.
const DefaultTopK = 4

// answerSystemPrompt instructs the model how to answer from the
// retrieved context.
const answerSystemPrompt = `Use the following pieces of context to answer the question at the end. If you don't know the answer, just say that you don't know, don't try to make up an answer.`

// answerUserPrompt is the stuff-style template: all retrieved passages
// are stuffed into a single user turn together with the question.
const answerUserPrompt = `%s

Question: %s
Helpful Answer:`

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithTopK sets how many passages are retrieved per question.
func WithTopK(n int) OrchestratorOption {
	return func(o *Orchestrator) { o.topK = n }
}

// WithAskTracer sets an optional tracer around the ask pipeline.
func WithAskTracer(t Tracer) OrchestratorOption {
	return func(o *Orchestrator) { o.tracer = t }
}

// WithAskLogger sets a structured logger for the orchestrator.
func WithAskLogger(l *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) { o.logger = l }
}

// Orchestrator answers questions against a session's knowledge base and
// records the exchange in the session transcript.
type Orchestrator struct {
	provider Provider
	topK     int
	tracer   Tracer
	logger   *slog.Logger
}

// NewOrchestrator creates an Orchestrator using the given chat provider.
func NewOrchestrator(provider Provider, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		provider: provider,
		topK:     DefaultTopK,
		logger:   slog.New(discardHandler{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Ask retrieves the passages most relevant to question, obtains a generated
// answer from the provider, personalizes it with the session's user name if
// one is set, and appends the question/answer pair to the transcript.
//
// The transcript is mutated only after the whole pipeline succeeds, so a
// failed ask leaves the session exactly as it was. Asking before the
// knowledge base is built is an illegal-state error (ErrNotReady).
// Answers are never cached; every call re-queries the index and the provider.
func (o *Orchestrator) Ask(ctx context.Context, sess *Session, question string) (string, error) {
	kb := sess.KnowledgeBase()
	if sess.State() != StateReady || kb == nil {
		return "", fmt.Errorf("%w: ask before knowledge base is built", ErrNotReady)
	}

	if o.tracer != nil {
		var span Span
		ctx, span = o.tracer.Start(ctx, "ask", IntAttr("top_k", o.topK))
		defer span.End()
	}

	passages, err := kb.Search(ctx, question, o.topK)
	if err != nil {
		return "", fmt.Errorf("retrieve passages: %w", err)
	}

	var contextText strings.Builder
	for i, p := range passages {
		if i > 0 {
			contextText.WriteString("\n\n")
		}
		contextText.WriteString(p.Content)
	}

	resp, err := o.provider.Chat(ctx, ChatRequest{
		Messages: []ChatMessage{
			SystemChatMessage(answerSystemPrompt),
			UserChatMessage(fmt.Sprintf(answerUserPrompt, contextText.String(), question)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	answer := strings.TrimSpace(resp.Content)
	if name := sess.UserName(); name != "" {
		answer = fmt.Sprintf("Hello %s, %s", name, answer)
	}

	sess.Transcript().Append(UserMessage(question), BotMessage(answer))

	o.logger.Debug("question answered",
		"provider", o.provider.Name(),
		"passages", len(passages),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens)

	return answer, nil
}
