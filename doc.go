// Package pdfgenie turns a set of PDF documents into a queryable knowledge
// base and answers natural-language questions about them through an
// LLM provider, keeping an exportable transcript of the conversation.
//
// # Quick Start
//
// Build a session, index documents, and ask:
//
//	gate := pdfgenie.NewGate(pdfgenie.NewFileLicenseStore(dir))
//	provider := openai.NewProvider(gate.Key(), "gpt-4o-mini", baseURL)
//	embedding := openai.NewEmbedding(gate.Key(), "text-embedding-3-small", 1536, baseURL)
//
//	sess := pdfgenie.NewSession(gate)
//	sess.SetUserName("Ada Lovelace")
//
//	builder := pdfgenie.NewBuilder(embedding, memory.New())
//	if _, err := sess.BuildKnowledgeBase(ctx, builder, uploads); err != nil {
//		log.Fatal(err)
//	}
//
//	orch := pdfgenie.NewOrchestrator(provider)
//	answer, err := orch.Ask(ctx, sess, "What is the refund policy?")
//
// # Core Interfaces
//
// The root package defines the contracts that all components implement:
//
//   - [Provider] — LLM backend used for answer generation
//   - [EmbeddingProvider] — text-to-vector embedding
//   - [VectorStore] — chunk persistence with similarity search
//   - [Recognizer] — speech-to-text for voice questions
//   - [LicenseStore] — durable storage for the license record
//   - [Tracer] — optional span tracing around build/ask pipelines
//
// # Included Implementations
//
// Providers: provider/openai (OpenAI-compatible chat, embeddings, and
// audio transcription APIs).
// Storage: store/memory (in-process), store/sqlite (local file),
// store/postgres (shared deployments).
// Export: export (PDF transcript rendering).
// Observability: observer (OTEL-instrumented provider wrappers).
//
// See cmd/pdfgenie for a complete interactive reference application.
package pdfgenie
