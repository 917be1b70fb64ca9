// Package cli implements the interactive terminal frontend for PDFGenie.
//
// The app walks the user through the license gate, an optional name prompt,
// document ingestion, and then a question loop. In the question loop the
// commands :voice <wav-file>, :export <pdf-file>, and :quit are recognized;
// everything else is treated as a question against the knowledge base.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	pdfgenie "github.com/ravandi/pdfgenie"
	"github.com/ravandi/pdfgenie/export"
	"github.com/ravandi/pdfgenie/ingest"
	"github.com/ravandi/pdfgenie/internal/config"
)

// Deps holds the collaborators the app is wired with.
type Deps struct {
	Provider   pdfgenie.Provider
	Embedding  pdfgenie.EmbeddingProvider
	Recognizer pdfgenie.Recognizer
	Store      pdfgenie.VectorStore
	Tracer     pdfgenie.Tracer
	Logger     *slog.Logger
}

// App is the interactive terminal session.
type App struct {
	cfg     *config.Config
	deps    Deps
	session *pdfgenie.Session
	in      *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
}

// New creates an app reading from in and writing to out.
func New(cfg *config.Config, deps Deps, in io.Reader, out io.Writer) *App {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := pdfgenie.NewFileLicenseStore(cfg.License.Dir)
	gate := pdfgenie.NewGate(store)
	return &App{
		cfg:     cfg,
		deps:    deps,
		session: pdfgenie.NewSession(gate),
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
	}
}

// Session exposes the underlying session, mainly for tests.
func (a *App) Session() *pdfgenie.Session { return a.session }

// Run drives the session from license check to the question loop.
func (a *App) Run(ctx context.Context) error {
	if err := a.runLicenseGate(ctx); err != nil {
		return err
	}
	a.applyLicenseKey()
	a.runNamePrompt()
	if err := a.runIngest(ctx); err != nil {
		return err
	}
	return a.runQuestionLoop(ctx)
}

func (a *App) runLicenseGate(ctx context.Context) error {
	for {
		status, err := a.session.CheckLicense()
		if err != nil {
			return fmt.Errorf("license check: %w", err)
		}
		switch status {
		case pdfgenie.StatusValid:
			return nil
		case pdfgenie.StatusExpired:
			fmt.Fprintln(a.out, "Your license key has expired. Please enter a new key.")
		default:
			fmt.Fprintln(a.out, "Welcome to PDFGenie. Please enter your license key.")
		}

		key, ok := a.readLine("license key> ")
		if !ok {
			return io.EOF
		}
		if err := a.session.Activate(key); err != nil {
			if errors.Is(err, pdfgenie.ErrEmptyKey) {
				fmt.Fprintln(a.out, "The key cannot be empty.")
				continue
			}
			return fmt.Errorf("license activation: %w", err)
		}
		fmt.Fprintf(a.out, "License activated. Valid for %d days.\n", pdfgenie.LicenseTermDays)
	}
}

// applyLicenseKey hands the gate's key to every provider built without a
// credential. The license key is the ambient credential for chat,
// embeddings, and speech; a key set explicitly in config wins over it.
func (a *App) applyLicenseKey() {
	key := a.session.Gate().Key()
	if key == "" {
		return
	}
	if a.cfg.LLM.APIKey == "" {
		setAPIKey(a.deps.Provider, key)
	}
	if a.cfg.Embedding.APIKey == "" {
		setAPIKey(a.deps.Embedding, key)
	}
	if a.cfg.Speech.APIKey == "" {
		setAPIKey(a.deps.Recognizer, key)
	}
}

func setAPIKey(dep any, key string) {
	if c, ok := dep.(pdfgenie.APIKeyCarrier); ok {
		c.SetAPIKey(key)
	}
}

func (a *App) runNamePrompt() {
	name, ok := a.readLine("Your name (press Enter to skip)> ")
	if !ok || strings.TrimSpace(name) == "" {
		if err := a.session.SkipIdentity(); err != nil {
			a.logger.Warn("skip identity", "error", err)
		}
		return
	}
	if err := a.session.SetUserName(name); err != nil {
		a.logger.Warn("set user name", "error", err)
		if err := a.session.SkipIdentity(); err != nil {
			a.logger.Warn("skip identity", "error", err)
		}
	}
}

func (a *App) runIngest(ctx context.Context) error {
	fmt.Fprintln(a.out, "Enter document paths, one per line. A blank line ends the list.")
	var uploads []pdfgenie.Upload
	for {
		path, ok := a.readLine("document> ")
		if !ok {
			break
		}
		path = strings.TrimSpace(path)
		if path == "" {
			break
		}
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(a.out, "cannot read %s: %v\n", path, err)
			continue
		}
		uploads = append(uploads, pdfgenie.Upload{Name: filepath.Base(path), Content: content})
	}
	if len(uploads) == 0 {
		return errors.New("no documents provided")
	}

	fmt.Fprintln(a.out, "Building knowledge base...")
	builder := pdfgenie.NewBuilder(a.deps.Embedding, a.deps.Store,
		pdfgenie.WithChunker(a.chunker()),
		pdfgenie.WithExtractPolicy(a.extractPolicy()),
		pdfgenie.WithBuildTracer(a.deps.Tracer),
		pdfgenie.WithBuildLogger(a.logger),
	)
	if _, err := a.session.BuildKnowledgeBase(ctx, builder, uploads); err != nil {
		return fmt.Errorf("knowledge base build: %w", err)
	}
	fmt.Fprintln(a.out, "Ready. Ask a question, or use :voice <wav>, :export <pdf>, :quit.")
	return nil
}

func (a *App) runQuestionLoop(ctx context.Context) error {
	orch := pdfgenie.NewOrchestrator(a.deps.Provider,
		pdfgenie.WithTopK(a.cfg.Retrieval.TopK),
		pdfgenie.WithAskTracer(a.deps.Tracer),
		pdfgenie.WithAskLogger(a.logger),
	)
	var voice *pdfgenie.VoiceInput
	if a.deps.Recognizer != nil {
		voice = pdfgenie.NewVoiceInput(a.deps.Recognizer, pdfgenie.WithVoiceLogger(a.logger))
	}

	for {
		line, ok := a.readLine("> ")
		if !ok {
			return nil
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == ":quit":
			return nil
		case strings.HasPrefix(line, ":voice"):
			a.handleVoice(ctx, orch, voice, strings.TrimSpace(strings.TrimPrefix(line, ":voice")))
		case strings.HasPrefix(line, ":export"):
			a.handleExport(strings.TrimSpace(strings.TrimPrefix(line, ":export")))
		default:
			a.ask(ctx, orch, line)
		}
	}
}

func (a *App) ask(ctx context.Context, orch *pdfgenie.Orchestrator, question string) {
	answer, err := orch.Ask(ctx, a.session, question)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, answer)
}

func (a *App) handleVoice(ctx context.Context, orch *pdfgenie.Orchestrator, voice *pdfgenie.VoiceInput, path string) {
	if voice == nil {
		fmt.Fprintln(a.out, "voice input is not configured")
		return
	}
	if path == "" {
		fmt.Fprintln(a.out, "usage: :voice <wav-file>")
		return
	}
	question, err := voice.CaptureSpokenQuestion(ctx, &pdfgenie.WAVFileSource{Path: path})
	if err != nil {
		if errors.Is(err, pdfgenie.ErrNoSpeech) {
			fmt.Fprintln(a.out, "No speech was recognized. Please try again.")
			return
		}
		if errors.Is(err, pdfgenie.ErrRecognizerUnavailable) {
			fmt.Fprintln(a.out, "The speech service is unavailable. Please type your question.")
			return
		}
		fmt.Fprintf(a.out, "voice input: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "You said: %s\n", question)
	a.ask(ctx, orch, question)
}

func (a *App) handleExport(path string) {
	if path == "" {
		fmt.Fprintln(a.out, "usage: :export <pdf-file>")
		return
	}
	opts := []export.RendererOption{export.WithTitle(a.cfg.Export.Title)}
	if a.cfg.Export.FontSize > 0 {
		opts = append(opts, export.WithFontSize(a.cfg.Export.FontSize))
	}
	renderer := export.NewPDFRenderer(opts...)
	data, err := pdfgenie.Export(a.session.Transcript(), renderer)
	if err != nil {
		if errors.Is(err, pdfgenie.ErrEmptyTranscript) {
			fmt.Fprintln(a.out, "Nothing to export yet.")
			return
		}
		fmt.Fprintf(a.out, "export: %v\n", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(a.out, "export: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Transcript written to %s\n", path)
}

func (a *App) chunker() ingest.Chunker {
	return ingest.NewLineChunker(
		ingest.WithChunkSize(a.cfg.Ingest.ChunkSize),
		ingest.WithChunkOverlap(a.cfg.Ingest.ChunkOverlap),
	)
}

func (a *App) extractPolicy() pdfgenie.ExtractPolicy {
	if a.cfg.Ingest.OnError == "skip" {
		return pdfgenie.PolicySkip
	}
	return pdfgenie.PolicyAbort
}

func (a *App) readLine(prompt string) (string, bool) {
	fmt.Fprint(a.out, prompt)
	if !a.in.Scan() {
		return "", false
	}
	return a.in.Text(), true
}
