package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	pdfgenie "github.com/ravandi/pdfgenie"
	"github.com/ravandi/pdfgenie/internal/cli"
	"github.com/ravandi/pdfgenie/internal/config"
	"github.com/ravandi/pdfgenie/observer"
	"github.com/ravandi/pdfgenie/provider/openai"
	"github.com/ravandi/pdfgenie/store/memory"
	"github.com/ravandi/pdfgenie/store/postgres"
	"github.com/ravandi/pdfgenie/store/sqlite"
)

func main() {
	ctx := context.Background()

	// 1. Load config
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("PDFGENIE_CONFIG"))

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// 2. Create providers. When config carries no API key, the app keys
	// them with the activated license key once the gate passes.
	var chatLLM pdfgenie.Provider = openai.NewProvider(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL)
	var embedding pdfgenie.EmbeddingProvider = openai.NewEmbedding(
		cfg.Embedding.APIKey, cfg.Embedding.Model, cfg.Embedding.Dimensions, cfg.Embedding.BaseURL)
	var recognizer pdfgenie.Recognizer = openai.NewTranscriber(
		cfg.Speech.APIKey, cfg.Speech.Model, cfg.Speech.BaseURL)

	// 3. Create store
	store, err := newStore(ctx, &cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	if err := store.Init(ctx); err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	// 4. Observability (optional)
	var tracer pdfgenie.Tracer
	if cfg.Observer.Enabled {
		pricing := make(map[string]observer.ModelPricing, len(cfg.Observer.Pricing))
		for model, p := range cfg.Observer.Pricing {
			pricing[model] = observer.ModelPricing{InputPerMillion: p.Input, OutputPerMillion: p.Output}
		}
		inst, shutdown, err := observer.Init(ctx, pricing)
		if err != nil {
			log.Fatal(err)
		}
		defer shutdown(ctx)

		store = observer.WrapStore(store, inst)
		chatLLM = observer.WrapProvider(chatLLM, cfg.LLM.Model, inst)
		embedding = observer.WrapEmbedding(embedding, cfg.Embedding.Model, inst)
		recognizer = observer.WrapRecognizer(recognizer, cfg.Speech.Model, inst)
		tracer = observer.NewTracer()
	}

	// 5. Run
	app := cli.New(&cfg, cli.Deps{
		Provider:   chatLLM,
		Embedding:  embedding,
		Recognizer: recognizer,
		Store:      store,
		Tracer:     tracer,
		Logger:     logger,
	}, os.Stdin, os.Stdout)

	if err := app.Run(ctx); err != nil {
		log.Fatal(err)
	}
}

func newStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (pdfgenie.VectorStore, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		return sqlite.New(cfg.Store.Path, sqlite.WithLogger(logger)), nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Store.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return postgres.New(pool, postgres.WithEmbeddingDimension(cfg.Embedding.Dimensions)), nil
	default:
		return memory.New(), nil
	}
}
