package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	LLM       LLMConfig       `toml:"llm"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Speech    SpeechConfig    `toml:"speech"`
	License   LicenseConfig   `toml:"license"`
	Ingest    IngestConfig    `toml:"ingest"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Store     StoreConfig     `toml:"store"`
	Export    ExportConfig    `toml:"export"`
	Observer  ObserverConfig  `toml:"observer"`
}

type LLMConfig struct {
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

type EmbeddingConfig struct {
	Model      string `toml:"model"`
	BaseURL    string `toml:"base_url"`
	Dimensions int    `toml:"dimensions"`
	APIKey     string `toml:"api_key"`
}

type SpeechConfig struct {
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

type LicenseConfig struct {
	Dir string `toml:"dir"`
}

type IngestConfig struct {
	ChunkSize    int    `toml:"chunk_size"`
	ChunkOverlap int    `toml:"chunk_overlap"`
	OnError      string `toml:"on_error"` // "abort" or "skip"
}

type RetrievalConfig struct {
	TopK int `toml:"top_k"`
}

type StoreConfig struct {
	Backend     string `toml:"backend"` // "memory", "sqlite", or "postgres"
	Path        string `toml:"path"`
	PostgresDSN string `toml:"postgres_dsn"`
}

type ExportConfig struct {
	Title    string  `toml:"title"`
	FontSize float64 `toml:"font_size"`
}

type ObserverConfig struct {
	Enabled bool                       `toml:"enabled"`
	Pricing map[string]ObserverPricing `toml:"pricing"`
}

type ObserverPricing struct {
	Input  float64 `toml:"input"`
	Output float64 `toml:"output"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	home, _ := os.UserHomeDir()
	if home == "" {
		home = "/tmp"
	}
	return Config{
		LLM:       LLMConfig{Model: "gpt-4o-mini"},
		Embedding: EmbeddingConfig{Model: "text-embedding-3-small", Dimensions: 1536},
		Speech:    SpeechConfig{Model: "whisper-1"},
		License:   LicenseConfig{Dir: filepath.Join(home, ".pdfgenie")},
		Ingest:    IngestConfig{ChunkSize: 500, ChunkOverlap: 20, OnError: "abort"},
		Retrieval: RetrievalConfig{TopK: 4},
		Store:     StoreConfig{Backend: "memory", Path: "pdfgenie.db"},
		Export:    ExportConfig{Title: "Conversation History"},
	}
}

// Load reads config: defaults -> TOML file -> env vars (env wins).
func Load(path string) Config {
	cfg := Default()

	if path == "" {
		path = "pdfgenie.toml"
	}

	if data, err := os.ReadFile(path); err == nil {
		_ = toml.Unmarshal(data, &cfg)
	}

	// Env overrides
	if v := os.Getenv("PDFGENIE_LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("PDFGENIE_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("PDFGENIE_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("PDFGENIE_EMBEDDING_API_KEY"); v != "" {
		cfg.Embedding.APIKey = v
	}
	if v := os.Getenv("PDFGENIE_EMBEDDING_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := os.Getenv("PDFGENIE_SPEECH_API_KEY"); v != "" {
		cfg.Speech.APIKey = v
	}
	if v := os.Getenv("PDFGENIE_LICENSE_DIR"); v != "" {
		cfg.License.Dir = v
	}
	if v := os.Getenv("PDFGENIE_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("PDFGENIE_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("PDFGENIE_POSTGRES_DSN"); v != "" {
		cfg.Store.PostgresDSN = v
	}
	if v := os.Getenv("PDFGENIE_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retrieval.TopK = n
		}
	}
	if os.Getenv("PDFGENIE_OBSERVER_ENABLED") == "true" || os.Getenv("PDFGENIE_OBSERVER_ENABLED") == "1" {
		cfg.Observer.Enabled = true
	}

	// Fallbacks
	if cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = cfg.LLM.APIKey
	}
	if cfg.Embedding.BaseURL == "" {
		cfg.Embedding.BaseURL = cfg.LLM.BaseURL
	}
	if cfg.Speech.APIKey == "" {
		cfg.Speech.APIKey = cfg.LLM.APIKey
	}
	if cfg.Speech.BaseURL == "" {
		cfg.Speech.BaseURL = cfg.LLM.BaseURL
	}

	return cfg
}
