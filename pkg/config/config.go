package config

import (
	"os"
	"strconv"
	"time"
)

// AI provider identifiers.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Server
	Port             string
	AppName          string
	CORSAllowOrigins string

	// AI provider selection
	AIProvider string // gemini | ollama

	// Gemini
	GeminiAPIKey     string
	GeminiChatModel  string
	GeminiEmbedModel string

	// Ollama (local alternative)
	OllamaHost       string
	OllamaChatModel  string
	OllamaEmbedModel string

	// Generation
	MaxTokens int
	AITimeout time.Duration

	// Chunking / retrieval
	ChunkSize    int
	ChunkOverlap int
	AskTopK      int
	SummaryTopK  int

	// Logging
	LogFile  string
	LogLevel string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:             envOrDefault("PORT", "8000"),
		AppName:          envOrDefault("APP_NAME", "Vaultify Security Backend"),
		CORSAllowOrigins: envOrDefault("CORS_ALLOW_ORIGINS", "*"),

		AIProvider: envOrDefault("AI_PROVIDER", ProviderGemini),

		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiChatModel:  envOrDefault("GEMINI_CHAT_MODEL", "gemini-2.0-flash"),
		GeminiEmbedModel: envOrDefault("GEMINI_EMBED_MODEL", "embedding-001"),

		OllamaHost:       envOrDefault("OLLAMA_HOST", "http://localhost:11434"),
		OllamaChatModel:  envOrDefault("OLLAMA_CHAT_MODEL", "qwen3"),
		OllamaEmbedModel: envOrDefault("OLLAMA_EMBED_MODEL", "nomic-embed-text"),

		MaxTokens: envOrDefaultInt("MAX_TOKENS", 512),
		AITimeout: time.Duration(envOrDefaultInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,

		ChunkSize:    envOrDefaultInt("CHUNK_SIZE", 1000),
		ChunkOverlap: envOrDefaultInt("CHUNK_OVERLAP", 150),
		AskTopK:      envOrDefaultInt("ASK_TOP_K", 8),
		SummaryTopK:  envOrDefaultInt("SUMMARY_TOP_K", 10),

		LogFile:  os.Getenv("LOG_FILE"),
		LogLevel: envOrDefault("LOG_LEVEL", "info"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return fallback
}
