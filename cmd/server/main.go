package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/vaultify/backend/internal/adapter/ai"
	"github.com/vaultify/backend/internal/adapter/store"
	"github.com/vaultify/backend/internal/chunk"
	"github.com/vaultify/backend/internal/handler"
	"github.com/vaultify/backend/internal/middleware"
	"github.com/vaultify/backend/internal/port"
	"github.com/vaultify/backend/internal/service"
	"github.com/vaultify/backend/pkg/config"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()
	closeLogs := config.SetupLogger(cfg)
	defer closeLogs()

	slog.Info("starting Vaultify backend",
		"port", cfg.Port,
		"ai_provider", cfg.AIProvider,
	)

	// ── AI provider (optional capability) ────────────────────────────────
	provider := newAIProvider(cfg)
	if provider == nil {
		slog.Warn("AI disabled, queries will use deterministic fallback answers")
	} else {
		slog.Info("AI models initialized", "model", provider.ModelName())
	}

	// ── Stores ───────────────────────────────────────────────────────────
	logStore := store.NewLogStore()
	vectorIndex := store.NewVectorIndex()

	// ── Services ─────────────────────────────────────────────────────────
	ragService := service.NewRAGService(provider, logStore, vectorIndex, service.RAGConfig{
		Chunking: chunk.Config{
			MaxSize: cfg.ChunkSize,
			Overlap: cfg.ChunkOverlap,
		},
		AskTopK:     cfg.AskTopK,
		SummaryTopK: cfg.SummaryTopK,
		Timeout:     cfg.AITimeout,
	})
	logService := service.NewLogService(logStore, ragService)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.Audit())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Split(cfg.CORSAllowOrigins, ","),
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
	}))

	// ── Routes ───────────────────────────────────────────────────────────
	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": cfg.AppName,
			"endpoints": fiber.Map{
				"logs":    "/api/logs",
				"summary": "/api/summary",
				"ask":     "/api/ask",
				"stats":   "/api/stats",
				"health":  "/api/health",
			},
		})
	})

	api := app.Group("/api")

	logHandler := handler.NewLogHandler(logService)
	logHandler.Register(api)

	insightHandler := handler.NewInsightHandler(ragService)
	insightHandler.Register(api)

	api.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":              "healthy",
			"logs_count":          logService.Total(),
			"ai_enabled":          ragService.AIEnabled(),
			"vector_store_active": ragService.IndexActive(),
		})
	})

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// newAIProvider builds the configured backend, or nil when credentials are
// missing or initialization fails. A missing credential must never prevent
// startup; the service degrades to its fallback paths instead.
func newAIProvider(cfg *config.Config) port.AIProvider {
	switch cfg.AIProvider {
	case config.ProviderOllama:
		provider, err := ai.NewOllama(cfg.OllamaHost, cfg.OllamaChatModel, cfg.OllamaEmbedModel, cfg.MaxTokens)
		if err != nil {
			slog.Error("ollama initialization failed", "error", err)
			return nil
		}
		return provider

	case config.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			slog.Warn("GEMINI_API_KEY not set")
			return nil
		}
		provider, err := ai.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiChatModel, cfg.GeminiEmbedModel, cfg.MaxTokens)
		if err != nil {
			slog.Error("gemini initialization failed", "error", err)
			return nil
		}
		return provider

	default:
		slog.Error("unknown AI provider", "provider", cfg.AIProvider)
		return nil
	}
}
