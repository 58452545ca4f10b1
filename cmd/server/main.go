package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/schemalens/schemalens/internal/adapter/ai"
	"github.com/schemalens/schemalens/internal/adapter/store"
	"github.com/schemalens/schemalens/internal/embedding"
	"github.com/schemalens/schemalens/internal/handler"
	"github.com/schemalens/schemalens/internal/mcp"
	"github.com/schemalens/schemalens/internal/middleware"
	"github.com/schemalens/schemalens/internal/port"
	"github.com/schemalens/schemalens/internal/service"
	"github.com/schemalens/schemalens/pkg/config"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("🚀 Starting SchemaLens AI",
		"port", cfg.Port,
		"dimension", cfg.EmbeddingDimension,
		"embedder", cfg.EmbedderProvider,
		"mcp_enabled", cfg.MCPEnabled,
	)

	// ── Database ─────────────────────────────────────────────────────────
	pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()

	if err := pgStore.EnsureSchema(context.Background(), cfg.EmbeddingDimension); err != nil {
		slog.Error("failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	vectorStore := store.NewVectorStore(pgStore, cfg.EmbeddingDimension)

	// ── Embedding Engine (Strategy Pattern) ──────────────────────────────
	engine, err := embedding.NewEngine(engineConfig(cfg))
	if err != nil {
		slog.Error("invalid embedding configuration", "error", err)
		os.Exit(1)
	}

	// ── Learned embedder (optional) ──────────────────────────────────────
	var learned port.TextEmbedder
	switch cfg.EmbedderProvider {
	case "ollama":
		learned = ai.NewOllamaEmbedder(ai.OllamaConfig{
			BaseURL:   cfg.OllamaEmbedURL,
			Model:     cfg.OllamaEmbedModel,
			Token:     cfg.OllamaEmbedToken,
			Dimension: cfg.EmbeddingDimension,
		})
	case "openai":
		learned = ai.NewOpenAIEmbedder(ai.OpenAIConfig{
			APIKey:    cfg.OpenAIAPIKey,
			BaseURL:   cfg.OpenAIBaseURL,
			Model:     cfg.OpenAIModel,
			Dimension: cfg.EmbeddingDimension,
			Timeout:   30 * time.Second,
		})
	case "none":
		// hash generators only
	default:
		slog.Error("unknown embedder provider", "provider", cfg.EmbedderProvider)
		os.Exit(1)
	}

	// ── Services ─────────────────────────────────────────────────────────
	embeddingService := service.NewEmbeddingService(engine, learned, vectorStore)
	sourceService := service.NewSourceService(pgStore)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	// Audit middleware (logs all requests)
	app.Use(middleware.AuditMiddleware(pgStore))

	// Health check
	app.Get("/api/v1/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"app":     cfg.AppName,
			"version": "1.0.0",
		})
	})

	// ── Protected Routes ─────────────────────────────────────────────────
	apiKey := middleware.APIKeyMiddleware(middleware.APIKeyConfig{Key: cfg.APIKey})
	api := app.Group("/api/v1", apiKey)

	jobTracker := handler.NewJobTracker()

	sourceHandler := handler.NewSourceHandler(sourceService, embeddingService, vectorStore, jobTracker)
	sourceHandler.Register(api)

	embeddingHandler := handler.NewEmbeddingHandler(embeddingService)
	embeddingHandler.Register(api)

	jobsHandler := handler.NewJobsHandler(jobTracker)
	jobsHandler.Register(api)

	auditHandler := handler.NewAuditHandler(pgStore)
	auditHandler.Register(api)

	// ── MCP Server (separate port) ───────────────────────────────────────
	if cfg.MCPEnabled {
		mcpServer := mcp.NewServer(embeddingService, cfg.MCPPort)
		go func() {
			if err := mcpServer.Start(); err != nil {
				slog.Error("MCP server failed", "error", err)
			}
		}()
	}

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// engineConfig maps environment configuration onto the embedding engine's
// config, keeping the engine defaults when nothing is set.
func engineConfig(cfg *config.Config) embedding.Config {
	ec := embedding.DefaultConfig()
	ec.Size = cfg.EmbeddingDimension
	ec.WindowDecay = float32(cfg.WindowDecay)
	ec.RemoveStopWords = cfg.RemoveStopWords
	if len(cfg.GeneratorWeights) > 0 {
		weights := make(map[string]float32, len(cfg.GeneratorWeights))
		for name, w := range cfg.GeneratorWeights {
			weights[name] = float32(w)
		}
		ec.GeneratorWeights = weights
	}
	return ec
}
