package main

import (
	"database/sql"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"movie-chat-service/internal/ai"
	"movie-chat-service/internal/catalog"
	"movie-chat-service/internal/config"
	"movie-chat-service/internal/database"
	"movie-chat-service/internal/handler"
	"movie-chat-service/internal/intent"
	"movie-chat-service/internal/service"
	"movie-chat-service/internal/session"
	"movie-chat-service/internal/tracker"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL (required for the postgres catalog source,
	// otherwise the service runs without interaction tracking)
	var db *sql.DB
	db, err = database.NewPostgres(cfg.DB)
	if err != nil {
		if cfg.Catalog.Source == "postgres" {
			slog.Error("failed to connect to PostgreSQL", "error", err)
			os.Exit(1)
		}
		slog.Warn("PostgreSQL unavailable, interaction tracking disabled", "error", err)
		db = nil
	}
	if db != nil {
		defer db.Close()
	}

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, using in-memory session history", "error", err)
	}

	// Load the catalog once; it is read-only from here on
	movies, err := catalog.Load(cfg.Catalog, db)
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	if len(movies) == 0 {
		slog.Warn("catalog is empty, chat responses will have no movies")
	}

	// External AI collaborators (both optional)
	var semantic intent.SemanticSearcher
	if cfg.AI.SemanticSearchURL != "" {
		semantic = ai.NewSemanticClient(cfg.AI.SemanticSearchURL, cfg.AI.APIKey)
	} else {
		slog.Info("semantic search not configured, keyword rules only")
	}
	var generator intent.TextGenerator
	if cfg.AI.APIKey != "" {
		generator = ai.NewGenerativeClient(cfg.AI.GenerativeURL, cfg.AI.APIKey, cfg.AI.Model)
	} else {
		slog.Info("generative text not configured, using fixed fallback messages")
	}

	// Initialize layers
	trk := tracker.New(db, rdb)
	sessions := session.NewStore(rdb, time.Duration(cfg.Session.TTLMinutes)*time.Minute, cfg.Session.MaxHistory)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	router := intent.NewRouter(semantic, trk, generator, rng)
	svc := service.NewChatService(movies, router, sessions, trk)
	h := handler.NewChatHandler(svc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Chat Service",
		ServerHeader: "Movie-Chat-Service",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// API routes
	api := app.Group("/api/v1")
	api.Get("/health", h.Health)
	api.Get("/welcome", h.Welcome)
	api.Post("/chat", h.Chat)
	api.Get("/movies", h.ListMovies)
	api.Post("/interactions", h.RecordInteraction)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down movie chat service...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting movie chat service", "addr", addr, "catalog_size", len(movies))
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
