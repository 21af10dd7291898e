package main

import (
	"context"
	"log"
	"time"

	"google.golang.org/genai"

	_ "github.com/newsloop/news-api/docs"
	"github.com/newsloop/news-api/internal/api/handlers"
	"github.com/newsloop/news-api/internal/api/routes"
	"github.com/newsloop/news-api/internal/assistant"
	"github.com/newsloop/news-api/internal/config"
	middlewares "github.com/newsloop/news-api/internal/middleware"
	"github.com/newsloop/news-api/internal/observability"
	"github.com/newsloop/news-api/internal/recommend"
	"github.com/newsloop/news-api/internal/search"
	"github.com/newsloop/news-api/internal/store"
)

// @title           Newsloop API
// @version         1.0
// @description     News platform backend: personalized article ranking, keyword search via Typesense, and a Gemini-backed chat assistant.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg := config.LoadConfig()
	ctx := context.Background()

	observability.InitTracer(cfg, "news-api")
	defer observability.ShutdownTracer()

	pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open PostgreSQL: %v", err)
	}
	defer pg.Close()

	rd, err := store.NewRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("failed to open Redis: %v", err)
	}
	defer rd.Close()

	searchClient := search.NewClient(cfg.TypesenseURL(), cfg.TypesenseAPIKey, cfg.TypesenseCollection)

	geminiClient, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.GeminiAPIKey})
	if err != nil {
		log.Fatalf("failed to create Gemini client: %v", err)
	}

	engine := recommend.NewEngine(pg,
		recommend.WithSignalWindows(cfg.Recommend.LikeWindow, cfg.Recommend.ViewWindow))

	assistantSvc := assistant.NewService(geminiClient, cfg.GeminiChatModel,
		pg, handlers.NewIndexSearcher(searchClient, pg))

	auth := middlewares.NewAuthenticator(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

	r := routes.SetupRouter(cfg, &routes.Deps{
		Store:     pg,
		Redis:     rd,
		Search:    searchClient,
		Engine:    engine,
		Assistant: assistantSvc,
		Auth:      auth,
	})

	log.Printf("server listening on port %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
