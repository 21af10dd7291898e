package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/genai"

	"github.com/newsloop/news-api/internal/config"
	"github.com/newsloop/news-api/internal/indexer"
	"github.com/newsloop/news-api/internal/search"
	"github.com/newsloop/news-api/internal/services"
	"github.com/newsloop/news-api/internal/store"
)

func main() {
	interval := flag.Duration("interval", 5*time.Minute, "Sync interval")
	once := flag.Bool("once", false, "Run a single sync cycle and exit")
	full := flag.Bool("full", false, "Rebuild the whole index from scratch")
	batchSize := flag.Int("batch", 100, "Articles per index batch")
	workers := flag.Int("workers", 3, "Parallel index workers")
	backfill := flag.Int("backfill-embeddings", 0, "Generate embeddings for up to N articles missing one, then exit")
	flag.Parse()

	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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
	if err := searchClient.EnsureCollection(ctx); err != nil {
		log.Fatalf("failed to ensure collection: %v", err)
	}

	var embedder services.EmbeddingProvider
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.GeminiAPIKey})
		if err != nil {
			log.Fatalf("failed to create Gemini client: %v", err)
		}
		embedder = services.NewGeminiEmbeddingProvider(geminiClient,
			cfg.GeminiEmbeddingModel, cfg.EmbeddingDimensions, services.NewLRUCache(1000))
	}

	ix := indexer.New(pg, rd, searchClient, embedder, *batchSize, *workers)

	switch {
	case *backfill > 0:
		n, err := ix.BackfillEmbeddings(ctx, *backfill)
		if err != nil {
			log.Fatalf("embedding backfill failed: %v", err)
		}
		log.Printf("embedding backfill done, %d articles embedded", n)

	case *full:
		if err := ix.FullReindex(ctx); err != nil {
			log.Fatalf("full reindex failed: %v", err)
		}
		log.Println("full reindex done")

	case *once:
		if err := ix.Cycle(ctx); err != nil {
			log.Fatalf("sync cycle failed: %v", err)
		}
		log.Println("sync cycle done")

	default:
		log.Printf("starting indexer, interval %s", *interval)
		if err := ix.Run(ctx, *interval); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("indexer stopped: %v", err)
		}
	}
}
