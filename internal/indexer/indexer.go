// Package indexer keeps the Typesense index, the trending leaderboard and
// article embeddings in sync with PostgreSQL.
//
// The incremental sync walks articles by ID from a Redis cursor, so restarts
// resume where the previous run stopped and a full reindex is just a cursor
// reset.
package indexer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/newsloop/news-api/internal/models"
	"github.com/newsloop/news-api/internal/recommend"
	"github.com/newsloop/news-api/internal/search"
	"github.com/newsloop/news-api/internal/services"
	"github.com/newsloop/news-api/internal/store"
	"github.com/newsloop/news-api/internal/utils"
)

const trendingPoolSize = 500

// Indexer runs the sync jobs.
type Indexer struct {
	store     *store.Postgres
	redis     *store.Redis
	search    *search.Client
	embedder  services.EmbeddingProvider
	batchSize int
	workers   int
}

// New creates an Indexer. embedder may be nil when embedding backfill is not
// wanted.
func New(st *store.Postgres, rd *store.Redis, sc *search.Client, embedder services.EmbeddingProvider, batchSize, workers int) *Indexer {
	if batchSize < 1 {
		batchSize = 100
	}
	if workers < 1 {
		workers = 3
	}
	return &Indexer{
		store:     st,
		redis:     rd,
		search:    sc,
		embedder:  embedder,
		batchSize: batchSize,
		workers:   workers,
	}
}

// Run executes sync cycles on the interval until the context is canceled.
func (ix *Indexer) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := ix.Cycle(ctx); err != nil {
			log.Printf("indexer cycle failed: %v", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Cycle runs one sync pass: new articles into the index, then the trending
// leaderboard.
func (ix *Indexer) Cycle(ctx context.Context) error {
	if err := ix.SyncArticles(ctx); err != nil {
		return err
	}
	return ix.RefreshTrending(ctx)
}

// SyncArticles indexes articles created since the last run, batch by batch,
// advancing the cursor after each persisted batch.
func (ix *Indexer) SyncArticles(ctx context.Context) error {
	cursor, err := ix.redis.IndexCursor(ctx)
	if err != nil {
		return err
	}

	total := 0
	for {
		articles, err := ix.store.ArticlesAfter(ctx, cursor, ix.batchSize*ix.workers)
		if err != nil {
			return err
		}
		if len(articles) == 0 {
			break
		}

		if err := ix.upsertParallel(ctx, articles); err != nil {
			return err
		}

		cursor = articles[len(articles)-1].ID
		if err := ix.redis.SetIndexCursor(ctx, cursor); err != nil {
			return err
		}
		total += len(articles)
	}

	if total > 0 {
		log.Printf("indexed %d articles, cursor now %d", total, cursor)
	}
	return nil
}

// FullReindex rebuilds the whole index from article ID zero.
func (ix *Indexer) FullReindex(ctx context.Context) error {
	if err := ix.search.EnsureCollection(ctx); err != nil {
		return err
	}
	if err := ix.redis.SetIndexCursor(ctx, 0); err != nil {
		return err
	}
	return ix.SyncArticles(ctx)
}

// upsertParallel splits one read batch into per-worker chunks.
func (ix *Indexer) upsertParallel(ctx context.Context, articles []models.Article) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(ix.workers)

	for start := 0; start < len(articles); start += ix.batchSize {
		end := start + ix.batchSize
		if end > len(articles) {
			end = len(articles)
		}
		chunk := articles[start:end]
		eg.Go(func() error {
			return ix.search.UpsertArticles(egCtx, chunk)
		})
	}

	return eg.Wait()
}

// RefreshTrending recomputes popularity scores over the most recent articles
// and swaps the Redis leaderboard.
func (ix *Indexer) RefreshTrending(ctx context.Context) error {
	candidates, err := ix.store.Candidates(ctx, "", trendingPoolSize)
	if err != nil {
		return fmt.Errorf("failed to load trending pool: %w", err)
	}

	now := time.Now()
	scores := make(map[int64]float64, len(candidates))
	for _, c := range candidates {
		scores[c.ID] = recommend.PopularityScore(c, now)
	}

	return ix.redis.ReplaceTrending(ctx, scores)
}

// BackfillEmbeddings generates content vectors for articles that lack one.
// Processes up to limit articles and reports how many were embedded.
func (ix *Indexer) BackfillEmbeddings(ctx context.Context, limit int) (int, error) {
	if ix.embedder == nil {
		return 0, fmt.Errorf("no embedding provider configured")
	}

	articles, err := ix.store.ArticlesMissingEmbedding(ctx, limit)
	if err != nil {
		return 0, err
	}
	if len(articles) == 0 {
		return 0, nil
	}

	texts := make([]string, len(articles))
	for i, a := range articles {
		texts[i] = embeddingText(a)
	}

	embeddings, err := ix.embedder.GenerateBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding generation failed: %w", err)
	}

	done := 0
	for i, a := range articles {
		if err := ix.store.UpdateEmbedding(ctx, a.ID, embeddings[i]); err != nil {
			log.Printf("failed to store embedding for article %d: %v", a.ID, err)
			continue
		}
		done++
	}

	log.Printf("backfilled embeddings for %d/%d articles", done, len(articles))
	return done, nil
}

// embeddingText builds the text an article is embedded from: title, summary
// and body with markdown stripped.
func embeddingText(a models.Article) string {
	parts := []string{a.Title, a.Summary}
	if a.FullText != "" {
		parts = append(parts, utils.StripMarkdown(a.FullText))
	}
	return strings.Join(parts, "\n\n")
}
