package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/newsloop/news-api/internal/vector"
)

// EmbeddingProvider generates content vectors for article text.
type EmbeddingProvider interface {
	GenerateEmbedding(ctx context.Context, text string) (vector.Vector, error)
	GenerateBatch(ctx context.Context, texts []string) ([]vector.Vector, error)
	Dimensions() int
	ModelName() string
}

// GeminiEmbeddingProvider implements EmbeddingProvider with Google Gemini.
type GeminiEmbeddingProvider struct {
	client     *genai.Client
	modelName  string
	dimensions int
	timeout    time.Duration
	cache      Cache
	maxRetries int
}

// NewGeminiEmbeddingProvider creates an embedding provider. The dimensions
// argument must match the pgvector column definition.
func NewGeminiEmbeddingProvider(client *genai.Client, modelName string, dimensions int, cache Cache) *GeminiEmbeddingProvider {
	return &GeminiEmbeddingProvider{
		client:     client,
		modelName:  modelName,
		dimensions: dimensions,
		timeout:    15 * time.Second,
		cache:      cache,
		maxRetries: 3,
	}
}

// maxEmbedChars bounds the text sent to the embedding model, measured in
// runes so Hangul is never cut mid-character.
const maxEmbedChars = 10000

// truncateRunes cuts on rune boundaries; multibyte text stays valid UTF-8.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// GenerateEmbedding embeds one text, consulting the cache first.
func (g *GeminiEmbeddingProvider) GenerateEmbedding(ctx context.Context, text string) (vector.Vector, error) {
	text = truncateRunes(text, maxEmbedChars)

	cacheKey := g.cacheKey(text)
	if cached := g.cache.Get(cacheKey); cached != nil {
		return cached.(vector.Vector), nil
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var (
		embedding vector.Vector
		lastErr   error
	)
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		embedding, lastErr = g.embed(ctxWithTimeout, text)
		if lastErr == nil {
			g.cache.Set(cacheKey, embedding, 30*time.Minute)
			return embedding, nil
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("context canceled: %w", ctx.Err())
		}

		if attempt < g.maxRetries {
			log.Printf("embedding generation failed (attempt %d/%d): %v, retrying", attempt, g.maxRetries, lastErr)
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", g.maxRetries, lastErr)
}

func (g *GeminiEmbeddingProvider) embed(ctx context.Context, text string) (vector.Vector, error) {
	content := genai.NewContentFromText(text, genai.RoleUser)
	outputDim := int32(g.dimensions)
	config := &genai.EmbedContentConfig{
		OutputDimensionality: &outputDim,
	}

	resp, err := g.client.Models.EmbedContent(ctx, g.modelName, []*genai.Content{content}, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	embedding := resp.Embeddings[0].Values
	if len(embedding) != g.dimensions {
		return nil, fmt.Errorf("embedding has %d dimensions, expected %d", len(embedding), g.dimensions)
	}

	return vector.Vector(embedding), nil
}

// GenerateBatch embeds several texts with bounded concurrency.
func (g *GeminiEmbeddingProvider) GenerateBatch(ctx context.Context, texts []string) ([]vector.Vector, error) {
	if len(texts) == 0 {
		return []vector.Vector{}, nil
	}

	embeddings := make([]vector.Vector, len(texts))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(5)
	for i, text := range texts {
		eg.Go(func() error {
			embedding, err := g.GenerateEmbedding(egCtx, text)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			embeddings[i] = embedding
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return embeddings, nil
}

// Dimensions returns the configured output dimensionality.
func (g *GeminiEmbeddingProvider) Dimensions() int { return g.dimensions }

// ModelName returns the Gemini model in use.
func (g *GeminiEmbeddingProvider) ModelName() string { return g.modelName }

func (g *GeminiEmbeddingProvider) cacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "embedding:" + hex.EncodeToString(hash[:])
}
