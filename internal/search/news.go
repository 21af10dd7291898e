// Package search wraps the Typesense keyword index for news articles.
//
// The index is a projection of the PostgreSQL articles table kept in sync by
// the indexer job. Queries are normalized to NFC before searching so that
// decomposed Hangul input matches the indexed form.
package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/typesense/typesense-go/v3/typesense"
	"github.com/typesense/typesense-go/v3/typesense/api"
	"github.com/typesense/typesense-go/v3/typesense/api/pointer"

	"github.com/newsloop/news-api/internal/models"
	"github.com/newsloop/news-api/internal/utils"
)

const CollectionName = "news_articles"

// ErrUnavailable marks a failure to reach the Typesense node. Callers map it
// to a 503 instead of a generic server error: the article data itself is
// fine, only the keyword index is down.
var ErrUnavailable = errors.New("search unavailable")

// Client encapsulates the Typesense operations used by the API and the
// indexer.
type Client struct {
	ts         *typesense.Client
	collection string
}

// NewClient builds the Typesense client. An empty collection name falls back
// to CollectionName.
func NewClient(url, apiKey, collection string) *Client {
	if collection == "" {
		collection = CollectionName
	}
	return &Client{
		ts: typesense.NewClient(
			typesense.WithServer(url),
			typesense.WithAPIKey(apiKey),
		),
		collection: collection,
	}
}

// Hit is one search result row.
type Hit struct {
	ID       int64   `json:"news_id"`
	Title    string  `json:"title"`
	Summary  string  `json:"summary"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// Result is a page of hits.
type Result struct {
	Hits       []Hit `json:"hits"`
	TotalFound int   `json:"total_found"`
}

// EnsureCollection creates the news collection if it does not exist yet.
func (c *Client) EnsureCollection(ctx context.Context) error {
	_, err := c.ts.Collection(c.collection).Retrieve(ctx)
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	schema := &api.CollectionSchema{
		Name: c.collection,
		Fields: []api.Field{
			{Name: "news_id", Type: "int64"},
			{Name: "title", Type: "string"},
			{Name: "summary", Type: "string"},
			{Name: "keywords", Type: "string", Optional: pointer.True()},
			{Name: "category", Type: "string", Facet: pointer.True()},
			{Name: "updated", Type: "int64", Sort: pointer.True()},
		},
		DefaultSortingField: pointer.String("updated"),
	}

	if _, err := c.ts.Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", c.collection, err)
	}
	return nil
}

// UpsertArticles writes a batch of articles into the index. Document IDs are
// the article IDs, so re-indexing the same article overwrites in place.
func (c *Client) UpsertArticles(ctx context.Context, articles []models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(articles))
	for _, a := range articles {
		docs = append(docs, map[string]interface{}{
			"id":       strconv.FormatInt(a.ID, 10),
			"news_id":  a.ID,
			"title":    a.Title,
			"summary":  a.Summary,
			"keywords": a.Keywords,
			"category": a.Category,
			"updated":  a.UpdatedAt.Unix(),
		})
	}

	params := &api.ImportDocumentsParams{
		Action:    pointer.Any(api.Upsert),
		BatchSize: pointer.Int(len(docs)),
	}
	responses, err := c.ts.Collection(c.collection).Documents().Import(ctx, docs, params)
	if err != nil {
		return fmt.Errorf("failed to import documents: %w", err)
	}
	for _, r := range responses {
		if !r.Success {
			return fmt.Errorf("document import rejected: %s", r.Error)
		}
	}
	return nil
}

// DeleteArticle removes one article from the index.
func (c *Client) DeleteArticle(ctx context.Context, id int64) error {
	_, err := c.ts.Collection(c.collection).Document(strconv.FormatInt(id, 10)).Delete(ctx)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete document %d: %w", id, err)
	}
	return nil
}

// Search runs a keyword query over title and summary, title weighted
// heavier, optionally restricted to a category.
func (c *Client) Search(ctx context.Context, query, category string, page, perPage int) (*Result, error) {
	normalized := utils.NormalizeQuery(query)

	params := &api.SearchCollectionParams{
		Q:                    pointer.String(normalized),
		QueryBy:              pointer.String("title,summary,keywords"),
		QueryByWeights:       pointer.String("3,1,1"),
		Page:                 pointer.Int(page),
		PerPage:              pointer.Int(perPage),
		PrioritizeExactMatch: pointer.True(),
		SortBy:               pointer.String("_text_match:desc,updated:desc"),
	}
	if category != "" {
		params.FilterBy = pointer.String(fmt.Sprintf("category:=%s", category))
	}

	result, err := c.ts.Collection(c.collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: keyword query: %v", ErrUnavailable, err)
	}
	return transformResult(result), nil
}

// Autocomplete returns title prefix matches for typeahead.
func (c *Client) Autocomplete(ctx context.Context, prefix string, limit int) ([]Hit, error) {
	normalized := utils.NormalizeQuery(prefix)

	params := &api.SearchCollectionParams{
		Q:                       pointer.String(normalized),
		QueryBy:                 pointer.String("title"),
		PerPage:                 pointer.Int(limit),
		PrioritizeTokenPosition: pointer.True(),
		NumTypos:                pointer.String("0"),
	}

	result, err := c.ts.Collection(c.collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: autocomplete query: %v", ErrUnavailable, err)
	}
	return transformResult(result).Hits, nil
}

// Health reports whether the Typesense node answers.
func (c *Client) Health(ctx context.Context) error {
	ok, err := c.ts.Health(ctx, 2*time.Second)
	if err != nil {
		return fmt.Errorf("typesense health check failed: %w", err)
	}
	if !ok {
		return errors.New("typesense node not healthy")
	}
	return nil
}

func transformResult(result *api.SearchResult) *Result {
	out := &Result{Hits: []Hit{}}
	if result.Found != nil {
		out.TotalFound = *result.Found
	}
	if result.Hits == nil {
		return out
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document
		h := Hit{
			ID:       asInt64(doc["news_id"]),
			Title:    asString(doc["title"]),
			Summary:  asString(doc["summary"]),
			Category: asString(doc["category"]),
		}
		if hit.TextMatch != nil {
			h.Score = float64(*hit.TextMatch)
		}
		out.Hits = append(out.Hits, h)
	}
	return out
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	case int:
		return int64(n)
	}
	return 0
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "404") || strings.Contains(strings.ToLower(msg), "not found")
}
