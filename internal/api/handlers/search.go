package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/newsloop/news-api/internal/constants"
	middlewares "github.com/newsloop/news-api/internal/middleware"
	"github.com/newsloop/news-api/internal/recommend"
	"github.com/newsloop/news-api/internal/search"
	"github.com/newsloop/news-api/internal/store"
)

// searchPoolSize bounds how many hits feed the ranking engine when a search
// is reordered by recommendation.
const searchPoolSize = 100

// NewsSearcher is the keyword index surface the search endpoints need.
type NewsSearcher interface {
	Search(ctx context.Context, query, category string, page, perPage int) (*search.Result, error)
	Autocomplete(ctx context.Context, prefix string, limit int) ([]search.Hit, error)
}

// SearchHandler serves keyword search and autocomplete.
type SearchHandler struct {
	search NewsSearcher
	store  *store.Postgres
	engine *recommend.Engine
}

// NewSearchHandler creates the handler.
func NewSearchHandler(searcher NewsSearcher, st *store.Postgres, engine *recommend.Engine) *SearchHandler {
	return &SearchHandler{search: searcher, store: st, engine: engine}
}

// searchFailure maps an index error to a response: unreachable index 503,
// anything else 500.
func searchFailure(c *gin.Context, err error) {
	if errors.Is(err, search.ErrUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search unavailable"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
}

// Search godoc
// @Summary Keyword search
// @Description Searches article titles, summaries and keywords. Title matches
// @Description weigh heaviest. Queries are NFC-normalized before matching.
// @Tags search
// @Produce json
// @Param q query string true "Search query" example("기준금리")
// @Param category query string false "Restrict to one category" example("경제")
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Results per page" default(20) maximum(100)
// @Param recommend query bool false "Reorder hits with the recommendation engine" default(false)
// @Success 200 {object} search.Result
// @Failure 400 {object} map[string]string "Missing or invalid query"
// @Failure 503 {object} map[string]string "Search index unreachable"
// @Router /api/search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	category := c.Query("category")
	if constants.IsAllCategories(category) {
		category = ""
	} else if category != "" && !constants.IsValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	page := parsePositiveInt(c.Query("page"), 1)
	perPage := parsePositiveInt(c.Query("per_page"), 20)
	if perPage > 100 {
		perPage = 100
	}

	if c.Query("recommend") == "true" {
		h.recommendSearch(c, query, category, page, perPage)
		return
	}

	result, err := h.search.Search(c.Request.Context(), query, category, page, perPage)
	if err != nil {
		log.Printf("search failed for %q: %v", query, err)
		searchFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// recommendSearch reorders a keyword result set with the ranking engine. The
// hits become the candidate pool; the engine never sees the query itself.
func (h *SearchHandler) recommendSearch(c *gin.Context, query, category string, page, perPage int) {
	ctx := c.Request.Context()

	found, err := h.search.Search(ctx, query, category, 1, searchPoolSize)
	if err != nil {
		log.Printf("search failed for %q: %v", query, err)
		searchFailure(c, err)
		return
	}

	ids := make([]int64, len(found.Hits))
	for i, hit := range found.Hits {
		ids[i] = hit.ID
	}

	pool, err := h.store.CandidatesByID(ctx, ids)
	if err != nil {
		log.Printf("failed to load search candidate pool: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	userID, authenticated := middlewares.GetUserID(c)
	result := h.engine.Rank(ctx, recommend.Request{
		UserID:        userID,
		Authenticated: authenticated,
		Pool:          pool,
	})

	start := (page - 1) * perPage
	if start > len(result.Items) {
		start = len(result.Items)
	}
	end := start + perPage
	if end > len(result.Items) {
		end = len(result.Items)
	}
	pageItems := result.Items[start:end]

	ranked := make([]int64, len(pageItems))
	for i, item := range pageItems {
		ranked[i] = item.ArticleID
	}

	articles, err := h.store.ArticlesByID(ctx, ranked)
	if err != nil {
		log.Printf("failed to hydrate ranked search hits: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, FeedResponse{
		Strategy: string(result.Strategy),
		Articles: emptyIfNil(articles),
		Page:     page,
		PerPage:  perPage,
	})
}

// Autocomplete godoc
// @Summary Title autocomplete
// @Description Prefix matches over article titles for typeahead.
// @Tags search
// @Produce json
// @Param q query string true "Prefix" example("기준")
// @Param limit query int false "Max suggestions" default(8)
// @Success 200 {array} search.Hit
// @Failure 400 {object} map[string]string "Missing prefix"
// @Failure 503 {object} map[string]string "Search index unreachable"
// @Router /api/search/autocomplete [get]
func (h *SearchHandler) Autocomplete(c *gin.Context) {
	prefix := c.Query("q")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	limit := parsePositiveInt(c.Query("limit"), 8)
	if limit > 20 {
		limit = 20
	}

	hits, err := h.search.Autocomplete(c.Request.Context(), prefix, limit)
	if err != nil {
		log.Printf("autocomplete failed for %q: %v", prefix, err)
		searchFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, hits)
}
