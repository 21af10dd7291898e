package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/newsloop/news-api/internal/store"
)

// TrendingHandler serves the popularity leaderboard.
type TrendingHandler struct {
	store *store.Postgres
	redis *store.Redis
}

// NewTrendingHandler creates the handler.
func NewTrendingHandler(st *store.Postgres, rd *store.Redis) *TrendingHandler {
	return &TrendingHandler{store: st, redis: rd}
}

// Trending godoc
// @Summary Trending articles
// @Description Returns the current popularity leaderboard, refreshed
// @Description periodically by the indexer.
// @Tags news
// @Produce json
// @Param limit query int false "Max articles" default(10) maximum(50)
// @Success 200 {object} FeedResponse
// @Router /api/trending [get]
func (h *TrendingHandler) Trending(c *gin.Context) {
	limit := parsePositiveInt(c.Query("limit"), 10)
	if limit > 50 {
		limit = 50
	}
	ctx := c.Request.Context()

	ids, err := h.redis.Trending(ctx, limit)
	if err != nil {
		log.Printf("failed to read trending set: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trending articles"})
		return
	}

	articles, err := h.store.ArticlesByID(ctx, ids)
	if err != nil {
		log.Printf("failed to hydrate trending articles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trending articles"})
		return
	}

	c.JSON(http.StatusOK, FeedResponse{Articles: emptyIfNil(articles), Page: 1, PerPage: limit})
}
