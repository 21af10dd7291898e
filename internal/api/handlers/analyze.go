package handlers

import (
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	middlewares "github.com/newsloop/news-api/internal/middleware"
	"github.com/newsloop/news-api/internal/models"
	"github.com/newsloop/news-api/internal/store"
	"github.com/newsloop/news-api/internal/utils"
)

// AnalyzeHandler serves the reading-habits dashboard data.
type AnalyzeHandler struct {
	store *store.Postgres
}

// NewAnalyzeHandler creates the handler.
func NewAnalyzeHandler(st *store.Postgres) *AnalyzeHandler {
	return &AnalyzeHandler{store: st}
}

// KeywordCount is one keyword with its view frequency.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// AnalyzeResponse aggregates the user's reading activity.
type AnalyzeResponse struct {
	CategoryCounts map[string]int   `json:"category_counts"`
	TopKeywords    []KeywordCount   `json:"top_keywords"`
	DailyViews     []store.DayCount `json:"daily_views"`
	RecentLiked    []models.Article `json:"recent_liked"`
}

// Analyze godoc
// @Summary Reading habit statistics
// @Description Returns the user's views per category, most-read keywords,
// @Description a per-day view count for the last week and the most recently
// @Description liked articles.
// @Tags analyze
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AnalyzeResponse
// @Failure 401 {object} map[string]string "Not authenticated"
// @Router /api/analyze [get]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	userID, _ := middlewares.GetUserID(c)
	ctx := c.Request.Context()

	categoryCounts, err := h.store.CategoryViewCounts(ctx, userID)
	if err != nil {
		log.Printf("failed to aggregate categories for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze activity"})
		return
	}

	rawKeywords, err := h.store.ViewedKeywords(ctx, userID)
	if err != nil {
		log.Printf("failed to load keywords for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze activity"})
		return
	}

	dailyViews, err := h.store.DailyViewCounts(ctx, userID, 7)
	if err != nil {
		log.Printf("failed to aggregate daily views for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze activity"})
		return
	}

	recentLiked, err := h.store.RecentLikedArticles(ctx, userID, 5)
	if err != nil {
		log.Printf("failed to load liked articles for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze activity"})
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		CategoryCounts: categoryCounts,
		TopKeywords:    topKeywords(rawKeywords, 10),
		DailyViews:     dailyViews,
		RecentLiked:    emptyIfNil(recentLiked),
	})
}

// topKeywords tallies keyword frequency over the raw crawler fields.
func topKeywords(rawFields []string, n int) []KeywordCount {
	counts := make(map[string]int)
	for _, raw := range rawFields {
		for _, k := range utils.SplitKeywords(raw) {
			counts[k]++
		}
	}

	out := make([]KeywordCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, KeywordCount{Keyword: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Keyword < out[j].Keyword
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
