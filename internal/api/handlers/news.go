package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/newsloop/news-api/internal/constants"
	middlewares "github.com/newsloop/news-api/internal/middleware"
	"github.com/newsloop/news-api/internal/models"
	"github.com/newsloop/news-api/internal/recommend"
	"github.com/newsloop/news-api/internal/store"
)

// NewsHandler serves the article feed and detail endpoints.
type NewsHandler struct {
	store    *store.Postgres
	engine   *recommend.Engine
	poolSize int
}

// NewNewsHandler creates the handler. poolSize bounds the candidate pool
// passed to the ranking engine per request.
func NewNewsHandler(st *store.Postgres, engine *recommend.Engine, poolSize int) *NewsHandler {
	return &NewsHandler{store: st, engine: engine, poolSize: poolSize}
}

// ListQuery is the feed query string. The category rule is registered in
// routes.SetupRouter.
type ListQuery struct {
	Category  string `form:"category" binding:"omitempty,category"`
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	PerPage   int    `form:"per_page,default=20" binding:"omitempty,min=1,max=100"`
	Recommend bool   `form:"recommend"`
}

// FeedResponse is a page of articles plus the ranking strategy that
// produced the order.
type FeedResponse struct {
	Strategy string           `json:"strategy,omitempty"`
	Articles []models.Article `json:"articles"`
	Page     int              `json:"page"`
	PerPage  int              `json:"per_page"`
}

// List godoc
// @Summary List news articles
// @Description Returns articles newest first. With recommend=true the page is
// @Description ordered by the personalization engine instead: authenticated
// @Description users get taste-based ranking with graceful fallback, anonymous
// @Description users get popularity ranking.
// @Tags news
// @Produce json
// @Param category query string false "Restrict to one category" example("경제")
// @Param page query int false "Page number (starts at 1)" default(1)
// @Param per_page query int false "Articles per page" default(20) maximum(100)
// @Param recommend query bool false "Order by the recommendation engine" default(false)
// @Success 200 {object} FeedResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Storage failure"
// @Router /api/news [get]
func (h *NewsHandler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if constants.IsAllCategories(q.Category) {
		q.Category = ""
	}

	if q.Recommend {
		h.recommendFeed(c, q.Category, q.Page, q.PerPage)
		return
	}

	articles, err := h.store.ListArticles(c.Request.Context(), q.Category, q.PerPage, (q.Page-1)*q.PerPage)
	if err != nil {
		log.Printf("failed to list articles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load articles"})
		return
	}

	c.JSON(http.StatusOK, FeedResponse{Articles: emptyIfNil(articles), Page: q.Page, PerPage: q.PerPage})
}

// recommendFeed runs the ranking engine over a candidate pool. Pool loading
// is the one hard failure here; everything after degrades inside the engine.
func (h *NewsHandler) recommendFeed(c *gin.Context, category string, page, perPage int) {
	ctx := c.Request.Context()

	pool, err := h.store.Candidates(ctx, category, h.poolSize)
	if err != nil {
		log.Printf("failed to load candidate pool: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load articles"})
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

	ids := make([]int64, len(pageItems))
	for i, item := range pageItems {
		ids[i] = item.ArticleID
	}

	articles, err := h.store.ArticlesByID(ctx, ids)
	if err != nil {
		log.Printf("failed to hydrate ranked articles: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load articles"})
		return
	}

	c.JSON(http.StatusOK, FeedResponse{
		Strategy: string(result.Strategy),
		Articles: emptyIfNil(articles),
		Page:     page,
		PerPage:  perPage,
	})
}

// DetailResponse bundles an article with its vector neighbors and comments.
type DetailResponse struct {
	Article  models.Article   `json:"article"`
	Similar  []models.Article `json:"similar_articles"`
	Comments []models.Comment `json:"comments"`
}

// Detail godoc
// @Summary Get one article
// @Description Returns the article with its comments and embedding-based
// @Description similar articles. Authenticated requests record a view event
// @Description (first view per user and article only).
// @Tags news
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} DetailResponse
// @Failure 404 {object} map[string]string "Article not found"
// @Router /api/news/{id} [get]
func (h *NewsHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}
	ctx := c.Request.Context()

	article, err := h.store.GetArticle(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	if err != nil {
		log.Printf("failed to load article %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load article"})
		return
	}

	if userID, ok := middlewares.GetUserID(c); ok {
		if err := h.store.RecordView(ctx, userID, id); err != nil {
			log.Printf("failed to record view for user %d article %d: %v", userID, id, err)
		}
	}

	var similar []models.Article
	if !article.Embedding.IsZero() {
		similar, err = h.store.SimilarByVector(ctx, article.Embedding, id, 6)
		if err != nil {
			log.Printf("failed to load similar articles for %d: %v", id, err)
			similar = nil
		}
	}

	comments, err := h.store.ListComments(ctx, id)
	if err != nil {
		log.Printf("failed to load comments for %d: %v", id, err)
		comments = nil
	}

	c.JSON(http.StatusOK, DetailResponse{
		Article:  *article,
		Similar:  emptyIfNil(similar),
		Comments: emptyCommentsIfNil(comments),
	})
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func emptyIfNil(articles []models.Article) []models.Article {
	if articles == nil {
		return []models.Article{}
	}
	return articles
}

func emptyCommentsIfNil(comments []models.Comment) []models.Comment {
	if comments == nil {
		return []models.Comment{}
	}
	return comments
}
