package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	middlewares "github.com/newsloop/news-api/internal/middleware"
	"github.com/newsloop/news-api/internal/store"
)

// LikeHandler serves like and unlike endpoints.
type LikeHandler struct {
	store *store.Postgres
}

// NewLikeHandler creates the handler.
func NewLikeHandler(st *store.Postgres) *LikeHandler {
	return &LikeHandler{store: st}
}

// Like godoc
// @Summary Like an article
// @Description Records a like for the authenticated user. Liking an already
// @Description liked article is a no-op.
// @Tags likes
// @Produce json
// @Param id path int true "Article ID"
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Failure 401 {object} map[string]string "Not authenticated"
// @Failure 404 {object} map[string]string "Article not found"
// @Router /api/news/{id}/like [post]
func (h *LikeHandler) Like(c *gin.Context) {
	userID, _ := middlewares.GetUserID(c)
	articleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	if err := h.store.Like(c.Request.Context(), userID, articleID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		log.Printf("failed to like article %d: %v", articleID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record like"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": true})
}

// Unlike godoc
// @Summary Remove a like
// @Description Deletes the user's like event for the article.
// @Tags likes
// @Produce json
// @Param id path int true "Article ID"
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Failure 401 {object} map[string]string "Not authenticated"
// @Failure 404 {object} map[string]string "No like to remove"
// @Router /api/news/{id}/like [delete]
func (h *LikeHandler) Unlike(c *gin.Context) {
	userID, _ := middlewares.GetUserID(c)
	articleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	if err := h.store.Unlike(c.Request.Context(), userID, articleID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "like not found"})
			return
		}
		log.Printf("failed to unlike article %d: %v", articleID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove like"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": false})
}

// Liked godoc
// @Summary Recently liked articles
// @Description Returns the user's most recently liked articles.
// @Tags likes
// @Produce json
// @Param limit query int false "Max articles" default(10)
// @Security BearerAuth
// @Success 200 {object} FeedResponse
// @Failure 401 {object} map[string]string "Not authenticated"
// @Router /api/news/liked [get]
func (h *LikeHandler) Liked(c *gin.Context) {
	userID, _ := middlewares.GetUserID(c)
	limit := parsePositiveInt(c.Query("limit"), 10)

	articles, err := h.store.RecentLikedArticles(c.Request.Context(), userID, limit)
	if err != nil {
		log.Printf("failed to load liked articles for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load liked articles"})
		return
	}

	c.JSON(http.StatusOK, FeedResponse{Articles: emptyIfNil(articles), Page: 1, PerPage: limit})
}
