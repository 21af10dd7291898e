package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/newsloop/news-api/internal/assistant"
	middlewares "github.com/newsloop/news-api/internal/middleware"
	"github.com/newsloop/news-api/internal/models"
	"github.com/newsloop/news-api/internal/search"
	"github.com/newsloop/news-api/internal/store"
)

// Replier produces assistant responses for chat turns.
type Replier interface {
	Reply(ctx context.Context, profile *assistant.UserProfile, req assistant.Request) assistant.Response
}

// ChatHandler serves the assistant endpoint.
type ChatHandler struct {
	assistant Replier
	store     *store.Postgres
}

// NewChatHandler creates the handler.
func NewChatHandler(svc Replier, st *store.Postgres) *ChatHandler {
	return &ChatHandler{assistant: svc, store: st}
}

// Chat godoc
// @Summary Chat with the news assistant
// @Description Sends one message to the assistant. Mode "none" is plain
// @Description conversation, "now" grounds the reply in the supplied page
// @Description context, "all" retrieves related articles from the archive.
// @Description Authenticated users get replies shaped by their activity.
// @Tags chat
// @Accept json
// @Produce json
// @Param message body assistant.Request true "Message, mode and optional page context"
// @Success 200 {object} assistant.Response
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 503 {object} assistant.Response "Generation backend unavailable"
// @Router /api/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req assistant.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()

	var profile *assistant.UserProfile
	if userID, ok := middlewares.GetUserID(c); ok {
		profile = h.buildProfile(ctx, userID)
	}

	resp := h.assistant.Reply(ctx, profile, req)
	if resp.Error {
		// The body still carries the Korean apology so clients can render it.
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// buildProfile collects the user's activity digest. Failures only cost
// personalization, never the reply.
func (h *ChatHandler) buildProfile(ctx context.Context, userID int64) *assistant.UserProfile {
	viewed, err := h.store.CategoryViewCounts(ctx, userID)
	if err != nil {
		log.Printf("failed to load viewed categories for user %d: %v", userID, err)
		return nil
	}

	liked, err := h.store.RecentLikedArticles(ctx, userID, 10)
	if err != nil {
		log.Printf("failed to load liked articles for user %d: %v", userID, err)
		return nil
	}

	likedCategories := make(map[string]int)
	titles := make([]string, 0, len(liked))
	for _, a := range liked {
		if a.Category != "" {
			likedCategories[a.Category]++
		}
		titles = append(titles, a.Title)
	}

	return assistant.NewUserProfile(likedCategories, viewed, titles)
}

// IndexSearcher adapts the keyword index plus the store into the assistant's
// retrieval surface.
type IndexSearcher struct {
	search *search.Client
	store  *store.Postgres
}

// NewIndexSearcher builds the adapter.
func NewIndexSearcher(client *search.Client, st *store.Postgres) *IndexSearcher {
	return &IndexSearcher{search: client, store: st}
}

// SearchArticles runs a keyword query and hydrates the hits from PostgreSQL.
func (s *IndexSearcher) SearchArticles(ctx context.Context, query string, limit int) ([]models.Article, error) {
	result, err := s.search.Search(ctx, query, "", 1, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}
	return s.store.ArticlesByID(ctx, ids)
}
