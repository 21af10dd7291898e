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

// CommentHandler serves comment CRUD endpoints.
type CommentHandler struct {
	store *store.Postgres
}

// NewCommentHandler creates the handler.
func NewCommentHandler(st *store.Postgres) *CommentHandler {
	return &CommentHandler{store: st}
}

// CommentRequest is the create/update payload.
type CommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// List godoc
// @Summary List comments
// @Description Returns an article's comments, newest first.
// @Tags comments
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {array} models.Comment
// @Router /api/news/{id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	articleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	comments, err := h.store.ListComments(c.Request.Context(), articleID)
	if err != nil {
		log.Printf("failed to list comments for %d: %v", articleID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comments"})
		return
	}

	c.JSON(http.StatusOK, emptyCommentsIfNil(comments))
}

// Create godoc
// @Summary Add a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param comment body CommentRequest true "Comment content"
// @Security BearerAuth
// @Success 201 {object} models.Comment
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 401 {object} map[string]string "Not authenticated"
// @Failure 404 {object} map[string]string "Article not found"
// @Router /api/news/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	userID, _ := middlewares.GetUserID(c)
	articleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	comment, err := h.store.AddComment(c.Request.Context(), userID, articleID, req.Content)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		log.Printf("failed to create comment on %d: %v", articleID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Update godoc
// @Summary Edit a comment
// @Description Only the comment's author may edit it.
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param comment body CommentRequest true "New content"
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Comment not found"
// @Router /api/comments/{id} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	userID, _ := middlewares.GetUserID(c)
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	comment, err := h.store.GetComment(ctx, commentID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	if err != nil {
		log.Printf("failed to load comment %d: %v", commentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comment"})
		return
	}
	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the comment author"})
		return
	}

	if err := h.store.UpdateComment(ctx, commentID, req.Content); err != nil {
		log.Printf("failed to update comment %d: %v", commentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// Delete godoc
// @Summary Delete a comment
// @Description Only the comment's author may delete it.
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Comment not found"
// @Router /api/comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, _ := middlewares.GetUserID(c)
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	ctx := c.Request.Context()
	comment, err := h.store.GetComment(ctx, commentID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	if err != nil {
		log.Printf("failed to load comment %d: %v", commentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comment"})
		return
	}
	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the comment author"})
		return
	}

	if err := h.store.DeleteComment(ctx, commentID); err != nil {
		log.Printf("failed to delete comment %d: %v", commentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
