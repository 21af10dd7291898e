package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/newsloop/news-api/internal/search"
	"github.com/newsloop/news-api/internal/store"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store  *store.Postgres
	redis  *store.Redis
	search *search.Client
}

// NewHealthHandler creates the handler.
func NewHealthHandler(st *store.Postgres, rd *store.Redis, sc *search.Client) *HealthHandler {
	return &HealthHandler{store: st, redis: rd, search: sc}
}

// HealthResponse is the probe payload.
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// Liveness godoc
// @Summary Liveness probe
// @Description Confirms the process is running. No dependency checks.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /liveness [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now().Unix(),
	})
}

// Readiness godoc
// @Summary Readiness probe
// @Description Checks PostgreSQL, Redis and Typesense connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readiness [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ready",
		Checks:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	checks := []struct {
		name  string
		probe func(context.Context) error
	}{
		{"postgres", h.store.Ping},
		{"redis", h.redis.Ping},
		{"typesense", h.search.Health},
	}

	status := http.StatusOK
	for _, check := range checks {
		if err := check.probe(ctx); err != nil {
			response.Checks[check.name] = "failed"
			response.Status = "not_ready"
			status = http.StatusServiceUnavailable
		} else {
			response.Checks[check.name] = "ok"
		}
	}

	c.JSON(status, response)
}
