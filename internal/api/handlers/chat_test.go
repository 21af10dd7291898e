package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/newsloop/news-api/internal/assistant"
)

type stubReplier struct {
	resp assistant.Response
}

func (s stubReplier) Reply(ctx context.Context, profile *assistant.UserProfile, req assistant.Request) assistant.Response {
	return s.resp
}

func newChatRouter(r Replier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewChatHandler(r, nil)
	router.POST("/api/chat", h.Chat)
	return router
}

func postChat(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatSuccess(t *testing.T) {
	router := newChatRouter(stubReplier{resp: assistant.Response{
		Reply:     "안녕하세요!",
		SessionID: "abc",
	}})

	w := postChat(t, router, `{"message":"안녕"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var resp assistant.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Reply != "안녕하세요!" || resp.SessionID != "abc" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestChatGenerationFailureReturns503(t *testing.T) {
	router := newChatRouter(stubReplier{resp: assistant.Response{
		Reply:     "죄송합니다. 일시적인 오류가 발생했습니다. 다시 시도해 주세요.",
		SessionID: "abc",
		Error:     true,
	}})

	w := postChat(t, router, `{"message":"안녕"}`)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 (body %s)", w.Code, w.Body.String())
	}

	var resp assistant.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Error {
		t.Error("error flag not set in body")
	}
	if resp.Reply == "" {
		t.Error("body should keep the user-facing apology")
	}
}

func TestChatRejectsMissingMessage(t *testing.T) {
	router := newChatRouter(stubReplier{})

	w := postChat(t, router, `{"mode":"now"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
