package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/newsloop/news-api/internal/search"
)

type stubSearcher struct {
	result       *search.Result
	hits         []search.Hit
	err          error
	lastQuery    string
	lastCategory string
}

func (s *stubSearcher) Search(ctx context.Context, query, category string, page, perPage int) (*search.Result, error) {
	s.lastQuery = query
	s.lastCategory = category
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubSearcher) Autocomplete(ctx context.Context, prefix string, limit int) ([]search.Hit, error) {
	s.lastQuery = prefix
	if s.err != nil {
		return nil, s.err
	}
	return s.hits, nil
}

func newSearchRouter(s NewsSearcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSearchHandler(s, nil, nil)
	r.GET("/api/search", h.Search)
	r.GET("/api/search/autocomplete", h.Autocomplete)
	return r
}

func TestSearchStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{
			name:       "index down maps to 503",
			path:       "/api/search?q=기준금리",
			err:        fmt.Errorf("%w: connection refused", search.ErrUnavailable),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "other failure stays 500",
			path:       "/api/search?q=기준금리",
			err:        errors.New("document import rejected"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "autocomplete index down maps to 503",
			path:       "/api/search/autocomplete?q=기준",
			err:        fmt.Errorf("%w: connection refused", search.ErrUnavailable),
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newSearchRouter(&stubSearcher{err: tt.err})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestSearchSuccess(t *testing.T) {
	stub := &stubSearcher{
		result: &search.Result{
			Hits:       []search.Hit{{ID: 7, Title: "기준금리 동결"}},
			TotalFound: 1,
		},
	}
	r := newSearchRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=기준금리&category=경제", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if stub.lastQuery != "기준금리" {
		t.Errorf("query passed = %q, want %q", stub.lastQuery, "기준금리")
	}
	if stub.lastCategory != "경제" {
		t.Errorf("category passed = %q, want %q", stub.lastCategory, "경제")
	}
}

func TestAutocompleteSuccess(t *testing.T) {
	r := newSearchRouter(&stubSearcher{
		hits: []search.Hit{{ID: 1, Title: "기준금리 동결"}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/search/autocomplete?q=기준", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var hits []search.Hit
	if err := json.Unmarshal(w.Body.Bytes(), &hits); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(hits) != 1 || hits[0].Title != "기준금리 동결" {
		t.Errorf("unexpected hits: %+v", hits)
	}
}

func TestSearchRejectsUnknownCategory(t *testing.T) {
	r := newSearchRouter(&stubSearcher{})

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=금리&category=nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
