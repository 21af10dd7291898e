package search

import (
	"errors"
	"testing"

	"github.com/typesense/typesense-go/v3/typesense/api"
	"github.com/typesense/typesense-go/v3/typesense/api/pointer"
)

func TestTransformResult(t *testing.T) {
	doc := map[string]interface{}{
		"news_id":  float64(7),
		"title":    "기준금리 동결",
		"summary":  "요약",
		"category": "경제",
	}
	hits := []api.SearchResultHit{
		{Document: &doc, TextMatch: pointer.Int64(12345)},
		{Document: nil},
	}
	result := &api.SearchResult{
		Found: pointer.Int(2),
		Hits:  &hits,
	}

	out := transformResult(result)

	if out.TotalFound != 2 {
		t.Errorf("TotalFound = %d, expected 2", out.TotalFound)
	}
	if len(out.Hits) != 1 {
		t.Fatalf("hits = %d, expected 1 (nil document skipped)", len(out.Hits))
	}

	hit := out.Hits[0]
	if hit.ID != 7 {
		t.Errorf("ID = %d, expected 7", hit.ID)
	}
	if hit.Title != "기준금리 동결" || hit.Category != "경제" {
		t.Errorf("unexpected hit fields: %+v", hit)
	}
	if hit.Score != 12345 {
		t.Errorf("Score = %v, expected 12345", hit.Score)
	}
}

func TestTransformResultEmpty(t *testing.T) {
	out := transformResult(&api.SearchResult{})
	if out.TotalFound != 0 || len(out.Hits) != 0 {
		t.Errorf("empty result transformed to %+v", out)
	}
}

func TestAsInt64(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected int64
	}{
		{"json number", float64(42), 42},
		{"int64", int64(7), 7},
		{"int", 3, 3},
		{"string is zero", "42", 0},
		{"nil is zero", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := asInt64(tt.input); got != tt.expected {
				t.Errorf("asInt64(%v) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(errors.New("status: 404 response: not found")) {
		t.Error("404 error not recognized")
	}
	if !isNotFound(errors.New("collection Not Found")) {
		t.Error("Not Found error not recognized")
	}
	if isNotFound(errors.New("connection refused")) {
		t.Error("unrelated error treated as not found")
	}
	if isNotFound(nil) {
		t.Error("nil treated as not found")
	}
}

func TestNewClientCollection(t *testing.T) {
	c := NewClient("http://localhost:8108", "key", "")
	if c.collection != CollectionName {
		t.Errorf("empty collection = %q, want default %q", c.collection, CollectionName)
	}

	c = NewClient("http://localhost:8108", "key", "news_staging")
	if c.collection != "news_staging" {
		t.Errorf("collection = %q, want %q", c.collection, "news_staging")
	}
}
