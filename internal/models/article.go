package models

import (
	"time"

	"github.com/newsloop/news-api/internal/vector"
)

// Article is one news article as stored in PostgreSQL. Embedding is nil when
// no content vector has been generated yet; consumers must handle the absent
// case explicitly.
type Article struct {
	ID        int64         `json:"news_id"`
	Title     string        `json:"title"`
	Author    string        `json:"author"`
	Link      string        `json:"link"`
	Summary   string        `json:"summary"`
	FullText  string        `json:"full_text,omitempty"`
	Category  string        `json:"category"`
	Keywords  string        `json:"keywords,omitempty"`
	Embedding vector.Vector `json:"-"`
	ViewCount int64         `json:"view_count"`
	LikeCount int64         `json:"like_count"`
	UpdatedAt time.Time     `json:"updated"`
}
