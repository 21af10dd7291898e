// Package recommend implements the personalized recommendation ranking
// engine: it turns a user's recent engagement signals (likes, views) into a
// total order over a candidate article pool, degrading through a fixed
// fallback chain when signals or content vectors are missing. The engine is
// stateless per request and always produces a ranking.
package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/newsloop/news-api/internal/vector"
)

// Candidate is one article eligible for ranking. Vector is nil when the
// article has no embedding; the fallback chain routes such candidates to a
// non-vector strategy instead of dropping them.
type Candidate struct {
	ID        int64
	Category  string
	Vector    vector.Vector
	ViewCount int64
	LikeCount int64
	UpdatedAt time.Time
}

// Signal is one preference event joined with the attributes of the article it
// refers to. Slices of signals are always ordered most-recent-first.
type Signal struct {
	ArticleID int64
	Category  string
	Vector    vector.Vector
	At        time.Time
}

// RankedItem is one entry of the final ordering.
type RankedItem struct {
	ArticleID int64   `json:"article_id"`
	Score     float64 `json:"score"`
}

// Strategy identifies which state of the fallback chain produced a result.
type Strategy string

const (
	StrategyPersonalizedVector   Strategy = "personalized_vector"
	StrategyPersonalizedCategory Strategy = "personalized_category"
	StrategyPopularity           Strategy = "popularity"
	StrategyRecency              Strategy = "recency"
)

// Result is the ordered output of one ranking request. Items is a total
// order: deterministic given identical inputs.
type Result struct {
	Strategy Strategy     `json:"strategy"`
	Items    []RankedItem `json:"items"`
}

// SignalSource supplies a user's recent preference events. An empty slice is
// the valid "no signal" state, not an error; errors mean the upstream data
// source is unavailable.
type SignalSource interface {
	// RecentLikes returns up to limit Like signals, most recent first.
	RecentLikes(ctx context.Context, userID int64, limit int) ([]Signal, error)
	// RecentViews returns up to limit View signals, most recent first.
	RecentViews(ctx context.Context, userID int64, limit int) ([]Signal, error)
}

// ErrNoSignal marks a precondition failure of a personalization stage: the
// required engagement signal does not exist. The chain escalates on it.
var ErrNoSignal = errors.New("no usable preference signal")
