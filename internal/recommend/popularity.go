package recommend

import (
	"sort"
	"time"
)

const (
	// likeWeight makes a like worth three views in the popularity score.
	likeWeight = 3
	// recencyBonus is added for articles updated inside recencyWindow.
	recencyBonus  = 10
	recencyWindow = 7 * 24 * time.Hour
)

// PopularityScore computes the engagement-based score used for anonymous
// ranking and the trending set:
//
//	view_count + 3*like_count + 10 if updated within the last 7 days.
func PopularityScore(c Candidate, now time.Time) float64 {
	score := float64(c.ViewCount + likeWeight*c.LikeCount)
	if now.Sub(c.UpdatedAt) <= recencyWindow {
		score += recencyBonus
	}
	return score
}

// rankByPopularity orders the pool by popularity score descending, ties going
// to the more recently updated article, then lower ID.
func rankByPopularity(pool []Candidate, now time.Time) []RankedItem {
	type scored struct {
		cand  Candidate
		score float64
	}

	scoredPool := make([]scored, len(pool))
	for i, c := range pool {
		scoredPool[i] = scored{cand: c, score: PopularityScore(c, now)}
	}

	sort.Slice(scoredPool, func(i, j int) bool {
		a, b := scoredPool[i], scoredPool[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if !a.cand.UpdatedAt.Equal(b.cand.UpdatedAt) {
			return a.cand.UpdatedAt.After(b.cand.UpdatedAt)
		}
		return a.cand.ID < b.cand.ID
	})

	items := make([]RankedItem, len(scoredPool))
	for i, s := range scoredPool {
		items[i] = RankedItem{ArticleID: s.cand.ID, Score: s.score}
	}
	return items
}

// rankByRecency is the terminal fallback: update timestamp descending. It has
// no precondition and cannot fail. The score is the update time in Unix
// seconds so callers still get a monotone ordering key.
func rankByRecency(pool []Candidate) []RankedItem {
	ordered := make([]Candidate, len(pool))
	copy(ordered, pool)

	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.ID < b.ID
	})

	items := make([]RankedItem, len(ordered))
	for i, c := range ordered {
		items[i] = RankedItem{ArticleID: c.ID, Score: float64(c.UpdatedAt.Unix())}
	}
	return items
}
