package recommend

import (
	"testing"
	"time"
)

func TestPopularityScore(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cand Candidate
		want float64
	}{
		{
			name: "views plus weighted likes, stale",
			cand: Candidate{ViewCount: 100, LikeCount: 5, UpdatedAt: now.Add(-10 * 24 * time.Hour)},
			want: 115,
		},
		{
			name: "recency bonus inside seven days",
			cand: Candidate{ViewCount: 50, LikeCount: 2, UpdatedAt: now.Add(-2 * 24 * time.Hour)},
			want: 66,
		},
		{
			name: "bonus boundary at exactly seven days",
			cand: Candidate{ViewCount: 10, UpdatedAt: now.Add(-7 * 24 * time.Hour)},
			want: 20,
		},
		{
			name: "no engagement",
			cand: Candidate{UpdatedAt: now.Add(-30 * 24 * time.Hour)},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PopularityScore(tt.cand, now); got != tt.want {
				t.Errorf("PopularityScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankByPopularityScenario(t *testing.T) {
	// A (view=100, like=5, updated 10 days ago) = 115
	// B (view=50, like=2, updated 2 days ago)   = 66
	// Expected order: [A, B].
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	pool := []Candidate{
		{ID: 2, ViewCount: 50, LikeCount: 2, UpdatedAt: now.Add(-2 * 24 * time.Hour)},
		{ID: 1, ViewCount: 100, LikeCount: 5, UpdatedAt: now.Add(-10 * 24 * time.Hour)},
	}

	items := rankByPopularity(pool, now)

	if items[0].ArticleID != 1 || items[1].ArticleID != 2 {
		t.Fatalf("order = %v, want article 1 before article 2", items)
	}
	if items[0].Score != 115 || items[1].Score != 66 {
		t.Errorf("scores = [%v, %v], want [115, 66]", items[0].Score, items[1].Score)
	}
}

func TestRankByPopularityTieBreak(t *testing.T) {
	now := time.Now()
	pool := []Candidate{
		{ID: 1, ViewCount: 10, UpdatedAt: now.Add(-48 * time.Hour)},
		{ID: 2, ViewCount: 10, UpdatedAt: now.Add(-24 * time.Hour)},
	}

	items := rankByPopularity(pool, now)
	if items[0].ArticleID != 2 {
		t.Errorf("tie must go to the more recently updated article, got %v", items)
	}
}

func TestRankByRecency(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	pool := []Candidate{
		{ID: 3, UpdatedAt: now.Add(-time.Hour)},
		{ID: 1, UpdatedAt: now},
		{ID: 2, UpdatedAt: now},
	}

	items := rankByRecency(pool)

	wantOrder := []int64{1, 2, 3}
	for i, want := range wantOrder {
		if items[i].ArticleID != want {
			t.Fatalf("order = %v, want %v", items, wantOrder)
		}
	}
}
