package recommend

import (
	"math"
	"testing"
	"time"

	"github.com/newsloop/news-api/internal/vector"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestRankByCompositeBonusBlending(t *testing.T) {
	// A: distance 0.5 with top-1 bonus 0.3 → final 0.2
	// B: distance 0.3 with no bonus       → final 0.3
	// A must rank above B.
	taste := vector.Vector{1, 0, 0}
	affinity := BuildAffinity(sigs("경제", "경제", "경제"), nil)

	// cos distance to taste: 1 - cos(angle)
	pool := []Candidate{
		{ID: 1, Category: "경제", Vector: dirAt(0.5), UpdatedAt: baseTime},
		{ID: 2, Category: "정치", Vector: dirAt(0.3), UpdatedAt: baseTime},
	}

	items, err := rankByComposite(taste, affinity, pool)
	if err != nil {
		t.Fatalf("rankByComposite() error = %v", err)
	}

	if items[0].ArticleID != 1 || items[1].ArticleID != 2 {
		t.Fatalf("order = %v, want article 1 before article 2", items)
	}
	if math.Abs(items[0].Score-0.2) > 1e-6 {
		t.Errorf("final score of A = %v, want 0.2", items[0].Score)
	}
	if math.Abs(items[1].Score-0.3) > 1e-6 {
		t.Errorf("final score of B = %v, want 0.3", items[1].Score)
	}
}

// dirAt builds a unit vector whose cosine distance to [1,0,0] is exactly d.
func dirAt(d float64) vector.Vector {
	cos := 1 - d
	sin := math.Sqrt(1 - cos*cos)
	return vector.Vector{float32(cos), float32(sin), 0}
}

func TestRankByCompositeTieBreaks(t *testing.T) {
	taste := vector.Vector{1, 0, 0}
	affinity := Affinity{}

	older := baseTime.Add(-48 * time.Hour)
	pool := []Candidate{
		{ID: 30, Vector: vector.Vector{1, 0, 0}, UpdatedAt: older},
		{ID: 20, Vector: vector.Vector{1, 0, 0}, UpdatedAt: baseTime},
		{ID: 10, Vector: vector.Vector{1, 0, 0}, UpdatedAt: baseTime},
	}

	items, err := rankByComposite(taste, affinity, pool)
	if err != nil {
		t.Fatalf("rankByComposite() error = %v", err)
	}

	// Equal scores: most recent first, then lower ID.
	wantOrder := []int64{10, 20, 30}
	for i, want := range wantOrder {
		if items[i].ArticleID != want {
			t.Errorf("items[%d] = %d, want %d (full order %v)", i, items[i].ArticleID, want, items)
		}
	}
}

func TestRankByCompositeDimensionMismatch(t *testing.T) {
	taste := vector.Vector{1, 0, 0}
	pool := []Candidate{
		{ID: 1, Vector: vector.Vector{1, 0}, UpdatedAt: baseTime},
	}
	if _, err := rankByComposite(taste, Affinity{}, pool); err == nil {
		t.Fatal("expected dimension mismatch error, got nil")
	}
}

func TestRankByCategory(t *testing.T) {
	affinity := BuildAffinity(sigs("경제", "경제", "정치"), nil)

	pool := []Candidate{
		{ID: 1, Category: "문화", UpdatedAt: baseTime},
		{ID: 2, Category: "정치", UpdatedAt: baseTime.Add(-time.Hour)},
		{ID: 3, Category: "경제", UpdatedAt: baseTime.Add(-2 * time.Hour)},
		{ID: 4, Category: "경제", UpdatedAt: baseTime.Add(-time.Hour)},
	}

	items := rankByCategory(affinity, pool)

	// Preferred category band first (recency within band), then the rest.
	wantOrder := []int64{4, 3, 2, 1}
	for i, want := range wantOrder {
		if items[i].ArticleID != want {
			t.Fatalf("order = %v, want %v", items, wantOrder)
		}
	}

	if items[0].Score != 0.3 {
		t.Errorf("top bonus = %v, want 0.3", items[0].Score)
	}
	if items[3].Score != 0 {
		t.Errorf("unranked bonus = %v, want 0", items[3].Score)
	}
}
