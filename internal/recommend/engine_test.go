package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/newsloop/news-api/internal/vector"
)

// fakeSignals is an in-memory SignalSource for engine tests.
type fakeSignals struct {
	likes []Signal
	views []Signal
	err   error
}

func (f *fakeSignals) RecentLikes(_ context.Context, _ int64, limit int) ([]Signal, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.likes) > limit {
		return f.likes[:limit], nil
	}
	return f.likes, nil
}

func (f *fakeSignals) RecentViews(_ context.Context, _ int64, limit int) ([]Signal, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.views) > limit {
		return f.views[:limit], nil
	}
	return f.views, nil
}

func newTestEngine(signals SignalSource) *Engine {
	e := NewEngine(signals)
	e.now = func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }
	return e
}

func testPool() []Candidate {
	updated := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	return []Candidate{
		{ID: 101, Category: "경제", Vector: vector.Vector{1, 0, 0}, ViewCount: 10, UpdatedAt: updated},
		{ID: 102, Category: "정치", Vector: vector.Vector{0, 1, 0}, ViewCount: 50, UpdatedAt: updated.Add(-time.Hour)},
		{ID: 103, Category: "스포츠", ViewCount: 200, LikeCount: 10, UpdatedAt: updated.Add(-48 * time.Hour)},
	}
}

func TestRankPersonalizedVector(t *testing.T) {
	signals := &fakeSignals{
		likes: []Signal{
			{ArticleID: 1, Category: "경제", Vector: vector.Vector{1, 0, 0}},
		},
	}
	e := newTestEngine(signals)

	res := e.Rank(context.Background(), Request{UserID: 7, Authenticated: true, Pool: testPool()})

	if res.Strategy != StrategyPersonalizedVector {
		t.Fatalf("Strategy = %q, want %q", res.Strategy, StrategyPersonalizedVector)
	}
	// Article 103 has no vector and must be excluded from vector ranking.
	for _, item := range res.Items {
		if item.ArticleID == 103 {
			t.Error("vectorless candidate leaked into personalized_vector ranking")
		}
	}
	// 101 matches the taste direction and the preferred category: it wins.
	if res.Items[0].ArticleID != 101 {
		t.Errorf("top item = %d, want 101", res.Items[0].ArticleID)
	}
}

func TestRankNoSelfRecommendation(t *testing.T) {
	pool := testPool()
	signals := &fakeSignals{
		likes: []Signal{
			// The user already liked pool article 101.
			{ArticleID: 101, Category: "경제", Vector: vector.Vector{1, 0, 0}},
			{ArticleID: 1, Category: "경제", Vector: vector.Vector{0.9, 0.1, 0}},
		},
	}
	e := newTestEngine(signals)

	res := e.Rank(context.Background(), Request{UserID: 7, Authenticated: true, Pool: pool})

	if res.Strategy != StrategyPersonalizedVector {
		t.Fatalf("Strategy = %q, want %q", res.Strategy, StrategyPersonalizedVector)
	}
	for _, item := range res.Items {
		if item.ArticleID == 101 {
			t.Error("liked article recommended back to the user")
		}
	}
}

func TestRankEscalatesToCategory(t *testing.T) {
	// Likes exist but none carries a vector: state 1 is undefined, state 2
	// ranks by category affinity.
	signals := &fakeSignals{
		likes: []Signal{
			{ArticleID: 1, Category: "스포츠"},
			{ArticleID: 2, Category: "스포츠"},
		},
	}
	e := newTestEngine(signals)

	res := e.Rank(context.Background(), Request{UserID: 7, Authenticated: true, Pool: testPool()})

	if res.Strategy != StrategyPersonalizedCategory {
		t.Fatalf("Strategy = %q, want %q", res.Strategy, StrategyPersonalizedCategory)
	}
	if res.Items[0].ArticleID != 103 {
		t.Errorf("top item = %d, want the 스포츠 article 103", res.Items[0].ArticleID)
	}
}

func TestRankEscalatesToPopularity(t *testing.T) {
	// Zero likes and zero views: output must be identical to the popularity
	// ranking.
	e := newTestEngine(&fakeSignals{})

	res := e.Rank(context.Background(), Request{UserID: 7, Authenticated: true, Pool: testPool()})

	if res.Strategy != StrategyPopularity {
		t.Fatalf("Strategy = %q, want %q", res.Strategy, StrategyPopularity)
	}
	want := rankByPopularity(testPool(), e.now())
	if !reflect.DeepEqual(res.Items, want) {
		t.Errorf("Items = %v, want popularity ranking %v", res.Items, want)
	}
}

func TestRankAnonymous(t *testing.T) {
	e := newTestEngine(&fakeSignals{
		likes: []Signal{{ArticleID: 1, Category: "경제", Vector: vector.Vector{1, 0, 0}}},
	})

	res := e.Rank(context.Background(), Request{Authenticated: false, Pool: testPool()})

	if res.Strategy != StrategyPopularity {
		t.Fatalf("anonymous Strategy = %q, want %q", res.Strategy, StrategyPopularity)
	}
	// 103: 200 + 30 = 230, 102: 50 + 10(recent) = 60, 101: 10 + 10 = 20.
	if res.Items[0].ArticleID != 103 {
		t.Errorf("top item = %d, want 103", res.Items[0].ArticleID)
	}
}

func TestRankSignalSourceDownFallsBackToRecency(t *testing.T) {
	e := newTestEngine(&fakeSignals{err: errors.New("connection refused")})

	res := e.Rank(context.Background(), Request{UserID: 7, Authenticated: true, Pool: testPool()})

	if res.Strategy != StrategyRecency {
		t.Fatalf("Strategy = %q, want %q", res.Strategy, StrategyRecency)
	}
	wantOrder := []int64{101, 102, 103}
	for i, want := range wantOrder {
		if res.Items[i].ArticleID != want {
			t.Fatalf("order = %v, want %v", res.Items, wantOrder)
		}
	}
}

func TestRankCorruptVectorEscalates(t *testing.T) {
	// A dimension mismatch between liked vectors is logged and drives
	// escalation; the category signal still produces a ranking.
	signals := &fakeSignals{
		likes: []Signal{
			{ArticleID: 1, Category: "경제", Vector: vector.Vector{1, 0, 0}},
			{ArticleID: 2, Category: "경제", Vector: vector.Vector{1, 0}},
		},
	}
	e := newTestEngine(signals)

	res := e.Rank(context.Background(), Request{UserID: 7, Authenticated: true, Pool: testPool()})

	if res.Strategy != StrategyPersonalizedCategory {
		t.Fatalf("Strategy = %q, want %q", res.Strategy, StrategyPersonalizedCategory)
	}
	if len(res.Items) != len(testPool()) {
		t.Errorf("len(Items) = %d, want %d", len(res.Items), len(testPool()))
	}
}

func TestRankCancellationReturnsRecency(t *testing.T) {
	signals := &fakeSignals{
		likes: []Signal{{ArticleID: 1, Category: "경제", Vector: vector.Vector{1, 0, 0}}},
	}
	e := newTestEngine(signals)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := e.Rank(ctx, Request{UserID: 7, Authenticated: true, Pool: testPool()})

	if res.Strategy != StrategyRecency {
		t.Fatalf("Strategy after cancellation = %q, want %q", res.Strategy, StrategyRecency)
	}
}

func TestRankDeterministic(t *testing.T) {
	signals := &fakeSignals{
		likes: []Signal{
			{ArticleID: 1, Category: "경제", Vector: vector.Vector{0.5, 0.5, 0}},
			{ArticleID: 2, Category: "정치", Vector: vector.Vector{0.2, 0.8, 0}},
		},
		views: []Signal{{ArticleID: 3, Category: "스포츠"}},
	}
	e := newTestEngine(signals)
	req := Request{UserID: 7, Authenticated: true, Pool: testPool()}

	first := e.Rank(context.Background(), req)
	for i := 0; i < 5; i++ {
		again := e.Rank(context.Background(), req)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("non-deterministic output: %v vs %v", first, again)
		}
	}
}

func TestRankEmptyPool(t *testing.T) {
	e := newTestEngine(&fakeSignals{})

	res := e.Rank(context.Background(), Request{Pool: nil})

	if res.Strategy != StrategyPopularity {
		t.Fatalf("Strategy = %q, want %q", res.Strategy, StrategyPopularity)
	}
	if len(res.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(res.Items))
	}
}
