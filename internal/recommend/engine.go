package recommend

import (
	"context"
	"errors"
	"log"
	"time"
)

const (
	// DefaultLikeLimit bounds the recent-likes window used for personalization.
	DefaultLikeLimit = 10
	// DefaultViewLimit bounds the recent-views fallback signal.
	DefaultViewLimit = 20
)

// Engine is the fallback chain controller. It attempts ranking strategies
// from most- to least-personalized and always terminates with a valid total
// order; each state is attempted at most once per request.
//
// The engine holds no per-request state and is safe for concurrent use.
type Engine struct {
	signals   SignalSource
	likeLimit int
	viewLimit int
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithSignalWindows overrides the recent-likes and recent-views window sizes.
func WithSignalWindows(likes, views int) Option {
	return func(e *Engine) {
		if likes > 0 {
			e.likeLimit = likes
		}
		if views > 0 {
			e.viewLimit = views
		}
	}
}

// NewEngine builds an engine reading preference events from signals.
func NewEngine(signals SignalSource, opts ...Option) *Engine {
	e := &Engine{
		signals:   signals,
		likeLimit: DefaultLikeLimit,
		viewLimit: DefaultViewLimit,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Request carries one ranking invocation. The pool is already filtered by the
// caller (e.g. by category); the engine never filters by category itself.
type Request struct {
	UserID        int64
	Authenticated bool
	Pool          []Candidate
}

// Rank produces an ordering of the candidate pool. Escalation order:
//
//  1. personalized_vector: needs an authenticated user and at least one
//     liked article with a content vector
//  2. personalized_category: needs at least one liked or viewed article
//     with a category
//  3. popularity: anonymous default
//  4. recency: terminal, cannot fail
//
// Unexpected errors inside a state (malformed vectors, unavailable signal
// source) are logged and drive escalation instead of propagating; Rank always
// returns a result. Cancellation between stages degrades to the recency
// ordering rather than returning a partially computed ranking.
func (e *Engine) Rank(ctx context.Context, req Request) Result {
	if !req.Authenticated {
		return e.rankAnonymous(req.Pool)
	}

	likes, err := e.signals.RecentLikes(ctx, req.UserID, e.likeLimit)
	if err != nil {
		log.Printf("recommend: likes unavailable for user %d, falling back to recency: %v", req.UserID, err)
		return Result{Strategy: StrategyRecency, Items: rankByRecency(req.Pool)}
	}
	views, err := e.signals.RecentViews(ctx, req.UserID, e.viewLimit)
	if err != nil {
		log.Printf("recommend: views unavailable for user %d, falling back to recency: %v", req.UserID, err)
		return Result{Strategy: StrategyRecency, Items: rankByRecency(req.Pool)}
	}

	if ctx.Err() != nil {
		return Result{Strategy: StrategyRecency, Items: rankByRecency(req.Pool)}
	}

	if res, ok := e.personalizedVector(likes, views, req); ok {
		return res
	}

	if ctx.Err() != nil {
		return Result{Strategy: StrategyRecency, Items: rankByRecency(req.Pool)}
	}

	if res, ok := personalizedCategory(likes, views, req.Pool); ok {
		return res
	}

	if ctx.Err() != nil {
		return Result{Strategy: StrategyRecency, Items: rankByRecency(req.Pool)}
	}

	return e.rankAnonymous(req.Pool)
}

// personalizedVector is state 1: taste vector → similarity → composite score.
func (e *Engine) personalizedVector(likes, views []Signal, req Request) (Result, bool) {
	taste, err := TasteVector(likes)
	if errors.Is(err, ErrNoSignal) {
		return Result{}, false
	}
	if err != nil {
		log.Printf("recommend: taste vector for user %d: %v", req.UserID, err)
		return Result{}, false
	}

	// No self-recommendation: the liked articles that built the taste vector
	// never appear in the output. Vectorless candidates are routed to a lower
	// state, not scored here.
	liked := make(map[int64]struct{}, len(likes))
	for _, s := range likes {
		liked[s.ArticleID] = struct{}{}
	}

	eligible := make([]Candidate, 0, len(req.Pool))
	for _, c := range req.Pool {
		if _, isLiked := liked[c.ID]; isLiked {
			continue
		}
		if c.Vector.IsZero() {
			continue
		}
		eligible = append(eligible, c)
	}
	if len(eligible) == 0 {
		return Result{}, false
	}

	items, err := rankByComposite(taste, BuildAffinity(likes, views), eligible)
	if err != nil {
		log.Printf("recommend: composite ranking for user %d: %v", req.UserID, err)
		return Result{}, false
	}

	return Result{Strategy: StrategyPersonalizedVector, Items: items}, true
}

// personalizedCategory is state 2: affinity as a direct ranking key.
func personalizedCategory(likes, views []Signal, pool []Candidate) (Result, bool) {
	affinity := BuildAffinity(likes, views)
	if affinity.Empty() {
		return Result{}, false
	}
	return Result{
		Strategy: StrategyPersonalizedCategory,
		Items:    rankByCategory(affinity, pool),
	}, true
}

// rankAnonymous is states 3 and 4: popularity with a recency terminal.
// Popularity has no precondition beyond the pool itself, so recency only
// surfaces for callers that degrade explicitly (cancellation, upstream
// failure) or an empty engagement landscape folded into equal scores.
func (e *Engine) rankAnonymous(pool []Candidate) Result {
	return Result{Strategy: StrategyPopularity, Items: rankByPopularity(pool, e.now())}
}
