package recommend

import (
	"sort"

	"github.com/newsloop/news-api/internal/vector"
)

// rankByComposite scores candidates against the taste vector and blends in
// the category bonus: final = cosine_distance - bonus, lower ranks higher.
// The bonus reduces effective distance so preferred-category articles move up
// without making similarity irrelevant.
//
// Candidates without a vector must already have been excluded by the caller.
// A dimension mismatch anywhere fails the whole attempt (corrupt data; the
// chain escalates rather than ranking on partial scores).
func rankByComposite(taste vector.Vector, affinity Affinity, pool []Candidate) ([]RankedItem, error) {
	type scored struct {
		cand     Candidate
		distance float64
		final    float64
	}

	scoredPool := make([]scored, 0, len(pool))
	for _, c := range pool {
		dist, err := vector.CosineDistance(taste, c.Vector)
		if err != nil {
			return nil, err
		}
		scoredPool = append(scoredPool, scored{
			cand:     c,
			distance: dist,
			final:    dist - affinity.Bonus(c.Category),
		})
	}

	// Total order: final asc, then raw distance asc, then most recent first,
	// then ID asc. The last key makes equal inputs byte-identical.
	sort.Slice(scoredPool, func(i, j int) bool {
		a, b := scoredPool[i], scoredPool[j]
		if a.final != b.final {
			return a.final < b.final
		}
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		if !a.cand.UpdatedAt.Equal(b.cand.UpdatedAt) {
			return a.cand.UpdatedAt.After(b.cand.UpdatedAt)
		}
		return a.cand.ID < b.cand.ID
	})

	items := make([]RankedItem, len(scoredPool))
	for i, s := range scoredPool {
		items[i] = RankedItem{ArticleID: s.cand.ID, Score: s.final}
	}
	return items, nil
}

// rankByCategory is the fallback ranking mode of the affinity estimator:
// candidates in a preferred category come first (most preferred category
// first), then everything else; recency orders within each band. The reported
// score is the category bonus.
func rankByCategory(affinity Affinity, pool []Candidate) []RankedItem {
	ordered := make([]Candidate, len(pool))
	copy(ordered, pool)

	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		ra, rb := affinity.Rank(a.Category), affinity.Rank(b.Category)
		if ra != rb {
			return ra < rb
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.ID < b.ID
	})

	items := make([]RankedItem, len(ordered))
	for i, c := range ordered {
		items[i] = RankedItem{ArticleID: c.ID, Score: affinity.Bonus(c.Category)}
	}
	return items
}
