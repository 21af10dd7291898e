package recommend

import (
	"fmt"

	"github.com/newsloop/news-api/internal/vector"
)

// weightFloor bounds recency weights below so no signal is fully discarded.
const weightFloor = 0.1

// recencyWeight returns the weight of the i-th most recent liked article
// (i = 0, 1, 2, ...): w_i = max(1.0 - 0.1*i, 0.1). Weights are strictly
// non-increasing in i and never reach zero.
func recencyWeight(i int) float64 {
	w := 1.0 - 0.1*float64(i)
	if w < weightFloor {
		return weightFloor
	}
	return w
}

// TasteVector aggregates the content vectors of recently liked articles into
// a single recency-weighted average. Signals without a vector are skipped
// (they still feed category affinity elsewhere); the surviving signals keep
// their recency order and are weighted by recencyWeight.
//
// Returns ErrNoSignal when no liked article carries a vector; the taste
// vector is then undefined and the caller escalates. Returns
// vector.ErrDimensionMismatch when liked vectors disagree on dimension.
func TasteVector(likes []Signal) (vector.Vector, error) {
	var (
		acc  []float64
		sumW float64
		dim  int
		rank int
	)

	for _, s := range likes {
		if s.Vector.IsZero() {
			continue
		}
		if acc == nil {
			dim = s.Vector.Dim()
			acc = make([]float64, dim)
		} else if s.Vector.Dim() != dim {
			return nil, fmt.Errorf("%w: liked article %d has dim %d, expected %d",
				vector.ErrDimensionMismatch, s.ArticleID, s.Vector.Dim(), dim)
		}

		w := recencyWeight(rank)
		rank++
		sumW += w
		for i, v := range s.Vector {
			acc[i] += w * float64(v)
		}
	}

	if acc == nil {
		return nil, ErrNoSignal
	}

	taste := make(vector.Vector, dim)
	for i, v := range acc {
		taste[i] = float32(v / sumW)
	}
	return taste, nil
}
