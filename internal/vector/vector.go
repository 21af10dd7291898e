// Package vector defines the fixed-dimension content vector used for
// similarity comparison between articles. A vector is either fully present
// or entirely absent (nil); partial vectors do not exist.
package vector

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch indicates two vectors of different dimensionality were
// compared. This is corrupt data, never a recoverable ranking condition, and
// callers must not coerce past it.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Vector is a fixed-dimension embedding. Nil means "no vector".
type Vector []float32

// Dim returns the dimensionality of the vector (0 for absent vectors).
func (v Vector) Dim() int { return len(v) }

// IsZero reports whether the vector is absent.
func (v Vector) IsZero() bool { return len(v) == 0 }

// CosineDistance returns 1 - cosine_similarity between a and b.
// Range is [0, 2]: 0 = identical direction, 2 = opposite direction.
// Vectors of different dimensions fail loud with ErrDimensionMismatch.
// A zero-magnitude vector has no direction; it is treated as orthogonal to
// everything (distance 1).
func CosineDistance(a, b Vector) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("%w: empty vector (dims %d and %d)", ErrDimensionMismatch, len(a), len(b))
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 1, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Clamp floating point drift so distance stays in [0, 2].
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}

	return 1 - sim, nil
}
