package vector

import (
	"errors"
	"math"
	"testing"
)

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name string
		a    Vector
		b    Vector
		want float64
	}{
		{
			name: "identical direction",
			a:    Vector{1, 0, 0},
			b:    Vector{2, 0, 0},
			want: 0,
		},
		{
			name: "orthogonal",
			a:    Vector{1, 0, 0},
			b:    Vector{0, 1, 0},
			want: 1,
		},
		{
			name: "opposite direction",
			a:    Vector{1, 0, 0},
			b:    Vector{-1, 0, 0},
			want: 2,
		},
		{
			name: "zero magnitude treated as orthogonal",
			a:    Vector{0, 0, 0},
			b:    Vector{1, 2, 3},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineDistance(tt.a, tt.b)
			if err != nil {
				t.Fatalf("CosineDistance() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineDistance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineDistanceDimensionMismatch(t *testing.T) {
	t.Run("different dimensions", func(t *testing.T) {
		_, err := CosineDistance(Vector{1, 2}, Vector{1, 2, 3})
		if !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("expected ErrDimensionMismatch, got %v", err)
		}
	})

	t.Run("empty vector", func(t *testing.T) {
		_, err := CosineDistance(nil, Vector{1, 2, 3})
		if !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("expected ErrDimensionMismatch, got %v", err)
		}
	})
}

func TestCosineDistanceRange(t *testing.T) {
	// Distance must always stay in [0, 2] even with floating point drift.
	a := Vector{0.1, 0.1, 0.1}
	b := Vector{0.1, 0.1, 0.1}
	got, err := CosineDistance(a, b)
	if err != nil {
		t.Fatalf("CosineDistance() error = %v", err)
	}
	if got < 0 || got > 2 {
		t.Errorf("CosineDistance() = %v, outside [0, 2]", got)
	}
}
