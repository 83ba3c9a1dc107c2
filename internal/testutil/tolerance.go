package testutil

import (
	"math"
	"testing"
)

// RequireNearlyEqual fails t if got and want differ by more than eps
// (absolute tolerance).
func RequireNearlyEqual(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if diff := math.Abs(got - want); diff > eps {
		t.Fatalf("%s: got %v, want %v (diff %v > eps %v)", name, got, want, diff, eps)
	}
}

// RequireFinite fails t if any value is NaN or Inf.
func RequireFinite(t *testing.T, name string, values ...float64) {
	t.Helper()
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("%s: value %d is non-finite: %v", name, i, v)
		}
	}
}

// AbsErrors returns |fn(a, b) - a*b| for every operand pair of a width-bit
// domain, row-major. It is a scalar reference for SIMD metric reductions.
func AbsErrors(width int, fn func(a, b uint32) uint32) []float64 {
	size := uint32(1) << uint(width)
	out := make([]float64, 0, size*size)
	for a := uint32(0); a < size; a++ {
		for b := uint32(0); b < size; b++ {
			out = append(out, math.Abs(float64(fn(a, b))-float64(a*b)))
		}
	}
	return out
}

// MeanMax returns the arithmetic mean and maximum of x.
// Returns zeros for an empty slice.
func MeanMax(x []float64) (mean, max float64) {
	if len(x) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range x {
		sum += v
		if v > max {
			max = v
		}
	}
	return sum / float64(len(x)), max
}
