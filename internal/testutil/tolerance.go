package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t unless got and want have the same length
// and agree element-wise within the absolute tolerance eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	worst, at := 0.0, -1
	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > worst || math.IsNaN(d) {
			worst, at = d, i
		}
	}
	if at >= 0 && !(worst <= eps) {
		t.Fatalf("[%d] = %v, want %v (|diff| %.3g > %.3g)", at, got[at], want[at], worst, eps)
	}
}

// RequireFinite fails t on the first NaN or Inf in data.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("[%d] = %v, want finite", i, v)
		}
	}
}

// RequireStrictlyIncreasing fails t unless every element exceeds its
// predecessor.
func RequireStrictlyIncreasing(t *testing.T, data []float64) {
	t.Helper()
	for i := 1; i < len(data); i++ {
		if !(data[i] > data[i-1]) {
			t.Fatalf("[%d] = %v not above [%d] = %v", i, data[i], i-1, data[i-1])
		}
	}
}

// RequireRelative fails t if got deviates from want by more than frac of want.
func RequireRelative(t *testing.T, name string, got, want, frac float64) {
	t.Helper()
	if !(math.Abs(got-want) <= frac*math.Abs(want)) {
		t.Fatalf("%s = %v, want %v within %.0f%%", name, got, want, frac*100)
	}
}
