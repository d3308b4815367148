package testutil

import "testing"

func TestRequireSliceNearlyEqual(t *testing.T) {
	got := StretchedDecay([]float64{0, 1, 10}, 1, 5, 1)
	want := []float64{1, 0.8187307530779818, 0.1353352832366127}
	RequireSliceNearlyEqual(t, got, want, 1e-12)
	RequireSliceNearlyEqual(t, nil, nil, 0)
}

func TestRequireHelpersPass(t *testing.T) {
	RequireStrictlyIncreasing(t, []float64{1e-6, 1, 2.5})
	RequireStrictlyIncreasing(t, LinearTimes(0, 1, 5))
	RequireRelative(t, "tau", 52, 50, 0.1)
	RequireRelative(t, "zero", 0, 0, 0)
	RequireFinite(t, []float64{0, 1, -1})
}
