package quality

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-relax/internal/testutil"
)

func TestScoreTooShort(t *testing.T) {
	if got := Score([]float64{1, 2, 3, 4, 5}, []float64{1, 0.8, 0.6, 0.4, 0.2}); got != 0 {
		t.Fatalf("Score = %g, want 0", got)
	}
}

func TestScoreCleanDecay(t *testing.T) {
	tm := testutil.LinearTimes(0, 100, 100)
	g := testutil.StretchedDecay(tm, 1, 20, 1)
	b := Evaluate(tm, g)
	if b.Wiggle != 1 || b.Range != 1 {
		t.Fatalf("breakdown = %+v, want full range and wiggle", b)
	}
	if b.Total < 0.95 {
		t.Fatalf("Total = %g, want > 0.95", b.Total)
	}
	if Tier(b.Total) != High {
		t.Fatalf("Tier = %v, want High", Tier(b.Total))
	}
}

func TestScoreBounded(t *testing.T) {
	tm := testutil.LinearTimes(0, 1, 60)
	noise := testutil.GaussianNoise(7, 0.5, 60)
	for i := range noise {
		noise[i] += 1
	}
	s := Score(tm, noise)
	if s < 0 || s > 1 || math.IsNaN(s) {
		t.Fatalf("Score = %g out of [0,1]", s)
	}
	if Tier(s) == High {
		t.Fatalf("noisy curve scored High (%g)", s)
	}
}

func TestFlatCurve(t *testing.T) {
	tm := testutil.LinearTimes(0, 1, 20)
	g := make([]float64, 20)
	for i := range g {
		g[i] = 1
	}
	b := Evaluate(tm, g)
	// No noise, no range, no sign changes.
	if b.Noise != 1 || b.Range != 0 || b.Wiggle != 1 {
		t.Fatalf("breakdown = %+v", b)
	}
	if math.Abs(b.Total-0.6) > 1e-12 {
		t.Fatalf("Total = %g, want 0.6", b.Total)
	}
}

func TestRisingCurvePenalised(t *testing.T) {
	tm := testutil.LinearTimes(0, 1, 20)
	g := make([]float64, 20)
	for i := range g {
		g[i] = 1 + 0.02*float64(i)/19
	}
	b := Evaluate(tm, g)
	if math.Abs(b.Range+0.2) > 1e-9 {
		t.Fatalf("Range = %g, want -0.2", b.Range)
	}
	want := 0.4*b.Noise + 0.4*b.Range + 0.2*b.Wiggle
	if math.Abs(b.Total-want) > 1e-12 {
		t.Fatalf("Total = %g, want %g", b.Total, want)
	}
	if b.Total >= 0.6 {
		t.Fatalf("Total = %g, want below the flat-curve score 0.6", b.Total)
	}
}

func TestTier(t *testing.T) {
	cases := []struct {
		score float64
		want  Level
	}{
		{0.95, High},
		{0.851, High},
		{0.85, Moderate},
		{0.51, Moderate},
		{0.50, Low},
		{0, Low},
	}
	for _, tc := range cases {
		if got := Tier(tc.score); got != tc.want {
			t.Errorf("Tier(%g) = %v, want %v", tc.score, got, tc.want)
		}
	}
}
