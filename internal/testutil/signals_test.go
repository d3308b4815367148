package testutil

import (
	"math"
	"testing"
)

func TestGaussianNoiseDeterministic(t *testing.T) {
	a := GaussianNoise(42, 0.01, 64)
	b := GaussianNoise(42, 0.01, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
}

func TestGaussianNoiseDifferentSeeds(t *testing.T) {
	a := GaussianNoise(1, 1, 16)
	b := GaussianNoise(2, 1, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestLinearTimes(t *testing.T) {
	got := LinearTimes(0, 10, 11)
	for i, v := range got {
		if math.Abs(v-float64(i)) > 1e-12 {
			t.Fatalf("times[%d] = %v, want %d", i, v, i)
		}
	}
}

func TestStretchedDecay(t *testing.T) {
	g := StretchedDecay([]float64{0, 10}, 2, 10, 1)
	if g[0] != 2 {
		t.Fatalf("g[0] = %v, want 2", g[0])
	}
	if math.Abs(g[1]-2/math.E) > 1e-12 {
		t.Fatalf("g[1] = %v, want 2/e", g[1])
	}
}

func TestAddInPlace(t *testing.T) {
	dst := []float64{1, 1, 1}
	AddInPlace(dst, []float64{0.5, -0.5})
	if dst[0] != 1.5 || dst[1] != 0.5 || dst[2] != 1 {
		t.Fatalf("unexpected dst: %#v", dst)
	}
}
