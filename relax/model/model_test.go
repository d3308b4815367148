package model

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEvaluateAtZero(t *testing.T) {
	cases := []struct {
		m Model
		p []float64
	}{
		{Maxwell{}, []float64{1, 10}},
		{SingleStretched{}, []float64{1, 10, 0.6}},
		{DualStretched{}, []float64{1, 0.3, 1, 0.8, 100, 0.5}},
	}
	for _, tc := range cases {
		t.Run(tc.m.Name(), func(t *testing.T) {
			if got := tc.m.Evaluate(0, tc.p); math.Abs(got-1) > 1e-12 {
				t.Fatalf("Evaluate(0) = %g, want 1", got)
			}
			if got := tc.m.Evaluate(1e9, tc.p); got > 1e-6 {
				t.Fatalf("Evaluate(1e9) = %g, want ~0", got)
			}
		})
	}
}

func TestEvaluateValues(t *testing.T) {
	if got, want := (Maxwell{}).Evaluate(10, []float64{1, 10}), math.Exp(-1); math.Abs(got-want) > 1e-15 {
		t.Fatalf("Maxwell = %g, want %g", got, want)
	}
	if got, want := (SingleStretched{}).Evaluate(40, []float64{1, 10, 0.5}), math.Exp(-2); math.Abs(got-want) > 1e-15 {
		t.Fatalf("SingleStretched = %g, want %g", got, want)
	}
	// Negative time uses |t|.
	if got, want := (SingleStretched{}).Evaluate(-40, []float64{1, 10, 0.5}), math.Exp(-2); math.Abs(got-want) > 1e-15 {
		t.Fatalf("SingleStretched(-t) = %g, want %g", got, want)
	}
	got := (DualStretched{}).Evaluate(10, []float64{0.9, 0.25, 10, 1, 20, 1})
	want := 0.9 * (0.25*math.Exp(-1) + 0.75*math.Exp(-0.5))
	if math.Abs(got-want) > 1e-15 {
		t.Fatalf("DualStretched = %g, want %g", got, want)
	}
	if got, want := (Maxwell{}).Evaluate(10, []float64{0.97, 10}), 0.97*math.Exp(-1); math.Abs(got-want) > 1e-15 {
		t.Fatalf("scaled Maxwell = %g, want %g", got, want)
	}
}

func TestTauFloor(t *testing.T) {
	got := (Maxwell{}).Evaluate(1, []float64{1, 0})
	if math.IsNaN(got) || got != 0 {
		t.Fatalf("Evaluate with tau=0 = %g, want 0", got)
	}
}

func TestArityCountsShapeParams(t *testing.T) {
	want := map[string]int{"Maxwell": 1, "SingleStretched": 2, "DualStretched": 5}
	for _, m := range All() {
		if m.Arity() != want[m.Name()] {
			t.Fatalf("%s: Arity = %d, want %d", m.Name(), m.Arity(), want[m.Name()])
		}
	}
}

func TestArityMatchesNamesAndBounds(t *testing.T) {
	for _, m := range All() {
		lo, hi := m.Bounds()
		n := len(m.ParamNames())
		if n != m.Arity()+1 || len(lo) != n || len(hi) != n {
			t.Fatalf("%s: arity %d, names %d, bounds %d/%d", m.Name(), m.Arity(), n, len(lo), len(hi))
		}
		if m.ParamNames()[0] != ParamG0 || lo[0] != 0 || hi[0] != 2 {
			t.Fatalf("%s: amplitude %s in [%g,%g], want G0 in [0,2]", m.Name(), m.ParamNames()[0], lo[0], hi[0])
		}
		g := m.InitialGuess([]float64{1, 2, 3, 4, 5, 6, 7, 8}, []float64{1, 0.8, 0.6, 0.4, 0.3, 0.2, 0.1, 0.05}, nil)
		for i, v := range g {
			if v < lo[i] || v > hi[i] {
				t.Fatalf("%s: guess %s=%g outside [%g,%g]", m.Name(), m.ParamNames()[i], v, lo[i], hi[i])
			}
		}
	}
}

func TestAllOrder(t *testing.T) {
	var got []string
	for _, m := range All() {
		got = append(got, m.Name())
	}
	want := []string{"Maxwell", "SingleStretched", "DualStretched"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("All() order mismatch (-want +got):\n%s", diff)
	}
}

func TestOneOverEGuess(t *testing.T) {
	tm := []float64{1, 2, 3, 4}
	g := []float64{1, 0.5, 0.3, 0.1}
	if got := (Maxwell{}).InitialGuess(tm, g, nil)[1]; got != 3 {
		t.Fatalf("tau guess = %g, want 3", got)
	}
	// Never crosses: last time.
	if got := (Maxwell{}).InitialGuess(tm, []float64{1, 0.9, 0.8, 0.7}, nil)[1]; got != 4 {
		t.Fatalf("tau guess = %g, want 4", got)
	}
}

func TestDualGuessSeeded(t *testing.T) {
	tm := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	g := make([]float64, len(tm))
	seed := Params{ParamG0: 0.98, ParamTau: 100, ParamBeta: 0.7}
	p := (DualStretched{}).InitialGuess(tm, g, seed)
	if p[0] != 0.98 {
		t.Fatalf("amplitude = %g, want seed G0 0.98", p[0])
	}
	if p[3] != 0.7 || p[5] != 0.7 {
		t.Fatalf("betas = %g,%g, want seed beta 0.7", p[3], p[5])
	}
	if !(p[2] <= 100 && 100 <= p[4]) {
		t.Fatalf("tau1=%g tau2=%g do not bracket seed tau", p[2], p[4])
	}
}

func TestDualCanonical(t *testing.T) {
	d := DualStretched{}
	p := Params{ParamG0: 1, ParamFrac: 0.2, ParamTau1: 50, ParamBeta1: 0.9, ParamTau2: 5, ParamBeta2: 0.4}
	got := d.Canonical(p)
	want := Params{ParamG0: 1, ParamFrac: 0.8, ParamTau1: 5, ParamBeta1: 0.4, ParamTau2: 50, ParamBeta2: 0.9}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Canonical mismatch (-want +got):\n%s", diff)
	}
	// The curve is unchanged by the swap.
	names := d.ParamNames()
	for _, x := range []float64{0.1, 3, 40, 500} {
		a := d.Evaluate(x, p.Values(names))
		b := d.Evaluate(x, got.Values(names))
		if math.Abs(a-b) > 1e-14 {
			t.Fatalf("t=%g: %g != %g", x, a, b)
		}
	}
	if tau, ok := d.CharacteristicTime(p); !ok || tau != 5 {
		t.Fatalf("CharacteristicTime = %g,%v, want 5", tau, ok)
	}
}

func TestDualCharacteristicTimeSkipsSpuriousModes(t *testing.T) {
	d := DualStretched{}
	cases := []struct {
		name   string
		p      Params
		want   float64
		wantOK bool
		degen  bool
	}{
		{"both modes", Params{ParamG0: 1, ParamFrac: 0.4, ParamTau1: 5, ParamBeta1: 0.8, ParamTau2: 80, ParamBeta2: 0.6}, 5, true, false},
		{"fast mode negligible", Params{ParamG0: 1, ParamFrac: 0.0013, ParamTau1: 2, ParamBeta1: 0.8, ParamTau2: 50, ParamBeta2: 0.7}, 50, true, true},
		{"fast mode pinned", Params{ParamG0: 1, ParamFrac: 0.3, ParamTau1: 1e-9, ParamBeta1: 0.8, ParamTau2: 50, ParamBeta2: 0.7}, 50, true, true},
		{"swapped pinned", Params{ParamG0: 1, ParamFrac: 0.998, ParamTau1: 50, ParamBeta1: 0.7, ParamTau2: 1e-9, ParamBeta2: 0.8}, 50, true, true},
		{"slow mode negligible", Params{ParamG0: 1, ParamFrac: 0.99, ParamTau1: 20, ParamBeta1: 0.7, ParamTau2: 900, ParamBeta2: 0.5}, 20, true, true},
		{"no real mode", Params{ParamG0: 1, ParamFrac: 0.5, ParamTau1: 1e-9, ParamBeta1: 0.7, ParamTau2: 1e12, ParamBeta2: 0.5}, 0, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := d.CharacteristicTime(tc.p)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("CharacteristicTime = %g,%v, want %g,%v", got, ok, tc.want, tc.wantOK)
			}
			if d.Degenerate(tc.p) != tc.degen {
				t.Fatalf("Degenerate = %v, want %v", !tc.degen, tc.degen)
			}
		})
	}
}

func TestParams(t *testing.T) {
	p := NewParams([]string{"a", "b"}, []float64{1})
	if v, ok := p.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %g,%v", v, ok)
	}
	if _, ok := p.Get("b"); ok {
		t.Fatal("Get(b) reported NaN value as present")
	}
	if _, ok := p.Get("c"); ok {
		t.Fatal("Get(c) reported missing value as present")
	}
	vals := p.Values([]string{"a", "c"})
	if vals[0] != 1 || !math.IsNaN(vals[1]) {
		t.Fatalf("Values = %v", vals)
	}
}

func TestParseKind(t *testing.T) {
	for _, m := range All() {
		k, err := ParseKind(m.Name())
		if err != nil || k != m.Kind() {
			t.Fatalf("ParseKind(%q) = %v,%v", m.Name(), k, err)
		}
		fm, err := ForKind(k)
		if err != nil || fm.Name() != m.Name() {
			t.Fatalf("ForKind(%v) = %v,%v", k, fm, err)
		}
	}
	if _, err := ParseKind("maxwell"); err == nil {
		t.Fatal("expected error for lowercase name")
	}
}
