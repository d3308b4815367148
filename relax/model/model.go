package model

import (
	"fmt"
	"math"
)

// Kind identifies a decay model variant.
type Kind int

// Model kinds in the order fits are attempted.
const (
	KindMaxwell Kind = iota
	KindSingleStretched
	KindDualStretched
)

// String returns the model name used as a key in fit results.
func (k Kind) String() string {
	switch k {
	case KindMaxwell:
		return "Maxwell"
	case KindSingleStretched:
		return "SingleStretched"
	case KindDualStretched:
		return "DualStretched"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind resolves a model name as produced by Kind.String. Matching is
// exact.
func ParseKind(name string) (Kind, error) {
	for _, k := range []Kind{KindMaxwell, KindSingleStretched, KindDualStretched} {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("model: unknown model %q", name)
}

// Parameter names shared by the variants. Every variant leads with the
// fitted amplitude ParamG0.
const (
	ParamG0    = "G0"
	ParamTau   = "tau"
	ParamBeta  = "beta"
	ParamFrac  = "f"
	ParamTau1  = "tau1"
	ParamBeta1 = "beta1"
	ParamTau2  = "tau2"
	ParamBeta2 = "beta2"
)

const (
	// TauFloor is the smallest time constant used inside an exponent.
	TauFloor = 1e-12

	// MinModeWeight is the smallest fraction of the amplitude a dual mode
	// must carry to count as a mode.
	MinModeWeight = 0.05

	ampLower  = 0.0
	ampUpper  = 2.0
	tauLower  = 1e-9
	tauUpper  = 1e12
	betaLower = 0.1
	betaUpper = 1.0
)

// Model is the capability shared by every decay variant. Parameter slices
// are ordered as ParamNames.
type Model interface {
	Kind() Kind
	Name() string
	ParamNames() []string

	// Arity is the number of shape parameters charged by AICc. The leading
	// amplitude is not counted, so len(ParamNames()) == Arity()+1.
	Arity() int

	Evaluate(t float64, p []float64) float64
	InitialGuess(t, g []float64, seed Params) []float64
	Bounds() (lower, upper []float64)

	// CharacteristicTime returns the single relaxation time used for
	// kinetics and time-temperature superposition.
	CharacteristicTime(p Params) (float64, bool)
}

// All returns the full model set in the order fits are attempted.
func All() []Model {
	return []Model{Maxwell{}, SingleStretched{}, DualStretched{}}
}

// ForKind returns the model implementing k.
func ForKind(k Kind) (Model, error) {
	switch k {
	case KindMaxwell:
		return Maxwell{}, nil
	case KindSingleStretched:
		return SingleStretched{}, nil
	case KindDualStretched:
		return DualStretched{}, nil
	default:
		return nil, fmt.Errorf("model: unknown kind %d", int(k))
	}
}

// Curve evaluates m at every time in t.
func Curve(m Model, t, p []float64) []float64 {
	out := make([]float64, len(t))
	for i, ti := range t {
		out[i] = m.Evaluate(ti, p)
	}
	return out
}

// stretched evaluates exp(-(|t|/tau)^beta) with tau floored away from zero.
func stretched(t, tau, beta float64) float64 {
	tau = math.Max(tau, TauFloor)
	return math.Exp(-math.Pow(math.Abs(t)/tau, beta))
}

// oneOverETime returns the first time at which g drops to 1/e of its
// initial value, or the last time if it never does.
func oneOverETime(t, g []float64) float64 {
	if len(t) == 0 {
		return 1
	}
	target := g[0] / math.E
	for i, v := range g {
		if v <= target {
			return t[i]
		}
	}
	return t[len(t)-1]
}

// pinnedTau reports whether tau sits on the fit bounds.
func pinnedTau(tau float64) bool {
	return tau <= tauLower*(1+1e-6) || tau >= tauUpper*(1-1e-6)
}

func clampTau(tau float64) float64 {
	if math.IsNaN(tau) || tau < tauLower {
		return tauLower
	}
	if tau > tauUpper {
		return tauUpper
	}
	return tau
}
