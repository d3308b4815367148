package model

import "math"

// DualStretched mixes a fast and a slow stretched mode:
//
//	G0*(f*exp(-(|t|/tau1)^beta1) + (1-f)*exp(-(|t|/tau2)^beta2))
type DualStretched struct{}

func (DualStretched) Kind() Kind   { return KindDualStretched }
func (DualStretched) Name() string { return KindDualStretched.String() }

func (DualStretched) ParamNames() []string {
	return []string{ParamG0, ParamFrac, ParamTau1, ParamBeta1, ParamTau2, ParamBeta2}
}

func (DualStretched) Arity() int { return 5 }

func (DualStretched) Evaluate(t float64, p []float64) float64 {
	f := p[1]
	return p[0] * (f*stretched(t, p[2], p[3]) + (1-f)*stretched(t, p[4], p[5]))
}

// InitialGuess takes tau1 and tau2 from the times at the quarter and
// three-quarter index. A seed carrying SingleStretched parameters supplies
// the amplitude and beta for both modes and widens the taus so that
// tau1 <= tau <= tau2.
func (DualStretched) InitialGuess(t, g []float64, seed Params) []float64 {
	n := len(t)
	tau1, tau2 := 1.0, 10.0
	if n > 0 {
		tau1 = t[n/4]
		tau2 = t[(3*n)/4]
	}
	amp, beta1, beta2 := 1.0, 0.8, 0.5

	if tau, ok := seed.Get(ParamTau); ok && tau > 0 {
		if beta, ok := seed.Get(ParamBeta); ok {
			beta = math.Min(math.Max(beta, betaLower), betaUpper)
			beta1, beta2 = beta, beta
		}
		if a, ok := seed.Get(ParamG0); ok {
			amp = math.Min(math.Max(a, ampLower), ampUpper)
		}
		tau1 = math.Min(tau1, tau)
		tau2 = math.Max(tau2, tau)
	}
	if tau2 <= tau1 {
		tau2 = 10 * tau1
	}
	return []float64{amp, 0.5, clampTau(tau1), beta1, clampTau(tau2), beta2}
}

func (DualStretched) Bounds() (lower, upper []float64) {
	return []float64{ampLower, 0, tauLower, betaLower, tauLower, betaLower},
		[]float64{ampUpper, 1, tauUpper, betaUpper, tauUpper, betaUpper}
}

// CharacteristicTime reports the fast-mode time of the canonical ordering.
// A fast mode that carries less than MinModeWeight or is pinned at the tau
// bound is skipped in favour of the slow mode; if neither mode qualifies
// there is no characteristic time.
func (d DualStretched) CharacteristicTime(p Params) (float64, bool) {
	c := d.Canonical(p)
	f, ok := c.Get(ParamFrac)
	if !ok {
		return 0, false
	}
	if tau, ok := c.Get(ParamTau1); ok && validMode(tau, f) {
		return tau, true
	}
	if tau, ok := c.Get(ParamTau2); ok && validMode(tau, 1-f) {
		return tau, true
	}
	return 0, false
}

// Degenerate reports whether a fit has collapsed to fewer than two real
// modes: one mode carries less than MinModeWeight or sits on the tau bound.
func (d DualStretched) Degenerate(p Params) bool {
	c := d.Canonical(p)
	f, okF := c.Get(ParamFrac)
	tau1, ok1 := c.Get(ParamTau1)
	tau2, ok2 := c.Get(ParamTau2)
	if !okF || !ok1 || !ok2 {
		return true
	}
	return !validMode(tau1, f) || !validMode(tau2, 1-f)
}

func validMode(tau, weight float64) bool {
	return weight >= MinModeWeight && !pinnedTau(tau)
}

// Canonical returns p with the modes swapped if needed so that
// tau1 <= tau2. The fraction follows its mode.
func (DualStretched) Canonical(p Params) Params {
	tau1, ok1 := p.Get(ParamTau1)
	tau2, ok2 := p.Get(ParamTau2)
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	if !ok1 || !ok2 || tau1 <= tau2 {
		return out
	}
	out[ParamTau1], out[ParamTau2] = p[ParamTau2], p[ParamTau1]
	out[ParamBeta1], out[ParamBeta2] = p[ParamBeta2], p[ParamBeta1]
	if f, ok := p[ParamFrac]; ok {
		out[ParamFrac] = 1 - f
	}
	return out
}
