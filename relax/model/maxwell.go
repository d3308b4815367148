package model

import "math"

// Maxwell is the single-exponential decay G0*exp(-t/tau).
type Maxwell struct{}

func (Maxwell) Kind() Kind           { return KindMaxwell }
func (Maxwell) Name() string         { return KindMaxwell.String() }
func (Maxwell) ParamNames() []string { return []string{ParamG0, ParamTau} }
func (Maxwell) Arity() int           { return 1 }

// Evaluate returns G0*exp(-t/tau).
func (Maxwell) Evaluate(t float64, p []float64) float64 {
	return p[0] * math.Exp(-t/math.Max(p[1], TauFloor))
}

// InitialGuess places tau at the first 1/e crossing with unit amplitude.
// The seed is ignored.
func (Maxwell) InitialGuess(t, g []float64, _ Params) []float64 {
	return []float64{1, clampTau(oneOverETime(t, g))}
}

func (Maxwell) Bounds() (lower, upper []float64) {
	return []float64{ampLower, tauLower}, []float64{ampUpper, tauUpper}
}

func (Maxwell) CharacteristicTime(p Params) (float64, bool) {
	return p.Get(ParamTau)
}
