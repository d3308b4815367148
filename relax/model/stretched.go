package model

// SingleStretched is the Kohlrausch-Williams-Watts decay
// G0*exp(-(|t|/tau)^beta).
type SingleStretched struct{}

func (SingleStretched) Kind() Kind   { return KindSingleStretched }
func (SingleStretched) Name() string { return KindSingleStretched.String() }
func (SingleStretched) Arity() int   { return 2 }

func (SingleStretched) ParamNames() []string {
	return []string{ParamG0, ParamTau, ParamBeta}
}

func (SingleStretched) Evaluate(t float64, p []float64) float64 {
	return p[0] * stretched(t, p[1], p[2])
}

// InitialGuess starts from the 1/e crossing with beta = 0.5.
func (SingleStretched) InitialGuess(t, g []float64, _ Params) []float64 {
	return []float64{1, clampTau(oneOverETime(t, g)), 0.5}
}

func (SingleStretched) Bounds() (lower, upper []float64) {
	return []float64{ampLower, tauLower, betaLower}, []float64{ampUpper, tauUpper, betaUpper}
}

func (SingleStretched) CharacteristicTime(p Params) (float64, bool) {
	return p.Get(ParamTau)
}
