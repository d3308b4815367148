package model

import "math"

// Params is a named parameter record produced by a fit.
type Params map[string]float64

// NewParams zips names with values. Missing values are recorded as NaN.
func NewParams(names []string, values []float64) Params {
	p := make(Params, len(names))
	for i, name := range names {
		v := math.NaN()
		if i < len(values) {
			v = values[i]
		}
		p[name] = v
	}
	return p
}

// Get returns the named value and whether it is present and finite.
func (p Params) Get(name string) (float64, bool) {
	v, ok := p[name]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return v, false
	}
	return v, true
}

// Values returns the values ordered by names; absent entries are NaN.
func (p Params) Values(names []string) []float64 {
	out := make([]float64, len(names))
	for i, name := range names {
		v, ok := p[name]
		if !ok {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

// NaNParams returns a record with every name set to NaN, used for failed
// fits.
func NaNParams(names []string) Params {
	return NewParams(names, nil)
}
