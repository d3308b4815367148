package analysis

import (
	"github.com/cwbudde/algo-relax/relax/curve"
	"github.com/cwbudde/algo-relax/relax/model"
)

// Status classifies the outcome of one analysis.
type Status int

// Analysis outcomes. Only StatusOK results are Valid.
const (
	StatusOK Status = iota
	StatusFrozen
	StatusDataQuality
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFrozen:
		return "frozen"
	case StatusDataQuality:
		return "data-quality"
	default:
		return "unknown"
	}
}

// FitOutcome is the result of fitting one model. A failed fit has OK false,
// R2 0, AICc +Inf, NaN parameters, Predicted equal to the data and Err set.
type FitOutcome struct {
	Model     string
	Params    model.Params
	Predicted []float64
	R2        float64
	AICc      float64
	RSS       float64
	OK        bool
	Err       error

	// Degenerate marks a multi-mode fit that collapsed onto fewer modes
	// (negligible weight or a time constant on its bound).
	Degenerate  bool
	Evaluations int
}

// Result is the analysis of one temperature.
type Result struct {
	Temperature float64
	Valid       bool
	Status      Status
	Reason      string

	Curve curve.Trimmed

	// Fits is keyed by model name; Order lists the names in attempt order.
	Fits  map[string]FitOutcome
	Order []string
	Best  string

	Quality       float64
	Assessment    string
	LowConfidence bool
}

// BestFit returns the selected fit.
func (r Result) BestFit() (FitOutcome, bool) {
	if !r.Valid || r.Best == "" {
		return FitOutcome{}, false
	}
	f, ok := r.Fits[r.Best]
	return f, ok
}

// CharacteristicTime returns the relaxation time of the selected model, or
// false when the result is invalid or the best fit failed.
func (r Result) CharacteristicTime() (float64, bool) {
	f, ok := r.BestFit()
	if !ok || !f.OK {
		return 0, false
	}
	kind, err := model.ParseKind(f.Model)
	if err != nil {
		return 0, false
	}
	m, err := model.ForKind(kind)
	if err != nil {
		return 0, false
	}
	tau, ok := m.CharacteristicTime(f.Params)
	if !ok || tau <= 0 {
		return 0, false
	}
	return tau, true
}
