package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-relax/internal/lsq"
	"github.com/cwbudde/algo-relax/relax/model"
)

const (
	singleModeEvaluations = 5000
	multiModeEvaluations  = 10000
)

var errNonFiniteFit = errors.New("analysis: fit produced non-finite values")

func evaluationCap(m model.Model) int {
	if m.Kind() == model.KindDualStretched {
		return multiModeEvaluations
	}
	return singleModeEvaluations
}

// fitModel runs a bounded Levenberg-Marquardt fit of m to (t, g).
func fitModel(m model.Model, t, g []float64, seed model.Params) FitOutcome {
	lower, upper := m.Bounds()
	x0 := m.InitialGuess(t, g, seed)

	residuals := func(p, r []float64) {
		for i, ti := range t {
			r[i] = m.Evaluate(ti, p) - g[i]
		}
	}

	sol, err := lsq.LevenbergMarquardt(lsq.Problem{
		Residuals:      residuals,
		NumResiduals:   len(t),
		Lower:          lower,
		Upper:          upper,
		MaxEvaluations: evaluationCap(m),
	}, x0)
	if err != nil {
		out := failedOutcome(m, g, fmt.Errorf("%s: %w", m.Name(), err))
		out.Evaluations = sol.Evaluations
		return out
	}

	pred := model.Curve(m, t, sol.X)
	for _, v := range pred {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return failedOutcome(m, g, fmt.Errorf("%s: %w", m.Name(), errNonFiniteFit))
		}
	}

	params := model.NewParams(m.ParamNames(), sol.X)
	degenerate := false
	if d, ok := m.(model.DualStretched); ok {
		params = d.Canonical(params)
		degenerate = d.Degenerate(params)
	}

	rss := residualSumSquares(g, pred)
	return FitOutcome{
		Model:       m.Name(),
		Params:      params,
		Predicted:   pred,
		R2:          RSquared(g, rss),
		AICc:        AICc(rss, len(g), m.Arity()),
		RSS:         rss,
		OK:          true,
		Degenerate:  degenerate,
		Evaluations: sol.Evaluations,
	}
}

func failedOutcome(m model.Model, g []float64, err error) FitOutcome {
	return FitOutcome{
		Model:     m.Name(),
		Params:    model.NaNParams(m.ParamNames()),
		Predicted: append([]float64(nil), g...),
		R2:        0,
		AICc:      math.Inf(1),
		RSS:       math.NaN(),
		Err:       err,
	}
}

// selectBest returns the name with the smallest finite AICc, keeping the
// earliest on ties. Degenerate fits are only considered when no other fit
// has a finite AICc. If no AICc is finite it returns the first name and
// false.
func selectBest(order []string, fits map[string]FitOutcome) (string, bool) {
	if best, ok := minAICc(order, fits, false); ok {
		return best, true
	}
	if best, ok := minAICc(order, fits, true); ok {
		return best, true
	}
	if len(order) == 0 {
		return "", false
	}
	return order[0], false
}

func minAICc(order []string, fits map[string]FitOutcome, allowDegenerate bool) (string, bool) {
	best := ""
	bestAIC := math.Inf(1)
	for _, name := range order {
		fit := fits[name]
		if fit.Degenerate && !allowDegenerate {
			continue
		}
		if math.IsNaN(fit.AICc) || math.IsInf(fit.AICc, 0) {
			continue
		}
		if best == "" || fit.AICc < bestAIC {
			best, bestAIC = name, fit.AICc
		}
	}
	return best, best != ""
}
