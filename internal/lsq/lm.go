package lsq

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// DefaultMaxEvaluations caps residual evaluations when Problem.MaxEvaluations
// is zero.
const DefaultMaxEvaluations = 5000

const (
	ftol       = 1e-10 // relative RSS reduction treated as converged
	xtol       = 1e-10 // relative step length treated as converged
	gtol       = 1e-10 // max cosine between residual and a Jacobian column
	lambdaInit = 1e-3
	lambdaMin  = 1e-12
	lambdaMax  = 1e16
	diffFloor  = 1e-6
)

var sqrtEps = math.Sqrt(2.220446049250313e-16)

// Residuals fills r with the residual vector evaluated at p.
// Implementations must not retain p or r.
type Residuals func(p, r []float64)

// Problem describes a box-constrained nonlinear least-squares problem
// min Σ r_i(p)² subject to Lower <= p <= Upper.
type Problem struct {
	Residuals    Residuals
	NumResiduals int

	// Lower and Upper may be nil (unbounded) or hold ±Inf entries.
	Lower []float64
	Upper []float64

	// MaxEvaluations bounds the number of Residuals calls, including those
	// spent on finite-difference Jacobians.
	MaxEvaluations int
}

// Solution is the outcome of a Levenberg-Marquardt run.
type Solution struct {
	X           []float64
	RSS         float64
	Evaluations int
	Iterations  int
}

type evaluator struct {
	fn    Residuals
	max   int
	count int
}

func (e *evaluator) eval(p, r []float64) error {
	if e.count >= e.max {
		return ErrMaxEvaluations
	}
	e.count++
	e.fn(p, r)
	return nil
}

// LevenbergMarquardt minimises the problem's residual sum of squares starting
// from x0. Steps are projected onto the bounds, parameters pinned at a bound
// by their gradient are frozen for the step, and damping uses Marquardt's
// diagonal scaling so the iteration is invariant to parameter units.
//
// The Jacobian is estimated by forward differences. Exhausting the
// evaluation budget returns ErrMaxEvaluations together with the best point
// found so far.
//
//nolint:funlen,gocognit
func LevenbergMarquardt(prob Problem, x0 []float64) (Solution, error) {
	k := len(x0)
	m := prob.NumResiduals
	if prob.Residuals == nil || k == 0 {
		return Solution{}, ErrDimension
	}
	if m < k {
		return Solution{}, ErrTooFewResiduals
	}

	lower, err := boundOrInf(prob.Lower, k, math.Inf(-1))
	if err != nil {
		return Solution{}, err
	}
	upper, err := boundOrInf(prob.Upper, k, math.Inf(1))
	if err != nil {
		return Solution{}, err
	}
	for j := range lower {
		if lower[j] > upper[j] {
			return Solution{}, ErrInvalidBounds
		}
	}

	maxEval := prob.MaxEvaluations
	if maxEval <= 0 {
		maxEval = DefaultMaxEvaluations
	}
	ev := &evaluator{fn: prob.Residuals, max: maxEval}

	x := make([]float64, k)
	for j := range x {
		x[j] = clip(x0[j], lower[j], upper[j])
	}

	r := make([]float64, m)
	if err := ev.eval(x, r); err != nil {
		return Solution{X: x, RSS: math.Inf(1)}, err
	}
	rss := vecmath.DotProduct(r, r)
	if math.IsNaN(rss) || math.IsInf(rss, 0) {
		return Solution{X: x, RSS: rss, Evaluations: ev.count}, ErrNonFinite
	}

	cols := make([][]float64, k)
	for j := range cols {
		cols[j] = make([]float64, m)
	}
	gram := make([][]float64, k)
	for j := range gram {
		gram[j] = make([]float64, k)
	}
	grad := make([]float64, k)
	free := make([]bool, k)
	rh := make([]float64, m)
	xNew := make([]float64, k)
	rNew := make([]float64, m)

	sol := func(iter int) Solution {
		return Solution{X: x, RSS: rss, Evaluations: ev.count, Iterations: iter}
	}

	lambda := lambdaInit
	for iter := 1; ; iter++ {
		if rss == 0 {
			return sol(iter), nil
		}

		for j := 0; j < k; j++ {
			xj := x[j]
			step := sqrtEps * math.Max(math.Abs(xj), diffFloor)
			if xj+step > upper[j] {
				step = -step
			}
			x[j] = xj + step
			if err := ev.eval(x, rh); err != nil {
				x[j] = xj
				return sol(iter), err
			}
			x[j] = xj

			inv := 1 / step
			col := cols[j]
			for i := range rh {
				col[i] = (rh[i] - r[i]) * inv
			}
		}

		for a := 0; a < k; a++ {
			grad[a] = vecmath.DotProduct(cols[a], r)
			for b := 0; b <= a; b++ {
				v := vecmath.DotProduct(cols[a], cols[b])
				gram[a][b] = v
				gram[b][a] = v
			}
		}
		for j := range grad {
			if math.IsNaN(grad[j]) || math.IsInf(grad[j], 0) {
				return sol(iter), ErrNonFinite
			}
		}

		// Parameters resting on a bound with the descent direction pointing
		// outward stay fixed for this iteration.
		maxCos := 0.0
		maxDiag := 0.0
		rNorm := math.Sqrt(rss)
		for j := 0; j < k; j++ {
			atLower := x[j] <= lower[j] && grad[j] > 0
			atUpper := x[j] >= upper[j] && grad[j] < 0
			free[j] = !atLower && !atUpper
			if !free[j] {
				continue
			}
			maxDiag = math.Max(maxDiag, gram[j][j])
			if n := math.Sqrt(gram[j][j]); n > 0 {
				maxCos = math.Max(maxCos, math.Abs(grad[j])/(n*rNorm))
			}
		}
		if maxCos <= gtol {
			return sol(iter), nil
		}

		floor := maxDiag * 1e-12
		for {
			sys := make([][]float64, k)
			rhs := make([]float64, k)
			for a := 0; a < k; a++ {
				sys[a] = make([]float64, k)
				if !free[a] {
					sys[a][a] = 1
					continue
				}
				for b := 0; b < k; b++ {
					if free[b] {
						sys[a][b] = gram[a][b]
					}
				}
				sys[a][a] += lambda * math.Max(gram[a][a], floor)
				rhs[a] = -grad[a]
			}

			delta, err := Solve(sys, rhs)
			if err != nil {
				lambda *= 10
				if lambda > lambdaMax {
					return sol(iter), nil
				}
				continue
			}

			moved := false
			for j := range xNew {
				xNew[j] = clip(x[j]+delta[j], lower[j], upper[j])
				if xNew[j] != x[j] {
					moved = true
				}
			}
			if !moved {
				return sol(iter), nil
			}

			if err := ev.eval(xNew, rNew); err != nil {
				return sol(iter), err
			}
			rssNew := vecmath.DotProduct(rNew, rNew)
			if math.IsNaN(rssNew) {
				rssNew = math.Inf(1)
			}

			if rssNew < rss {
				var stepSq, xSq float64
				for j := range x {
					d := xNew[j] - x[j]
					stepSq += d * d
					xSq += x[j] * x[j]
				}
				drop := (rss - rssNew) / rss

				copy(x, xNew)
				copy(r, rNew)
				rss = rssNew
				lambda = math.Max(lambda/10, lambdaMin)

				if drop <= ftol || math.Sqrt(stepSq) <= xtol*(xtol+math.Sqrt(xSq)) {
					return sol(iter), nil
				}
				break
			}

			lambda *= 10
			if lambda > lambdaMax {
				return sol(iter), nil
			}
		}
	}
}

func boundOrInf(b []float64, k int, inf float64) ([]float64, error) {
	out := make([]float64, k)
	if b == nil {
		for i := range out {
			out[i] = inf
		}
		return out, nil
	}
	if len(b) != k {
		return nil, ErrDimension
	}
	copy(out, b)
	return out, nil
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
