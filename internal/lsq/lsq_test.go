package lsq

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-relax/internal/testutil"
)

func TestSolve(t *testing.T) {
	a := [][]float64{{2, 1, -1}, {-3, -1, 2}, {-2, 1, 2}}
	b := []float64{8, -11, -3}

	x, err := Solve(a, b)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, x, []float64{2, 3, -1}, 1e-12)
}

func TestSolveSingular(t *testing.T) {
	_, err := Solve([][]float64{{1, 2}, {2, 4}}, []float64{1, 2})
	if !errors.Is(err, ErrSingular) {
		t.Fatalf("err = %v, want ErrSingular", err)
	}
}

func TestPolyFitRecoversQuadratic(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 1 - 2*v + 0.5*v*v
	}

	c, err := PolyFit(x, y, 2)
	if err != nil {
		t.Fatalf("PolyFit error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, c, []float64{1, -2, 0.5}, 1e-10)

	if got := PolyEval(c, 6); math.Abs(got-7) > 1e-9 {
		t.Fatalf("PolyEval(6) = %v, want 7", got)
	}
}

func TestLinear(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{3, 5, 7, 9}

	fit, err := Linear(x, y)
	if err != nil {
		t.Fatalf("Linear error: %v", err)
	}
	if math.Abs(fit.Slope-2) > 1e-12 || math.Abs(fit.Intercept-1) > 1e-12 {
		t.Fatalf("fit = %+v, want slope 2 intercept 1", fit)
	}
	if math.Abs(fit.R-1) > 1e-12 {
		t.Fatalf("R = %v, want 1", fit.R)
	}
	if fit.Predict(10) != 21 {
		t.Fatalf("Predict(10) = %v, want 21", fit.Predict(10))
	}
}

func TestLinearDegenerate(t *testing.T) {
	if _, err := Linear([]float64{2, 2, 2}, []float64{1, 2, 3}); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("err = %v, want ErrDegenerate", err)
	}
	if _, err := Linear([]float64{1}, []float64{1}); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("err = %v, want ErrDegenerate", err)
	}
}

func exponentialProblem(times, obs []float64) Problem {
	return Problem{
		NumResiduals: len(times),
		Residuals: func(p, r []float64) {
			for i, t := range times {
				r[i] = p[0]*math.Exp(-t/p[1]) - obs[i]
			}
		},
	}
}

func TestLevenbergMarquardtExact(t *testing.T) {
	times := testutil.LinearTimes(0, 20, 40)
	obs := testutil.StretchedDecay(times, 2, 3, 1)

	sol, err := LevenbergMarquardt(exponentialProblem(times, obs), []float64{1, 1})
	if err != nil {
		t.Fatalf("LM error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, sol.X, []float64{2, 3}, 1e-6)
	if sol.RSS > 1e-12 {
		t.Fatalf("RSS = %v, want ~0", sol.RSS)
	}
	if sol.Evaluations == 0 || sol.Iterations == 0 {
		t.Fatalf("unexpected counters: %+v", sol)
	}
}

func TestLevenbergMarquardtBounded(t *testing.T) {
	times := testutil.LinearTimes(0, 20, 40)
	obs := testutil.StretchedDecay(times, 2, 3, 1)

	prob := exponentialProblem(times, obs)
	prob.Lower = []float64{0, 0.1}
	prob.Upper = []float64{1.5, 100}

	sol, err := LevenbergMarquardt(prob, []float64{1, 1})
	if err != nil {
		t.Fatalf("LM error: %v", err)
	}
	if sol.X[0] != 1.5 {
		t.Fatalf("amplitude = %v, want pinned at upper bound 1.5", sol.X[0])
	}
	if sol.X[1] < 0.1 || sol.X[1] > 100 {
		t.Fatalf("tau = %v escaped bounds", sol.X[1])
	}
}

func TestLevenbergMarquardtEvaluationCap(t *testing.T) {
	times := testutil.LinearTimes(0, 20, 40)
	obs := testutil.StretchedDecay(times, 2, 3, 1)

	prob := exponentialProblem(times, obs)
	prob.MaxEvaluations = 4

	_, err := LevenbergMarquardt(prob, []float64{1, 1})
	if !errors.Is(err, ErrMaxEvaluations) {
		t.Fatalf("err = %v, want ErrMaxEvaluations", err)
	}
}

func TestLevenbergMarquardtValidation(t *testing.T) {
	prob := Problem{NumResiduals: 1, Residuals: func(p, r []float64) {}}
	if _, err := LevenbergMarquardt(prob, []float64{1, 2}); !errors.Is(err, ErrTooFewResiduals) {
		t.Fatalf("err = %v, want ErrTooFewResiduals", err)
	}

	prob = Problem{
		NumResiduals: 3,
		Residuals:    func(p, r []float64) {},
		Lower:        []float64{1},
		Upper:        []float64{0},
	}
	if _, err := LevenbergMarquardt(prob, []float64{0.5}); !errors.Is(err, ErrInvalidBounds) {
		t.Fatalf("err = %v, want ErrInvalidBounds", err)
	}
}

func TestLevenbergMarquardtNonFiniteStart(t *testing.T) {
	prob := Problem{
		NumResiduals: 2,
		Residuals: func(p, r []float64) {
			r[0] = math.NaN()
			r[1] = 0
		},
	}
	if _, err := LevenbergMarquardt(prob, []float64{1}); !errors.Is(err, ErrNonFinite) {
		t.Fatalf("err = %v, want ErrNonFinite", err)
	}
}

func TestNNLSProjectsNegativeComponent(t *testing.T) {
	// A = I, y = (1, -1): the unconstrained solution (1, -1) is infeasible.
	cols := [][]float64{{1, 0}, {0, 1}}
	g, b, err := Gram(cols, []float64{1, -1})
	if err != nil {
		t.Fatalf("Gram error: %v", err)
	}

	x, err := NNLS(g, b, 0)
	if err != nil {
		t.Fatalf("NNLS error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, x, []float64{1, 0}, 1e-12)
}

func TestNNLSMatchesFeasibleSolution(t *testing.T) {
	cols := [][]float64{
		{1, 0, 1, 2},
		{0, 1, 1, 1},
		{1, 1, 0, 3},
	}
	want := []float64{0.5, 2, 1}
	y := make([]float64, 4)
	for j, c := range cols {
		for i := range y {
			y[i] += want[j] * c[i]
		}
	}

	g, b, err := Gram(cols, y)
	if err != nil {
		t.Fatalf("Gram error: %v", err)
	}
	x, err := NNLS(g, b, 0)
	if err != nil {
		t.Fatalf("NNLS error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, x, want, 1e-9)
}

func TestNNLSZeroRHS(t *testing.T) {
	x, err := NNLS([][]float64{{1}}, []float64{0}, 0)
	if err != nil {
		t.Fatalf("NNLS error: %v", err)
	}
	if x[0] != 0 {
		t.Fatalf("x = %v, want 0", x)
	}
}

func TestGramDimension(t *testing.T) {
	if _, _, err := Gram([][]float64{{1, 2}}, []float64{1}); !errors.Is(err, ErrDimension) {
		t.Fatalf("err = %v, want ErrDimension", err)
	}
}
