package kinetics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-relax/internal/lsq"
	"github.com/cwbudde/algo-relax/relax/analysis"
	"github.com/cwbudde/algo-relax/relax/core"
	"github.com/cwbudde/algo-relax/stats"
)

const (
	minArrheniusPoints = 3
	minVFTPoints       = 4
	vftEvaluations     = 5000
)

var (
	// ErrTooFewPoints reports fewer points than the fit requires.
	ErrTooFewPoints = errors.New("kinetics: too few points")
	// ErrDegenerate reports data the fit cannot resolve, such as a single
	// distinct temperature or a solver failure.
	ErrDegenerate = errors.New("kinetics: degenerate data")
)

// Type names a kinetics law.
type Type string

// Supported kinetics laws.
const (
	TypeArrhenius Type = "Arrhenius"
	TypeVFT       Type = "VFT"
)

// Point is a characteristic relaxation time at a temperature in °C.
type Point struct {
	Temperature float64
	Tau         float64
}

// Plot holds the regression data in plotting coordinates.
type Plot struct {
	X         []float64 // 1/T in 1/K
	Y         []float64 // ln(tau)
	Predicted []float64
}

// Fit is a fitted kinetics law. Ea and EaCheck are only set for Arrhenius
// fits; Ea is in kJ/mol.
type Fit struct {
	Type    Type
	Ea      float64
	EaCheck EaCheck
	Params  map[string]float64
	R2      float64
	Plot    Plot
}

// Points collects the characteristic times of valid results, ordered by
// temperature. Results without a finite positive time are skipped.
func Points(results []analysis.Result) []Point {
	var pts []Point
	for _, r := range results {
		if !r.Valid {
			continue
		}
		tau, ok := r.CharacteristicTime()
		if !ok || !core.IsFinite(tau) || tau <= 0 {
			continue
		}
		pts = append(pts, Point{Temperature: r.Temperature, Tau: tau})
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Temperature < pts[j].Temperature })
	return pts
}

func prepare(points []Point, need int) (kelvin, invT, lnTau []float64, err error) {
	if len(points) < need {
		return nil, nil, nil, fmt.Errorf("%w: have %d, need %d", ErrTooFewPoints, len(points), need)
	}
	kelvin = make([]float64, len(points))
	invT = make([]float64, len(points))
	lnTau = make([]float64, len(points))
	for i, p := range points {
		if !(p.Tau > 0) || !core.IsFinite(p.Tau) {
			return nil, nil, nil, fmt.Errorf("%w: tau %g at %g°C", ErrDegenerate, p.Tau, p.Temperature)
		}
		kelvin[i] = core.Kelvin(p.Temperature)
		if kelvin[i] <= 0 {
			return nil, nil, nil, fmt.Errorf("%w: temperature %g°C below absolute zero", ErrDegenerate, p.Temperature)
		}
		invT[i] = 1 / kelvin[i]
		lnTau[i] = math.Log(p.Tau)
	}
	return kelvin, invT, lnTau, nil
}

// Arrhenius fits ln(tau) = ln(tau0) + (Ea/R)/T by ordinary least squares.
// It needs at least three points.
func Arrhenius(points []Point) (Fit, error) {
	return arrhenius(points, minArrheniusPoints)
}

func arrhenius(points []Point, need int) (Fit, error) {
	_, invT, lnTau, err := prepare(points, need)
	if err != nil {
		return Fit{}, err
	}

	lf, err := lsq.Linear(invT, lnTau)
	if err != nil {
		return Fit{}, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}

	pred := make([]float64, len(invT))
	for i, x := range invT {
		pred[i] = lf.Predict(x)
	}
	ea := lf.Slope * core.GasConstant / 1000
	return Fit{
		Type:    TypeArrhenius,
		Ea:      ea,
		EaCheck: CheckEa(ea),
		Params:  map[string]float64{"slope": lf.Slope, "intercept": lf.Intercept},
		R2:      lf.R * lf.R,
		Plot:    Plot{X: invT, Y: lnTau, Predicted: pred},
	}, nil
}

// VFT fits ln(tau) = A + B/(T - T0) with B >= 0 and 0 <= T0 <= Tmin - 1,
// starting from A = -10, B = 1000, T0 = Tmin - 50. It needs at least four
// points.
func VFT(points []Point) (Fit, error) {
	kelvin, invT, lnTau, err := prepare(points, minVFTPoints)
	if err != nil {
		return Fit{}, err
	}

	tmin := kelvin[0]
	for _, k := range kelvin {
		tmin = math.Min(tmin, k)
	}
	if tmin-1 < 0 {
		return Fit{}, fmt.Errorf("%w: minimum temperature %g K too low", ErrDegenerate, tmin)
	}

	vft := func(p []float64, t float64) float64 { return p[0] + p[1]/(t-p[2]) }
	sol, err := lsq.LevenbergMarquardt(lsq.Problem{
		Residuals: func(p, r []float64) {
			for i, t := range kelvin {
				r[i] = vft(p, t) - lnTau[i]
			}
		},
		NumResiduals:   len(kelvin),
		Lower:          []float64{math.Inf(-1), 0, 0},
		Upper:          []float64{math.Inf(1), math.Inf(1), tmin - 1},
		MaxEvaluations: vftEvaluations,
	}, []float64{-10, 1000, tmin - 50})
	if err != nil {
		return Fit{}, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}

	pred := make([]float64, len(kelvin))
	for i, t := range kelvin {
		pred[i] = vft(sol.X, t)
	}
	var r2 float64
	if tss := stats.SumSquaredDeviation(lnTau); tss > 0 {
		r2 = 1 - sol.RSS/tss
	}
	return Fit{
		Type:   TypeVFT,
		Params: map[string]float64{"A": sol.X[0], "B": sol.X[1], "T0": sol.X[2]},
		R2:     r2,
		Plot:   Plot{X: invT, Y: lnTau, Predicted: pred},
	}, nil
}
