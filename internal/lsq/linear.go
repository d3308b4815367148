package lsq

import "math"

// LinearFit holds an ordinary least-squares line y = Slope*x + Intercept.
type LinearFit struct {
	Slope     float64
	Intercept float64
	R         float64 // Pearson correlation coefficient
}

// Linear regresses y on x. At least two points with distinct x are required.
// Sums are taken about the means, which keeps reciprocal-temperature axes
// (values near 2.7e-3) well conditioned.
func Linear(x, y []float64) (LinearFit, error) {
	if len(x) != len(y) {
		return LinearFit{}, ErrDimension
	}
	n := len(x)
	if n < 2 {
		return LinearFit{}, ErrDegenerate
	}

	var meanX, meanY float64
	for i := range x {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var sxx, sxy, syy float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}

	if sxx <= 0 {
		return LinearFit{}, ErrDegenerate
	}

	slope := sxy / sxx
	fit := LinearFit{
		Slope:     slope,
		Intercept: meanY - slope*meanX,
	}
	if syy > 0 {
		fit.R = sxy / math.Sqrt(sxx*syy)
	}

	return fit, nil
}

// Predict evaluates the fitted line at x.
func (f LinearFit) Predict(x float64) float64 {
	return f.Slope*x + f.Intercept
}
