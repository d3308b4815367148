package core

import "math"

const defaultEpsilon = 1e-12

// GasConstant is the molar gas constant in J/(mol*K).
const GasConstant = 8.314462

// ZeroCelsius is 0 °C expressed in Kelvin.
const ZeroCelsius = 273.15

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps, using a relative
// comparison once the magnitudes exceed one.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Kelvin converts a temperature in °C to Kelvin.
func Kelvin(celsius float64) float64 {
	return celsius + ZeroCelsius
}

// LogSpace returns n values logarithmically spaced between lo and hi
// (inclusive, both endpoints exact). Both bounds must be positive. n == 1
// yields {lo}.
func LogSpace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}

	a := math.Log10(lo)
	step := (math.Log10(hi) - a) / float64(n-1)
	for i := range out {
		out[i] = math.Pow(10, a+step*float64(i))
	}
	out[0], out[n-1] = lo, hi

	return out
}

// ArgMax returns the index of the first maximum of x, or -1 for empty input.
func ArgMax(x []float64) int {
	if len(x) == 0 {
		return -1
	}

	idx := 0
	for i, v := range x[1:] {
		if v > x[idx] {
			idx = i + 1
		}
	}

	return idx
}

// ArgMin returns the index of the first minimum of x, or -1 for empty input.
func ArgMin(x []float64) int {
	if len(x) == 0 {
		return -1
	}

	idx := 0
	for i, v := range x[1:] {
		if v < x[idx] {
			idx = i + 1
		}
	}

	return idx
}
