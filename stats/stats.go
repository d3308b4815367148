package stats

import "math"

// Mean returns the arithmetic mean of x using Kahan summation.
// Returns 0 for empty input.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	var sum, c float64
	for _, v := range x {
		y := v - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(x))
}

// Variance returns the population variance of x (divisor n) computed with
// Welford's online algorithm.
func Variance(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	var mean, m2 float64
	for i, v := range x {
		delta := v - mean
		mean += delta / float64(i+1)
		m2 += delta * (v - mean)
	}

	return m2 / float64(len(x))
}

// StdDev returns the population standard deviation of x.
func StdDev(x []float64) float64 {
	return math.Sqrt(Variance(x))
}

// SumSquaredDeviation returns Σ(x_i - mean)², the total sum of squares.
func SumSquaredDeviation(x []float64) float64 {
	return Variance(x) * float64(len(x))
}

// sign mirrors the three-valued signum: -1, 0 or +1.
func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// SignChanges counts how often the sign of the first difference of x
// changes between consecutive steps. A flat step has sign 0, so moving from a
// falling step to a flat one counts as a change. Monotone input returns 0.
func SignChanges(x []float64) int {
	if len(x) < 3 {
		return 0
	}

	count := 0
	prev := sign(x[1] - x[0])
	for i := 2; i < len(x); i++ {
		s := sign(x[i] - x[i-1])
		if s != prev {
			count++
		}
		prev = s
	}

	return count
}
