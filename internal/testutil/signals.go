package testutil

import (
	"math"
	"math/rand"
)

// GaussianNoise returns deterministic zero-mean Gaussian noise with the given
// standard deviation.
func GaussianNoise(seed int64, sigma float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.NormFloat64() * sigma
	}
	return out
}

// LinearTimes returns length sample times evenly spaced over [start, stop].
func LinearTimes(start, stop float64, length int) []float64 {
	out := make([]float64, length)
	if length == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(length-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// StretchedDecay evaluates amplitude * exp(-(t/tau)^beta) at each time.
func StretchedDecay(times []float64, amplitude, tau, beta float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = amplitude * math.Exp(-math.Pow(t/tau, beta))
	}
	return out
}

// AddInPlace adds noise element-wise into dst.
func AddInPlace(dst, noise []float64) {
	for i := range dst {
		if i < len(noise) {
			dst[i] += noise[i]
		}
	}
}
