package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-relax/internal/lsq"
	"github.com/cwbudde/algo-relax/relax/core"
)

const (
	// DefaultModes is the default number of tau grid points.
	DefaultModes = 100
	// DefaultAlpha is the default ridge regularisation strength.
	DefaultAlpha = 0.1

	gridLowFactor  = 0.5
	gridHighFactor = 5.0
)

// Errors returned by Invert.
var (
	ErrEmptyInput   = errors.New("spectrum: empty or mismatched input")
	ErrInvalidModes = errors.New("spectrum: number of modes must be positive")
	ErrInvalidAlpha = errors.New("spectrum: alpha must be finite and non-negative")
)

// Spectrum is a non-negative weight per relaxation time.
type Spectrum struct {
	Tau []float64
	H   []float64
}

// Invert solves min ||A H - g||² + alpha ||H||² subject to H >= 0, where
// A[i][j] = exp(-t_i/tau_j) and tau spans [min(t)/2, 5*max(t)] on a log
// grid of the given number of modes.
func Invert(time, modulus []float64, modes int, alpha float64) (Spectrum, error) {
	if len(time) == 0 || len(time) != len(modulus) {
		return Spectrum{}, ErrEmptyInput
	}
	if modes < 1 {
		return Spectrum{}, fmt.Errorf("%w: %d", ErrInvalidModes, modes)
	}
	if alpha < 0 || !core.IsFinite(alpha) {
		return Spectrum{}, fmt.Errorf("%w: %g", ErrInvalidAlpha, alpha)
	}

	tmin, tmax := math.Inf(1), math.Inf(-1)
	for i, t := range time {
		if !core.IsFinite(t) || !core.IsFinite(modulus[i]) {
			return Spectrum{}, fmt.Errorf("%w: non-finite sample at %d", ErrEmptyInput, i)
		}
		tmin = math.Min(tmin, t)
		tmax = math.Max(tmax, t)
	}
	if tmin <= 0 {
		tmin = smallestPositive(time)
		if tmin == 0 {
			return Spectrum{}, fmt.Errorf("%w: no positive times", ErrEmptyInput)
		}
	}

	tau := core.LogSpace(tmin*gridLowFactor, tmax*gridHighFactor, modes)
	cols := kernel(time, tau)

	gram, rhs, err := lsq.Gram(cols, modulus)
	if err != nil {
		return Spectrum{}, err
	}
	for j := range gram {
		gram[j][j] += alpha
	}

	h, err := lsq.NNLS(gram, rhs, 0)
	if err != nil && !errors.Is(err, lsq.ErrMaxIterations) {
		return Spectrum{}, fmt.Errorf("spectrum: %w", err)
	}
	return Spectrum{Tau: tau, H: h}, nil
}

func smallestPositive(x []float64) float64 {
	best := 0.0
	for _, v := range x {
		if v > 0 && (best == 0 || v < best) {
			best = v
		}
	}
	return best
}

// kernel returns the columns exp(-t/tau_j) of the design matrix.
func kernel(time, tau []float64) [][]float64 {
	cols := make([][]float64, len(tau))
	for j, tj := range tau {
		col := make([]float64, len(time))
		for i, t := range time {
			col[i] = math.Exp(-t / tj)
		}
		cols[j] = col
	}
	return cols
}

// Reconstruct evaluates Σ H_j exp(-t/tau_j) at each time.
func (s Spectrum) Reconstruct(time []float64) []float64 {
	out := make([]float64, len(time))
	for j, col := range kernel(time, s.Tau) {
		vecmath.ScaleBlock(col, col, s.H[j])
		vecmath.AddBlockInPlace(out, col)
	}
	return out
}

// Residual returns the RMS difference between the reconstruction and g.
func (s Spectrum) Residual(time, modulus []float64) float64 {
	if len(time) == 0 {
		return 0
	}
	rec := s.Reconstruct(time)
	for i := range rec {
		rec[i] -= modulus[i]
	}
	return math.Sqrt(vecmath.DotProduct(rec, rec) / float64(len(rec)))
}

// WeightedLogMeanTau returns 10^(Σ H log10 tau / Σ H), or 0 for an empty
// spectrum.
func (s Spectrum) WeightedLogMeanTau() float64 {
	var sumH, sumLog float64
	for j, h := range s.H {
		sumH += h
		sumLog += h * math.Log10(s.Tau[j])
	}
	if sumH == 0 {
		return 0
	}
	return math.Pow(10, sumLog/sumH)
}
