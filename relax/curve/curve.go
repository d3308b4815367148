package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-relax/dsp/savgol"
	"github.com/cwbudde/algo-relax/relax/core"
	"github.com/cwbudde/algo-relax/stats"
)

// DefaultMinPoints is the smallest trimmed curve accepted by Trim.
const DefaultMinPoints = 8

const (
	timeOrigin   = 1e-6
	tailGuard    = 10
	peakFraction = 0.99
	driftRise    = 1.10
	g0Samples    = 5
	smoothOrder  = 2
)

var (
	// ErrTooFewPoints reports a curve too short to analyse.
	ErrTooFewPoints = errors.New("curve: too few points")
	// ErrLengthMismatch reports time and modulus slices of different length.
	ErrLengthMismatch = errors.New("curve: time and modulus length mismatch")
)

// Raw is one measured curve at a fixed temperature in °C.
type Raw struct {
	Temperature float64
	Time        []float64
	Modulus     []float64
}

// Trimmed is a cleaned, normalised decay curve. StartIndex and EndIndex
// (exclusive) locate the kept window within the cleaned, time-sorted series.
type Trimmed struct {
	Time       []float64
	Modulus    []float64
	G0         float64
	StartIndex int
	EndIndex   int
}

// Len returns the number of samples.
func (c Trimmed) Len() int { return len(c.Time) }

// Option configures Trim.
type Option func(*config)

type config struct {
	minPoints int
}

// WithMinPoints sets the minimum number of points required after cleaning
// and after trimming. Values below 1 are ignored.
func WithMinPoints(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.minPoints = n
		}
	}
}

// Trim cleans and normalises one curve.
//
//nolint:funlen
func Trim(time, modulus []float64, opts ...Option) (Trimmed, error) {
	cfg := config{minPoints: DefaultMinPoints}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(time) != len(modulus) {
		return Trimmed{}, fmt.Errorf("%w: %d times, %d moduli", ErrLengthMismatch, len(time), len(modulus))
	}

	t, g := clean(time, modulus)
	n := len(t)
	if n < cfg.minPoints {
		return Trimmed{}, fmt.Errorf("%w: %d valid samples, need %d", ErrTooFewPoints, n, cfg.minPoints)
	}

	smooth, err := savgol.Filter(g, savgol.OddWindow(max(5, n/10)), smoothOrder)
	if err != nil {
		smooth = g
	}

	peakIdx := core.ArgMax(smooth)
	start := trimStart(smooth, peakIdx)
	end := trimEnd(smooth, start)

	if end-start < cfg.minPoints {
		return Trimmed{}, fmt.Errorf("%w: %d samples after trimming, need %d", ErrTooFewPoints, end-start, cfg.minPoints)
	}

	kept := g[start:end]
	g0 := stats.Mean(kept[:min(g0Samples, len(kept))])
	if !(g0 > 0) || !core.IsFinite(g0) {
		return Trimmed{}, fmt.Errorf("%w: non-positive initial modulus", ErrTooFewPoints)
	}

	out := Trimmed{
		Time:       make([]float64, len(kept)),
		Modulus:    make([]float64, len(kept)),
		G0:         g0,
		StartIndex: start,
		EndIndex:   end,
	}
	t0 := t[start]
	for i := range kept {
		out.Time[i] = t[start+i] - t0 + timeOrigin
		out.Modulus[i] = kept[i] / g0
	}
	return out, nil
}

// clean drops invalid samples, sorts by time and averages duplicate times.
func clean(time, modulus []float64) ([]float64, []float64) {
	type sample struct{ t, g float64 }
	samples := make([]sample, 0, len(time))
	for i := range time {
		t, g := time[i], modulus[i]
		if !core.IsFinite(t) || !core.IsFinite(g) || g <= 0 {
			continue
		}
		samples = append(samples, sample{t, g})
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].t < samples[j].t })

	t := make([]float64, 0, len(samples))
	g := make([]float64, 0, len(samples))
	for i := 0; i < len(samples); {
		j := i
		sum := 0.0
		for j < len(samples) && samples[j].t == samples[i].t {
			sum += samples[j].g
			j++
		}
		t = append(t, samples[i].t)
		g = append(g, sum/float64(j-i))
		i = j
	}
	return t, g
}

// trimStart skips the loading ramp. When the peak is past the first three
// samples, the start backs up one sample from the first value that falls
// below 99% of the peak within the lookahead window.
func trimStart(smooth []float64, peakIdx int) int {
	n := len(smooth)
	if peakIdx <= 2 {
		return peakIdx
	}
	peak := smooth[peakIdx]
	lookahead := max(10, n/10)
	stop := min(n, peakIdx+lookahead)
	for i := peakIdx + 1; i < stop; i++ {
		if smooth[i] < peakFraction*peak {
			return i - 1
		}
	}
	return peakIdx
}

// trimEnd cuts a late drift rise: if the smoothed minimum after start lies
// before the tail guard and anything after it rises more than 10% above it,
// the curve ends at the minimum.
func trimEnd(smooth []float64, start int) int {
	n := len(smooth)
	if start >= n-tailGuard {
		return n
	}
	minIdx := start + core.ArgMin(smooth[start:])
	if minIdx >= n-tailGuard {
		return n
	}
	floor := smooth[minIdx]
	limit := driftRise * floor
	if floor < 0 {
		limit = floor + math.Abs(floor)*(driftRise-1)
	}
	for _, v := range smooth[minIdx+1:] {
		if v > limit {
			return minIdx
		}
	}
	return n
}
