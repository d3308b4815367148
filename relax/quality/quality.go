package quality

import (
	"github.com/cwbudde/algo-relax/relax/core"
	"github.com/cwbudde/algo-relax/stats"
)

const (
	minSamples   = 6
	tailSamples  = 10
	noiseRef     = 0.02
	rangeRef     = 0.10
	wiggleFrac   = 0.1
	weightNoise  = 0.4
	weightRange  = 0.4
	weightWiggle = 0.2

	highThreshold     = 0.85
	moderateThreshold = 0.50
)

// Level is a coarse quality tier.
type Level int

// Quality tiers, lowest first.
const (
	Low Level = iota
	Moderate
	High
)

func (l Level) String() string {
	switch l {
	case High:
		return "High"
	case Moderate:
		return "Moderate"
	default:
		return "Low"
	}
}

// Breakdown holds the sub-scores behind a quality score.
type Breakdown struct {
	Noise  float64
	Range  float64
	Wiggle float64
	Total  float64
}

// Evaluate computes all sub-scores for a normalised curve. Curves with fewer
// than six samples score zero throughout. The range sub-score is capped at 1
// but not floored, so a curve that rises over the window is penalised.
func Evaluate(time, modulus []float64) Breakdown {
	n := len(modulus)
	if n < minSamples || len(time) != n {
		return Breakdown{}
	}

	tail := modulus[max(0, n-tailSamples):]
	noise := stats.StdDev(tail)
	b := Breakdown{
		Noise: max(0, 1-noise/noiseRef),
		Range: min(1, (modulus[0]-modulus[n-1])/rangeRef),
	}
	changes := stats.SignChanges(modulus)
	b.Wiggle = max(0, 1-float64(changes)/(wiggleFrac*float64(n)))

	b.Total = core.Clamp(weightNoise*b.Noise+weightRange*b.Range+weightWiggle*b.Wiggle, 0, 1)
	return b
}

// Score returns the overall quality in [0, 1].
func Score(time, modulus []float64) float64 {
	return Evaluate(time, modulus).Total
}

// Tier maps a score to a level: High above 0.85, Moderate above 0.50.
func Tier(score float64) Level {
	switch {
	case score > highThreshold:
		return High
	case score > moderateThreshold:
		return Moderate
	default:
		return Low
	}
}
