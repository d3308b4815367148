package analysis

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-relax/relax/model"
	"github.com/cwbudde/algo-relax/relax/quality"
)

const (
	poorFitR2   = 0.95
	nearTgRange = 20.0
)

var interpretations = map[string]string{
	model.KindMaxwell.String():         "Behaviour matches a Maxwellian fluid (simple exponential decay).",
	model.KindSingleStretched.String(): "Behaviour matches a vitrimer-like stretched exponential (broad relaxation spectrum).",
	model.KindDualStretched.String():   "Complex dual-mode behaviour: distinct fast and slow relaxation processes.",
}

func assess(res Result, tg *float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Assessment for %g°C:\n", res.Temperature)

	pct := res.Quality * 100
	switch quality.Tier(res.Quality) {
	case quality.High:
		fmt.Fprintf(&b, "High quality data (%.0f%%). The curve is smooth and shows clear relaxation.\n", pct)
	case quality.Moderate:
		fmt.Fprintf(&b, "Moderate quality (%.0f%%). Some noise or limited relaxation observed.\n", pct)
	default:
		fmt.Fprintf(&b, "Low quality (%.0f%%). Significant noise or drift detected; results may be unreliable.\n", pct)
	}

	if text, ok := interpretations[res.Best]; ok {
		b.WriteString("- " + text + "\n")
	}

	if best, ok := res.Fits[res.Best]; ok && best.R2 < poorFitR2 {
		fmt.Fprintf(&b, "- Warning: poor fit (R²=%.3f). Check for artifacts.\n", best.R2)
	}
	if res.LowConfidence {
		b.WriteString("- Warning: no model produced a finite AICc; selection is low confidence.\n")
	}
	if tg != nil && *tg <= res.Temperature && res.Temperature < *tg+nearTgRange {
		b.WriteString("- Note: temperature is near Tg. Dynamics may follow WLF (super-Arrhenius) rather than pure Arrhenius.\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
