package kinetics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-relax/relax/core"
)

const (
	// LowEa is the activation energy in kJ/mol below which an Arrhenius fit
	// is flagged as implausibly flat.
	LowEa = 10.0

	// viscosityAtTv is the viscosity in Pa·s that defines the topology
	// freezing temperature.
	viscosityAtTv = 1e12

	minComparePoints = 2
)

// ErrInvalidPlateau reports a non-positive plateau modulus.
var ErrInvalidPlateau = errors.New("kinetics: plateau modulus must be positive")

// EaCheck flags activation energies that point at bad data.
type EaCheck int

// Activation energy checks.
const (
	EaOK EaCheck = iota
	EaNegative
	EaLow
)

func (c EaCheck) String() string {
	switch c {
	case EaOK:
		return "ok"
	case EaNegative:
		return "negative"
	case EaLow:
		return "low"
	default:
		return "unknown"
	}
}

// Warning returns a human-readable note for a flagged Ea, or "" for EaOK.
func (c EaCheck) Warning(ea float64) string {
	switch c {
	case EaNegative:
		return fmt.Sprintf("negative Ea (%.1f kJ/mol): tau should decrease with increasing temperature", ea)
	case EaLow:
		return fmt.Sprintf("very low Ea (%.1f kJ/mol): verify data quality", ea)
	default:
		return ""
	}
}

// CheckEa classifies an activation energy in kJ/mol.
func CheckEa(ea float64) EaCheck {
	switch {
	case ea < 0:
		return EaNegative
	case ea < LowEa:
		return EaLow
	default:
		return EaOK
	}
}

// Tv returns the topology freezing temperature in °C: the temperature at
// which the Arrhenius line reaches tau = 1e12 / G', with the plateau
// modulus G' given in MPa.
func Tv(fit Fit, gPlateauMPa float64) (float64, error) {
	if fit.Type != TypeArrhenius {
		return 0, fmt.Errorf("%w: Tv needs an Arrhenius fit, got %s", ErrDegenerate, fit.Type)
	}
	if !(gPlateauMPa > 0) || !core.IsFinite(gPlateauMPa) {
		return 0, fmt.Errorf("%w: %g MPa", ErrInvalidPlateau, gPlateauMPa)
	}
	slope, intercept := fit.Params["slope"], fit.Params["intercept"]
	lnTarget := math.Log(viscosityAtTv / (gPlateauMPa * 1e6))
	denom := lnTarget - intercept
	if slope == 0 || denom == 0 {
		return 0, fmt.Errorf("%w: flat Arrhenius line", ErrDegenerate)
	}
	kelvin := slope / denom
	if !(kelvin > 0) || !core.IsFinite(kelvin) {
		return 0, fmt.Errorf("%w: Tv at %g K", ErrDegenerate, kelvin)
	}
	return kelvin - core.ZeroCelsius, nil
}

// Sample is one material's relaxation times for side-by-side comparison.
type Sample struct {
	Name        string
	Tg          float64
	GPlateauMPa float64
	Points      []Point
}

// Comparison is the Arrhenius summary of one Sample. Err is set when the
// sample could not be fitted; HasTv is false when Tv is undefined.
type Comparison struct {
	Name        string
	Tg          float64
	GPlateauMPa float64
	Used        int
	Fit         Fit
	Tv          float64
	HasTv       bool
	Err         error
}

// Compare fits an Arrhenius line per sample using only points above the
// sample's Tg. Two points suffice here. Results keep the input order.
func Compare(samples []Sample) []Comparison {
	out := make([]Comparison, len(samples))
	for i, s := range samples {
		c := Comparison{Name: s.Name, Tg: s.Tg, GPlateauMPa: s.GPlateauMPa}
		var pts []Point
		for _, p := range s.Points {
			if p.Temperature > s.Tg && p.Tau > 0 {
				pts = append(pts, p)
			}
		}
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].Temperature < pts[b].Temperature })
		c.Used = len(pts)

		fit, err := arrhenius(pts, minComparePoints)
		if err != nil {
			c.Err = err
			out[i] = c
			continue
		}
		c.Fit = fit
		if tv, err := Tv(fit, s.GPlateauMPa); err == nil {
			c.Tv, c.HasTv = tv, true
		}
		out[i] = c
	}
	return out
}
