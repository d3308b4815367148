package tts

import (
	"errors"
	"math"
	"sort"

	"github.com/cwbudde/algo-relax/relax/analysis"
)

// ErrNoCurves reports that no result carried a usable characteristic time.
var ErrNoCurves = errors.New("tts: no usable curves")

// Shift records the shift applied to one temperature.
type Shift struct {
	Temperature float64
	Tau         float64
	Factor      float64
}

// Mastercurve is the superposition of all usable curves at the reference
// temperature. Time is sorted ascending and Modulus is aligned with it.
type Mastercurve struct {
	Reference    float64
	Shifts       []Shift
	ShiftFactors map[float64]float64
	Time         []float64
	Modulus      []float64
}

type usable struct {
	res analysis.Result
	tau float64
}

// Build shifts every valid result with a positive finite characteristic
// time. With ref nil the middle temperature is the reference; otherwise the
// temperature nearest to *ref is used, the lower one on ties.
func Build(results []analysis.Result, ref *float64) (Mastercurve, error) {
	var curves []usable
	for _, r := range results {
		if !r.Valid {
			continue
		}
		tau, ok := r.CharacteristicTime()
		if !ok || tau <= 0 || math.IsInf(tau, 0) || math.IsNaN(tau) {
			continue
		}
		curves = append(curves, usable{res: r, tau: tau})
	}
	if len(curves) == 0 {
		return Mastercurve{}, ErrNoCurves
	}
	sort.SliceStable(curves, func(i, j int) bool {
		return curves[i].res.Temperature < curves[j].res.Temperature
	})

	refIdx := len(curves) / 2
	if ref != nil {
		refIdx = 0
		for i, c := range curves {
			if math.Abs(c.res.Temperature-*ref) < math.Abs(curves[refIdx].res.Temperature-*ref) {
				refIdx = i
			}
		}
	}
	tauRef := curves[refIdx].tau

	mc := Mastercurve{
		Reference:    curves[refIdx].res.Temperature,
		Shifts:       make([]Shift, 0, len(curves)),
		ShiftFactors: make(map[float64]float64, len(curves)),
	}

	type sample struct{ t, g float64 }
	var samples []sample
	for i, c := range curves {
		aT := c.tau / tauRef
		if i == refIdx {
			aT = 1
		}
		mc.Shifts = append(mc.Shifts, Shift{Temperature: c.res.Temperature, Tau: c.tau, Factor: aT})
		mc.ShiftFactors[c.res.Temperature] = aT
		for k, t := range c.res.Curve.Time {
			samples = append(samples, sample{t: t / aT, g: c.res.Curve.Modulus[k]})
		}
	}

	sort.SliceStable(samples, func(i, j int) bool { return samples[i].t < samples[j].t })
	mc.Time = make([]float64, len(samples))
	mc.Modulus = make([]float64, len(samples))
	for i, s := range samples {
		mc.Time[i] = s.t
		mc.Modulus[i] = s.g
	}
	return mc, nil
}
