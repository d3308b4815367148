package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-relax/relax/core"
	"github.com/cwbudde/algo-relax/relax/curve"
	"github.com/cwbudde/algo-relax/relax/model"
)

const (
	viscosityAtTv = 1e12 // Pa·s
	frozenTau     = 1e20

	defaultTimeMin    = 1e-4
	defaultTimeMax    = 1e8
	defaultTimePoints = 500
)

// ErrInvalidPhysics reports parameters that cannot produce a curve.
var ErrInvalidPhysics = errors.New("sim: invalid physics parameters")

// Physics describes the simulated material. Temperatures are in °C,
// activation energies in kJ/mol and the plateau modulus in MPa.
type Physics struct {
	Ea        float64
	Tv        float64
	Tg        float64
	GPlateau  float64
	Beta      float64
	Fraction  float64
	TauFactor float64
	Ea2       float64
	Beta2     float64
}

// DefaultPhysics returns Ea 80 kJ/mol, Tv 100 °C, Tg 50 °C, G 1 MPa,
// beta 0.8, fast fraction 0.5 and a slow mode 50 times slower at Tv sharing
// the fast mode's Ea and beta.
func DefaultPhysics() Physics {
	return Physics{
		Ea:        80,
		Tv:        100,
		Tg:        50,
		GPlateau:  1,
		Beta:      0.8,
		Fraction:  0.5,
		TauFactor: 50,
		Ea2:       80,
		Beta2:     0.8,
	}
}

func (p Physics) validate() error {
	switch {
	case !(p.GPlateau > 0):
		return fmt.Errorf("%w: plateau modulus %g", ErrInvalidPhysics, p.GPlateau)
	case p.Beta <= 0 || p.Beta > 1:
		return fmt.Errorf("%w: beta %g", ErrInvalidPhysics, p.Beta)
	case p.Fraction < 0 || p.Fraction > 1:
		return fmt.Errorf("%w: fraction %g", ErrInvalidPhysics, p.Fraction)
	case core.Kelvin(p.Tv) <= 0:
		return fmt.Errorf("%w: Tv %g°C", ErrInvalidPhysics, p.Tv)
	}
	return nil
}

// Curve is a simulated curve. Modulus is normalised to the plateau; Tau is
// the fast-mode relaxation time used to generate it.
type Curve struct {
	Temperature float64
	Time        []float64
	Modulus     []float64
	Tau         float64
	Frozen      bool
	GPlateau    float64
}

// Raw scales the curve to pascals for the analysis pipeline.
func (c Curve) Raw() curve.Raw {
	g := make([]float64, len(c.Modulus))
	for i, v := range c.Modulus {
		g[i] = v * c.GPlateau * 1e6
	}
	return curve.Raw{
		Temperature: c.Temperature,
		Time:        append([]float64(nil), c.Time...),
		Modulus:     g,
	}
}

// Option configures Simulate.
type Option func(*options)

type options struct {
	seed  int64
	noise float64
	times []float64
}

// WithSeed sets the noise generator seed.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithNoise adds Gaussian noise with the given standard deviation relative
// to the plateau.
func WithNoise(sigma float64) Option {
	return func(o *options) {
		if sigma >= 0 {
			o.noise = sigma
		}
	}
}

// WithTimes replaces the default log-spaced sampling times.
func WithTimes(times []float64) Option {
	return func(o *options) {
		if len(times) > 0 {
			o.times = append([]float64(nil), times...)
		}
	}
}

// RelaxationTime returns the Arrhenius relaxation time at temp for a mode
// with time tauTv at Tv and activation energy ea.
func RelaxationTime(temp, tv, ea, tauTv float64) float64 {
	exponent := ea * 1000 / core.GasConstant * (1/core.Kelvin(temp) - 1/core.Kelvin(tv))
	return tauTv * math.Exp(exponent)
}

// Simulate generates one curve at temp °C.
func Simulate(temp float64, kind model.Kind, p Physics, opts ...Option) (Curve, error) {
	if err := p.validate(); err != nil {
		return Curve{}, err
	}
	o := options{seed: 1}
	for _, opt := range opts {
		opt(&o)
	}
	times := o.times
	if times == nil {
		times = core.LogSpace(defaultTimeMin, defaultTimeMax, defaultTimePoints)
	}

	tauTv := viscosityAtTv / (p.GPlateau * 1e6)
	frozen := temp < p.Tg
	tau1, tau2 := frozenTau, frozenTau
	if !frozen {
		tau1 = RelaxationTime(temp, p.Tv, p.Ea, tauTv)
		tau2 = RelaxationTime(temp, p.Tv, p.Ea2, tauTv*p.TauFactor)
	}

	m, err := model.ForKind(kind)
	if err != nil {
		return Curve{}, err
	}
	var params []float64
	switch kind {
	case model.KindMaxwell:
		params = []float64{1, tau1}
	case model.KindSingleStretched:
		params = []float64{1, tau1, p.Beta}
	case model.KindDualStretched:
		beta2 := p.Beta2
		if beta2 <= 0 {
			beta2 = p.Beta
		}
		params = []float64{1, p.Fraction, tau1, p.Beta, tau2, beta2}
	}

	g := make([]float64, len(times))
	for i, t := range times {
		if frozen {
			g[i] = 1
			continue
		}
		g[i] = m.Evaluate(t, params)
	}
	if o.noise > 0 {
		rng := rand.New(rand.NewSource(o.seed))
		for i := range g {
			g[i] += rng.NormFloat64() * o.noise
		}
	}

	return Curve{
		Temperature: temp,
		Time:        times,
		Modulus:     g,
		Tau:         tau1,
		Frozen:      frozen,
		GPlateau:    p.GPlateau,
	}, nil
}

// Series simulates one curve per temperature. Each curve gets its own noise
// stream derived from the seed and its position.
func Series(temps []float64, kind model.Kind, p Physics, opts ...Option) ([]Curve, error) {
	o := options{seed: 1}
	for _, opt := range opts {
		opt(&o)
	}
	out := make([]Curve, 0, len(temps))
	for i, temp := range temps {
		c, err := Simulate(temp, kind, p, append(append([]Option(nil), opts...), WithSeed(o.seed+int64(i)))...)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
