package analysis

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-relax/relax/curve"
	"github.com/cwbudde/algo-relax/relax/model"
	"github.com/cwbudde/algo-relax/relax/quality"
)

// ReasonFrozen is the Reason of a result below the glass transition.
const ReasonFrozen = "glassy/frozen (below Tg)"

// Analyzer analyses relaxation curves with a fixed configuration.
type Analyzer struct {
	minPoints int
	models    []model.Model
	logger    *slog.Logger
	workers   int
}

// New returns an Analyzer configured by opts.
func New(opts ...Option) *Analyzer {
	a := defaults()
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze processes one curve. tg is the glass-transition temperature in °C;
// nil disables the barrier.
func (a *Analyzer) Analyze(raw curve.Raw, tg *float64) Result {
	res := Result{Temperature: raw.Temperature}
	log := a.logger.With(slog.Float64("temperature", raw.Temperature))

	if tg != nil && raw.Temperature < *tg {
		res.Status = StatusFrozen
		res.Reason = ReasonFrozen
		res.Assessment = fmt.Sprintf("Temperature (%g°C) is below Tg (%g°C). Material is glassy; no relaxation flow expected.",
			raw.Temperature, *tg)
		log.Debug("skipped below Tg", slog.Float64("tg", *tg))
		return res
	}

	c, err := curve.Trim(raw.Time, raw.Modulus, curve.WithMinPoints(a.minPoints))
	if err != nil {
		res.Status = StatusDataQuality
		res.Reason = "data quality: " + err.Error()
		log.Warn("curve rejected", slog.String("error", err.Error()))
		return res
	}

	res.Valid = true
	res.Status = StatusOK
	res.Curve = c
	res.Quality = quality.Score(c.Time, c.Modulus)
	res.Fits = make(map[string]FitOutcome, len(a.models))
	res.Order = make([]string, 0, len(a.models))

	var seed model.Params
	for _, m := range a.models {
		out := fitModel(m, c.Time, c.Modulus, seed)
		if out.OK && m.Kind() == model.KindSingleStretched {
			seed = out.Params
		}
		if out.Err != nil {
			log.Warn("model fit failed", slog.String("model", m.Name()), slog.String("error", out.Err.Error()))
		}
		res.Fits[m.Name()] = out
		res.Order = append(res.Order, m.Name())
	}

	best, confident := selectBest(res.Order, res.Fits)
	res.Best = best
	res.LowConfidence = !confident
	log.Debug("model selected",
		slog.String("model", best),
		slog.Float64("aicc", res.Fits[best].AICc),
		slog.Bool("low_confidence", res.LowConfidence))

	res.Assessment = assess(res, tg)
	return res
}
