package analysis

import (
	"log/slog"

	"github.com/cwbudde/algo-relax/internal/logging"
	"github.com/cwbudde/algo-relax/relax/curve"
	"github.com/cwbudde/algo-relax/relax/model"
)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMinPoints sets the minimum trimmed curve length.
func WithMinPoints(n int) Option {
	return func(a *Analyzer) {
		if n >= 1 {
			a.minPoints = n
		}
	}
}

// WithModels replaces the fitted model set. Models are attempted in the
// given order, which also breaks AICc ties. An empty list is ignored.
func WithModels(models ...model.Model) Option {
	return func(a *Analyzer) {
		if len(models) > 0 {
			a.models = append([]model.Model(nil), models...)
		}
	}
}

// WithLogger sets the logger for fit diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithWorkers bounds the number of curves AnalyzeAll processes at once.
// One (the default) analyses sequentially.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n >= 1 {
			a.workers = n
		}
	}
}

func defaults() *Analyzer {
	return &Analyzer{
		minPoints: curve.DefaultMinPoints,
		models:    model.All(),
		logger:    logging.New("analysis"),
		workers:   1,
	}
}
