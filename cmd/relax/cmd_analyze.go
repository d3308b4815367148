package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-relax/internal/ingest"
	"github.com/cwbudde/algo-relax/internal/logging"
	"github.com/cwbudde/algo-relax/internal/report"
	"github.com/cwbudde/algo-relax/internal/store"
	"github.com/cwbudde/algo-relax/relax/analysis"
	"github.com/cwbudde/algo-relax/relax/curve"
	"github.com/cwbudde/algo-relax/relax/kinetics"
	"github.com/cwbudde/algo-relax/relax/spectrum"
	"github.com/cwbudde/algo-relax/relax/tts"
)

type analyzeOptions struct {
	tg           float64
	minPoints    int
	workers      int
	reference    float64
	plateau      float64
	spectrumTemp float64
	modes        int
	alpha        float64
	format       string
	save         bool
	meta         store.Metadata
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Fit every temperature in a wide-format file and derive kinetics and a mastercurve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, root, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.tg, "tg", 0, "glass transition temperature in °C; curves below it are skipped")
	f.IntVar(&opts.minPoints, "min-points", curve.DefaultMinPoints, "minimum points per trimmed curve")
	f.IntVar(&opts.workers, "workers", 1, "curves analysed concurrently")
	f.Float64Var(&opts.reference, "reference", 0, "mastercurve reference temperature in °C (default: middle temperature)")
	f.Float64Var(&opts.plateau, "plateau", 1, "rubbery plateau modulus G' in MPa, used to locate Tv")
	f.Float64Var(&opts.spectrumTemp, "spectrum-temp", 0, "also invert the spectrum of the curve nearest this temperature")
	f.IntVar(&opts.modes, "modes", spectrum.DefaultModes, "spectrum grid size")
	f.Float64Var(&opts.alpha, "alpha", spectrum.DefaultAlpha, "spectrum regularisation strength")
	f.StringVar(&opts.format, "format", "text", "output format (text, json, yaml)")
	f.BoolVar(&opts.save, "save", false, "store valid results in the lab notebook")
	f.StringVar(&opts.meta.MaterialClass, "class", "", "material class recorded with --save")
	f.StringVar(&opts.meta.MaterialType, "type", "", "material type recorded with --save")
	f.StringVar(&opts.meta.Composition, "composition", "", "composition recorded with --save")
	f.StringVar(&opts.meta.Chemistry, "chemistry", "", "chemistry recorded with --save")
	return cmd
}

//nolint:funlen
func runAnalyze(cmd *cobra.Command, root *rootOptions, opts *analyzeOptions, path string) error {
	cfg := root.file
	applyIntConfig(cmd, "min-points", &opts.minPoints, cfg.Analysis.MinPoints)
	applyIntConfig(cmd, "workers", &opts.workers, cfg.Analysis.Workers)
	applyIntConfig(cmd, "modes", &opts.modes, cfg.Spectrum.Modes)
	applyFloatConfig(cmd, "alpha", &opts.alpha, cfg.Spectrum.Alpha)
	applyFloatConfig(cmd, "plateau", &opts.plateau, cfg.Kinetics.Plateau)
	tg := optionalFloat(cmd, "tg", opts.tg, cfg.Analysis.Tg)
	ref := optionalFloat(cmd, "reference", opts.reference, cfg.Mastercurve.Reference)
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	log := logging.New("analyze")
	curves, err := ingest.ParseFile(path)
	if err != nil {
		return err
	}
	log.Info("parsed curves", slog.String("file", path), slog.Int("curves", len(curves)))

	analyzer := analysis.New(
		analysis.WithMinPoints(opts.minPoints),
		analysis.WithWorkers(opts.workers),
		analysis.WithLogger(logging.New("analysis")),
	)
	results, err := analyzer.AnalyzeAll(cmd.Context(), curves, tg)
	if err != nil {
		return err
	}

	summary := report.NewSummary(filepath.Base(path), results)
	pts := kinetics.Points(results)
	for _, fit := range []func([]kinetics.Point) (kinetics.Fit, error){kinetics.Arrhenius, kinetics.VFT} {
		k, err := fit(pts)
		if err != nil {
			log.Info("kinetics fit skipped", slog.String("error", err.Error()))
			continue
		}
		if k.EaCheck != kinetics.EaOK {
			log.Warn("suspicious activation energy", slog.String("warning", k.EaCheck.Warning(k.Ea)))
		}
		summary.AddKinetics(k, opts.plateau)
	}

	mc, err := tts.Build(results, ref)
	switch {
	case errors.Is(err, tts.ErrNoCurves):
		log.Info("no mastercurve: no usable curves")
	case err != nil:
		return err
	default:
		summary.SetMastercurve(mc)
	}

	if cmd.Flags().Changed("spectrum-temp") {
		if err := addSpectrum(summary, results, opts); err != nil {
			return err
		}
	}

	if opts.save {
		st, err := store.Open(root.dbPath)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				log.Warn("failed to close db", slog.String("error", cerr.Error()))
			}
		}()
		ids, err := st.SaveAll(cmd.Context(), filepath.Base(path), results, opts.meta)
		if err != nil {
			return fmt.Errorf("failed to save results: %w", err)
		}
		log.Info("saved results", slog.Int("count", len(ids)), slog.String("db", root.dbPath))
	}

	return writeSummary(cmd.OutOrStdout(), opts.format, summary)
}

func addSpectrum(summary *report.Summary, results []analysis.Result, opts *analyzeOptions) error {
	var nearest *analysis.Result
	for i := range results {
		r := &results[i]
		if !r.Valid {
			continue
		}
		if nearest == nil || abs(r.Temperature-opts.spectrumTemp) < abs(nearest.Temperature-opts.spectrumTemp) {
			nearest = r
		}
	}
	if nearest == nil {
		return fmt.Errorf("no valid curve for spectrum inversion")
	}
	sp, err := spectrum.Invert(nearest.Curve.Time, nearest.Curve.Modulus, opts.modes, opts.alpha)
	if err != nil {
		return err
	}
	summary.SetSpectrum(nearest.Temperature, sp, sp.Residual(nearest.Curve.Time, nearest.Curve.Modulus))
	return nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func writeSummary(w io.Writer, format string, s *report.Summary) error {
	switch format {
	case "json":
		return report.WriteJSON(w, s)
	case "yaml":
		return report.WriteYAML(w, s)
	default:
		return report.WriteText(w, s)
	}
}
