package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-relax/internal/ingest"
	"github.com/cwbudde/algo-relax/internal/logging"
	"github.com/cwbudde/algo-relax/internal/report"
	"github.com/cwbudde/algo-relax/relax/analysis"
	"github.com/cwbudde/algo-relax/relax/curve"
	"github.com/cwbudde/algo-relax/relax/kinetics"
)

type compareOptions struct {
	tg        float64
	plateau   float64
	minPoints int
	workers   int
	format    string
}

func newCompareCmd(root *rootOptions) *cobra.Command {
	opts := &compareOptions{}
	cmd := &cobra.Command{
		Use:   "compare FILE...",
		Short: "Compare Arrhenius kinetics, Ea and Tv across samples",
		Long: "Each FILE is one sample in the wide format. Only temperatures above Tg " +
			"enter a sample's Arrhenius fit.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, root, opts, args)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.tg, "tg", 0, "glass transition temperature in °C shared by all samples")
	f.Float64Var(&opts.plateau, "plateau", 1, "rubbery plateau modulus G' in MPa shared by all samples")
	f.IntVar(&opts.minPoints, "min-points", curve.DefaultMinPoints, "minimum points per trimmed curve")
	f.IntVar(&opts.workers, "workers", 1, "curves analysed concurrently")
	f.StringVar(&opts.format, "format", "text", "output format (text, json, yaml)")
	return cmd
}

func runCompare(cmd *cobra.Command, root *rootOptions, opts *compareOptions, paths []string) error {
	cfg := root.file
	applyIntConfig(cmd, "min-points", &opts.minPoints, cfg.Analysis.MinPoints)
	applyIntConfig(cmd, "workers", &opts.workers, cfg.Analysis.Workers)
	applyFloatConfig(cmd, "tg", &opts.tg, cfg.Analysis.Tg)
	applyFloatConfig(cmd, "plateau", &opts.plateau, cfg.Kinetics.Plateau)
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	log := logging.New("compare")
	analyzer := analysis.New(
		analysis.WithMinPoints(opts.minPoints),
		analysis.WithWorkers(opts.workers),
		analysis.WithLogger(logging.New("analysis")),
	)

	samples := make([]kinetics.Sample, 0, len(paths))
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		curves, err := ingest.ParseFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		results, err := analyzer.AnalyzeAll(cmd.Context(), curves, &opts.tg)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		samples = append(samples, kinetics.Sample{
			Name:        name,
			Tg:          opts.tg,
			GPlateauMPa: opts.plateau,
			Points:      kinetics.Points(results),
		})
		names = append(names, name)
	}

	comparisons := kinetics.Compare(samples)
	for _, c := range comparisons {
		switch {
		case c.Err != nil:
			log.Warn("sample not fitted", slog.String("sample", c.Name), slog.String("error", c.Err.Error()))
		case c.Fit.EaCheck != kinetics.EaOK:
			log.Warn("suspicious activation energy", slog.String("sample", c.Name),
				slog.String("warning", c.Fit.EaCheck.Warning(c.Fit.Ea)))
		}
	}

	summary := report.NewSummary(strings.Join(names, ", "), nil)
	summary.AddComparisons(comparisons)
	return writeSummary(cmd.OutOrStdout(), opts.format, summary)
}
