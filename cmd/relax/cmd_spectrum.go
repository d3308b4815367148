package main

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-relax/internal/ingest"
	"github.com/cwbudde/algo-relax/internal/report"
	"github.com/cwbudde/algo-relax/relax/curve"
	"github.com/cwbudde/algo-relax/relax/spectrum"
)

type spectrumOptions struct {
	temp      float64
	modes     int
	alpha     float64
	minPoints int
	format    string
}

func newSpectrumCmd(root *rootOptions) *cobra.Command {
	opts := &spectrumOptions{}
	cmd := &cobra.Command{
		Use:   "spectrum FILE",
		Short: "Invert the relaxation spectrum H(tau) of one curve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpectrum(cmd, root, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.temp, "temp", 0, "temperature of the curve to invert (nearest is used)")
	f.IntVar(&opts.modes, "modes", spectrum.DefaultModes, "spectrum grid size")
	f.Float64Var(&opts.alpha, "alpha", spectrum.DefaultAlpha, "regularisation strength")
	f.IntVar(&opts.minPoints, "min-points", curve.DefaultMinPoints, "minimum points in the trimmed curve")
	f.StringVar(&opts.format, "format", "text", "output format (text, json, yaml)")
	_ = cmd.MarkFlagRequired("temp")
	return cmd
}

func runSpectrum(cmd *cobra.Command, root *rootOptions, opts *spectrumOptions, path string) error {
	cfg := root.file
	applyIntConfig(cmd, "modes", &opts.modes, cfg.Spectrum.Modes)
	applyFloatConfig(cmd, "alpha", &opts.alpha, cfg.Spectrum.Alpha)
	applyIntConfig(cmd, "min-points", &opts.minPoints, cfg.Analysis.MinPoints)
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	curves, err := ingest.ParseFile(path)
	if err != nil {
		return err
	}
	raw := curves[0]
	for _, c := range curves[1:] {
		if abs(c.Temperature-opts.temp) < abs(raw.Temperature-opts.temp) {
			raw = c
		}
	}

	trimmed, err := curve.Trim(raw.Time, raw.Modulus, curve.WithMinPoints(opts.minPoints))
	if err != nil {
		return fmt.Errorf("curve at %g °C: %w", raw.Temperature, err)
	}
	sp, err := spectrum.Invert(trimmed.Time, trimmed.Modulus, opts.modes, opts.alpha)
	if err != nil {
		return err
	}
	residual := sp.Residual(trimmed.Time, trimmed.Modulus)

	if opts.format != "text" {
		summary := report.NewSummary(filepath.Base(path), nil)
		summary.SetSpectrum(raw.Temperature, sp, residual)
		return writeSummary(cmd.OutOrStdout(), opts.format, summary)
	}
	return writeSpectrumTable(cmd.OutOrStdout(), raw.Temperature, sp, residual)
}

func writeSpectrumTable(w io.Writer, temp float64, sp spectrum.Spectrum, residual float64) error {
	fmt.Fprintf(w, "Spectrum at %g °C (residual %.4g, mean tau %.4g s)\n\n", temp, residual, sp.WeightedLogMeanTau())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAU (s)\tH")
	for i, tau := range sp.Tau {
		fmt.Fprintf(tw, "%.4e\t%.4e\n", tau, sp.H[i])
	}
	return tw.Flush()
}
