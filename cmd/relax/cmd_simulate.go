package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-relax/internal/ingest"
	"github.com/cwbudde/algo-relax/internal/logging"
	"github.com/cwbudde/algo-relax/relax/curve"
	"github.com/cwbudde/algo-relax/relax/model"
	"github.com/cwbudde/algo-relax/relax/sim"
)

type simulateOptions struct {
	temps   []float64
	model   string
	physics sim.Physics
	noise   float64
	seed    int64
	output  string
}

func newSimulateCmd(_ *rootOptions) *cobra.Command {
	opts := &simulateOptions{physics: sim.DefaultPhysics()}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Generate synthetic relaxation curves in the wide CSV format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd, opts)
		},
	}

	p := &opts.physics
	f := cmd.Flags()
	f.Float64SliceVar(&opts.temps, "temps", []float64{80, 100, 120, 140, 160}, "temperatures in °C")
	f.StringVar(&opts.model, "model", model.KindSingleStretched.String(), "model kind (Maxwell, SingleStretched, DualStretched)")
	f.Float64Var(&p.Ea, "ea", p.Ea, "activation energy in kJ/mol")
	f.Float64Var(&p.Tv, "tv", p.Tv, "topology freezing temperature in °C")
	f.Float64Var(&p.Tg, "tg", p.Tg, "glass transition temperature in °C")
	f.Float64Var(&p.GPlateau, "plateau", p.GPlateau, "plateau modulus in MPa")
	f.Float64Var(&p.Beta, "beta", p.Beta, "stretch exponent")
	f.Float64Var(&p.Fraction, "fraction", p.Fraction, "fast-mode fraction for DualStretched")
	f.Float64Var(&p.TauFactor, "tau-factor", p.TauFactor, "slow/fast time ratio for DualStretched")
	f.Float64Var(&p.Ea2, "ea2", p.Ea2, "slow-mode activation energy in kJ/mol")
	f.Float64Var(&p.Beta2, "beta2", p.Beta2, "slow-mode stretch exponent")
	f.Float64Var(&opts.noise, "noise", 0.005, "gaussian noise relative to the plateau")
	f.Int64Var(&opts.seed, "seed", 1, "random seed")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func runSimulate(cmd *cobra.Command, opts *simulateOptions) (err error) {
	kind, err := model.ParseKind(opts.model)
	if err != nil {
		return err
	}
	curves, err := sim.Series(opts.temps, kind, opts.physics, sim.WithSeed(opts.seed), sim.WithNoise(opts.noise))
	if err != nil {
		return err
	}

	raws := make([]curve.Raw, len(curves))
	for i, c := range curves {
		raws[i] = c.Raw()
	}

	w := cmd.OutOrStdout()
	if opts.output != "" {
		file, createErr := os.Create(opts.output)
		if createErr != nil {
			return fmt.Errorf("failed to create output: %w", createErr)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = file
	}

	logging.New("simulate").Info("simulated curves",
		slog.String("model", kind.String()),
		slog.Int("curves", len(raws)),
	)
	return ingest.WriteWide(w, raws)
}
