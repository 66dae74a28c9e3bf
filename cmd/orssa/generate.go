// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/orssa/csvio"
	"github.com/katalvlaran/orssa/synth"
	"github.com/spf13/cobra"
)

// generators maps --kind to a series builder.
var generators = map[string]func(n int, seed int64, scale float64) []float64{
	"sine":         func(n int, seed int64, _ float64) []float64 { return synth.SineTrend(n, seed) },
	"experimental": func(n int, seed int64, _ float64) []float64 { return synth.Experimental(n, seed) },
	"composite":    func(n int, _ int64, scale float64) []float64 { return synth.Composite(n, scale) },
	"benchmark": func(n int, seed int64, _ float64) []float64 {
		return synth.BenchmarkSeries(n, rand.New(rand.NewSource(seed)))
	},
	"chirp": func(n int, seed int64, scale float64) []float64 { return synth.Chirp(n, seed, synth.WithAmplitude(scale)) },
	"pulse": func(n int, seed int64, scale float64) []float64 { return synth.Pulse(n, seed, synth.WithAmplitude(scale)) },
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		kind  string
		n     int
		seed  int64
		scale float64
		sigma float64
		gauss bool
		out   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic series to CSV",
		Long: `Write a synthetic series (one value per line) to CSV.
Kinds: sine, experimental, composite, benchmark, chirp, pulse.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, ok := generators[kind]
			if !ok {
				return fmt.Errorf("generate: unknown kind %q", kind)
			}
			if !(scale > 0) {
				return fmt.Errorf("generate: scale must be > 0")
			}
			y := gen(n, seed, scale)
			if y == nil {
				return fmt.Errorf("generate: invalid length %d", n)
			}
			if sigma > 0 {
				if gauss {
					y = synth.AddGaussianNoise(y, sigma, seed+1)
				} else {
					y = synth.AddUniformNoise(y, sigma, seed+1)
				}
			}
			if err := csvio.SaveArray(a.fs, out, y); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d samples (%s) to %s\n", len(y), kind, out)

			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&kind, "kind", "sine", "series kind")
	f.IntVarP(&n, "n", "n", 300, "series length")
	f.Int64Var(&seed, "gen-seed", 42, "generator seed")
	f.Float64Var(&scale, "scale", 1, "amplitude scale (composite, chirp, pulse)")
	f.Float64Var(&sigma, "sigma", 0, "extra noise level (0 = none)")
	f.BoolVar(&gauss, "gaussian", false, "use Gaussian instead of uniform extra noise")
	f.StringVarP(&out, "out", "o", "", "output CSV")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
