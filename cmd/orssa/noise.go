// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/katalvlaran/orssa/plotting"
	"github.com/katalvlaran/orssa/synth"
	"github.com/spf13/cobra"
)

// dtwBand is the Sakoe-Chiba band used when scoring against the clean signal.
const dtwBand = 10

func newNoiseCmd(a *app) *cobra.Command {
	var (
		n         int
		scale     float64
		sigma     float64
		noiseSeed int64
		out       outputs
	)
	cmd := &cobra.Command{
		Use:   "noise",
		Short: "Denoise a synthetic composite signal and score it against the clean one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clean := synth.Composite(n, scale)
			noisy := synth.AddUniformNoise(clean, sigma, noiseSeed)
			if clean == nil || noisy == nil {
				return fmt.Errorf("noise: invalid generator parameters (n=%d scale=%g sigma=%g)", n, scale, sigma)
			}
			cfg := a.cfg.pipelineConfig(n)
			runner, err := a.runner()
			if err != nil {
				return err
			}
			cmp, err := runner.RunWithBaseline(noisy, cfg)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printComparison(w, cmp)
			if err = printAgainstClean(w, clean, cmp, dtwBand); err != nil {
				return err
			}

			return out.write(a, "synthetic", cfg, cmp,
				plotting.Line{Name: "noisy", Y: noisy},
				plotting.Line{Name: "clean", Y: clean},
			)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&n, "n", "n", 300, "series length")
	f.Float64Var(&scale, "scale", 1, "signal scale")
	f.Float64Var(&sigma, "sigma", 0.5, "uniform noise half-width")
	f.Int64Var(&noiseSeed, "noise-seed", 12345, "noise seed")
	out.register(cmd)

	return cmd
}
