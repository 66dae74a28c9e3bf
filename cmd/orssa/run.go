// SPDX-License-Identifier: MIT

package main

import (
	"github.com/katalvlaran/orssa/csvio"
	"github.com/katalvlaran/orssa/pipeline"
	"github.com/katalvlaran/orssa/plotting"
	"github.com/katalvlaran/orssa/store"
	"github.com/spf13/cobra"
)

// outputs are the optional artifacts shared by run and noise.
type outputs struct {
	table    string
	snapshot string
	plot     string
	spectrum string
	wcorr    string
}

func (o *outputs) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.table, "out", "o", "", "write original/baseline/orssa columns to this CSV")
	f.StringVar(&o.snapshot, "snapshot", "", "write a zstd JSON snapshot of the run")
	f.StringVar(&o.plot, "plot", "", "write an overlay PNG")
	f.StringVar(&o.spectrum, "spectrum", "", "write a contribution spectrum PNG")
	f.StringVar(&o.wcorr, "wcorr", "", "write the w-correlation matrix as CSV")
}

// write saves every requested artifact. extra lines are drawn before the
// reconstructions on the overlay.
func (o *outputs) write(a *app, source string, cfg pipeline.Config, cmp *pipeline.Comparison, extra ...plotting.Line) error {
	res := cmp.OR
	if o.table != "" {
		if err := csvio.SaveTable(a.fs, o.table,
			[]string{"original", "baseline", "orssa"},
			res.Original, cmp.Baseline, res.Reconstruction); err != nil {
			return err
		}
		a.log.Info().Str("path", o.table).Msg("table written")
	}
	if o.snapshot != "" {
		snap := store.NewSnapshot(source, cfg, res)
		if err := store.SaveSnapshot(a.fs, o.snapshot, snap); err != nil {
			return err
		}
		a.log.Info().Str("path", o.snapshot).Stringer("id", snap.ID).Msg("snapshot written")
	}
	if o.plot != "" {
		lines := append(extra,
			plotting.Line{Name: "baseline SSA", Y: cmp.Baseline},
			plotting.Line{Name: "OR-SSA", Y: res.Reconstruction},
		)
		if err := plotting.Overlay(a.fs, o.plot, "OR-SSA vs baseline", lines...); err != nil {
			return err
		}
		a.log.Info().Str("path", o.plot).Msg("overlay written")
	}
	if res.Rank == 0 {
		if o.spectrum != "" || o.wcorr != "" {
			a.log.Warn().Msg("rank 0: no spectrum or w-correlation to write")
		}
		return nil
	}
	if o.spectrum != "" {
		if err := plotting.Spectrum(a.fs, o.spectrum, res.Contributions, res.Selected); err != nil {
			return err
		}
		a.log.Info().Str("path", o.spectrum).Msg("spectrum written")
	}
	if o.wcorr != "" {
		if err := csvio.SaveMatrix(a.fs, o.wcorr, res.WCorr); err != nil {
			return err
		}
		a.log.Info().Str("path", o.wcorr).Msg("w-correlation written")
	}

	return nil
}

func newRunCmd(a *app) *cobra.Command {
	var (
		input string
		out   outputs
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run OR-SSA on a CSV column",
		Example: `  orssa run --input data.csv --column 1 --rmax 4 --out recon.csv
  orssa run -i data.csv --svd jacobi --plot overlay.png --spectrum spectrum.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			series, err := csvio.LoadColumn(a.fs, input, a.cfg.Column)
			if err != nil {
				return err
			}
			cfg := a.cfg.pipelineConfig(len(series))
			runner, err := a.runner()
			if err != nil {
				return err
			}
			a.log.Debug().Str("input", input).Int("n", len(series)).Int("window", cfg.Window).Msg("series loaded")

			cmp, err := runner.RunWithBaseline(series, cfg)
			if err != nil {
				return err
			}
			printComparison(cmd.OutOrStdout(), cmp)

			return out.write(a, input, cfg, cmp)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input CSV file")
	_ = cmd.MarkFlagRequired("input")
	out.register(cmd)

	return cmd
}
