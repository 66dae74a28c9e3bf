// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"github.com/katalvlaran/orssa/pipeline"
	"github.com/katalvlaran/orssa/quality"
)

// printComparison writes the human-readable summary of one run.
func printComparison(w io.Writer, cmp *pipeline.Comparison) {
	or := cmp.OR
	fmt.Fprintf(w, "N=%d L=%d K=%d rank=%d decompose=%s\n",
		or.N, or.L, or.K, or.Rank, or.Timings.Decompose)
	fmt.Fprintf(w, "OR-SSA:   status=%s objective=%.5f kept=%v wall=%s mse=%.6g\n",
		or.Selection.Status, or.Selection.Objective, or.Selected, or.Selection.WallTime, cmp.MSEOR)
	fmt.Fprintf(w, "baseline: r=%d time=%s mse=%.6g\n",
		cmp.BaselineR, cmp.BaselineTime, cmp.MSEBaseline)
}

// printAgainstClean scores both reconstructions against a known clean
// signal.
func printAgainstClean(w io.Writer, clean []float64, cmp *pipeline.Comparison, dtwWindow int) error {
	for _, c := range []struct {
		name string
		est  []float64
	}{
		{"OR-SSA", cmp.OR.Reconstruction},
		{"baseline", cmp.Baseline},
	} {
		mse, err := quality.MSE(clean, c.est)
		if err != nil {
			return err
		}
		snr, err := quality.SNR(clean, c.est)
		if err != nil {
			return err
		}
		dtw, err := quality.DTW(clean, c.est, dtwWindow)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "vs clean %-9s mse=%.6g snr=%.2fdB dtw=%.6g\n", c.name+":", mse, snr, dtw)
	}

	return nil
}
