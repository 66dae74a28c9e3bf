// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"time"

	"github.com/katalvlaran/orssa/matrix"
	"github.com/katalvlaran/orssa/quality"
	"github.com/katalvlaran/orssa/ssa"
)

// Comparison pairs an OR-SSA run with the classic top-r SSA baseline using
// the same number of components.
type Comparison struct {
	OR           *Result
	BaselineR    int
	Baseline     []float64
	BaselineTime time.Duration
	MSEBaseline  float64
	MSEOR        float64
}

// BaselineRank is the r used by the baseline: the OR-SSA count clamped to
// [1, rank], or 0 for a degenerate decomposition.
func BaselineRank(kept, rank int) int {
	if rank <= 0 {
		return 0
	}

	return max(1, min(kept, rank))
}

// RunWithBaseline runs OR-SSA and the top-r baseline on one shared
// decomposition and scores both against series with MSE. The baseline keeps
// as many components as OR-SSA did.
func (r *Runner) RunWithBaseline(series []float64, cfg Config) (*Comparison, error) {
	return r.RunWithBaselineR(series, cfg, 0)
}

// RunWithBaselineR is RunWithBaseline with an explicit baseline size.
// baseR <= 0 means "as many as OR-SSA kept"; the value is clamped with
// BaselineRank either way.
func (r *Runner) RunWithBaselineR(series []float64, cfg Config, baseR int) (*Comparison, error) {
	start := time.Now()
	d, err := r.Decompose(series, cfg)
	if err != nil {
		return nil, err
	}
	res, elems, err := r.finish(series, d, cfg, start)
	if err != nil {
		return nil, err
	}

	return compare(series, d, elems, res, baseR)
}

// compare builds the baseline from the shared components.
func compare(series []float64, d *ssa.Decomposition, elems [][]float64, res *Result, want int) (*Comparison, error) {
	if want <= 0 {
		want = res.Selection.Count()
	}
	c := &Comparison{OR: res, BaselineR: BaselineRank(want, d.Rank)}
	t := time.Now()
	_, base, err := ssa.TopR(d, elems, c.BaselineR)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	c.Baseline = base
	c.BaselineTime = time.Since(t)

	if c.MSEBaseline, err = quality.MSE(series, base); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	if c.MSEOR, err = quality.MSE(series, res.Reconstruction); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	return c, nil
}

// rows copies a square matrix into row slices. nil gives nil.
func rows(m *matrix.Dense) [][]float64 {
	if m == nil {
		return nil
	}
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i], _ = m.Row(i)
	}

	return out
}
