// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"time"

	"github.com/katalvlaran/orssa/ip"
	"github.com/katalvlaran/orssa/ip/bnb"
	"github.com/katalvlaran/orssa/matrix"
	"github.com/katalvlaran/orssa/selector"
	"github.com/katalvlaran/orssa/ssa"
	"github.com/katalvlaran/orssa/svd"
	"github.com/rs/zerolog"
)

// Timings are per-stage wall times of one run.
type Timings struct {
	Decompose time.Duration `json:"decompose"`
	Metrics   time.Duration `json:"metrics"`
	Select    time.Duration `json:"select"`
	Assemble  time.Duration `json:"assemble"`
	Total     time.Duration `json:"total"`
}

// Result is the outcome of one OR-SSA run. All slices are owned by the
// caller.
type Result struct {
	N, L, K        int
	Rank           int
	Original       []float64
	Reconstruction []float64
	Selected       []int
	Sigma          []float64
	Contributions  []float64
	WCorr          [][]float64
	Locks          []selector.Pair
	Selection      selector.Result
	Timings        Timings
}

// Option configures a Runner.
type Option func(*Runner)

// WithFactorizer sets the SVD backend (default svd.Gonum).
func WithFactorizer(f svd.Factorizer) Option {
	return func(r *Runner) {
		if f != nil {
			r.factorizer = f
		}
	}
}

// WithSolver sets the ip backend (default bnb.Solver).
func WithSolver(s ip.Solver) Option {
	return func(r *Runner) {
		if s != nil {
			r.solver = s
		}
	}
}

// WithLogger attaches a logger. Runs are silent by default.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// Runner executes the OR-SSA pipeline.
type Runner struct {
	factorizer svd.Factorizer
	solver     ip.Solver
	log        zerolog.Logger
}

// NewRunner returns a Runner with the given options applied.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		factorizer: svd.Gonum{},
		solver:     bnb.New(),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Decompose validates cfg against series and decomposes it.
func (r *Runner) Decompose(series []float64, cfg Config) (*ssa.Decomposition, error) {
	if err := cfg.Validate(len(series)); err != nil {
		return nil, err
	}
	d, err := ssa.Decompose(series, cfg.Window, ssa.WithFactorizer(r.factorizer))
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	return d, nil
}

// Run executes decompose → metrics → select → assemble.
//
// Errors: ErrInvalidConfig (including RMin > rank for a non-degenerate
// decomposition), ssa input errors, solver input errors. Solver outcomes
// are reported in Result.Selection.Status.
func (r *Runner) Run(series []float64, cfg Config) (*Result, error) {
	start := time.Now()
	d, err := r.Decompose(series, cfg)
	if err != nil {
		return nil, err
	}
	res, _, err := r.finish(series, d, cfg, start)

	return res, err
}

// finish runs every stage after decomposition and returns the elementary
// components for callers that build a baseline on top.
func (r *Runner) finish(series []float64, d *ssa.Decomposition, cfg Config, start time.Time) (*Result, [][]float64, error) {
	res := &Result{
		N:        d.N,
		L:        d.L,
		K:        d.K,
		Rank:     d.Rank,
		Original: append([]float64(nil), series...),
		Sigma:    append([]float64(nil), d.Sigma...),
	}
	res.Timings.Decompose = time.Since(start)
	r.log.Debug().
		Int("n", d.N).Int("l", d.L).Int("k", d.K).Int("rank", d.Rank).
		Dur("took", res.Timings.Decompose).
		Msg("decompose")

	if d.Rank > 0 && cfg.RMin > d.Rank {
		return nil, nil, fmt.Errorf("%w: RMin %d exceeds rank %d", ErrInvalidConfig, cfg.RMin, d.Rank)
	}

	t := time.Now()
	elems := ssa.ElementaryReconstructions(d)
	res.Contributions = ssa.Contributions(d.Sigma)
	wcorr, err := ssa.WCorrelation(elems, ssa.Weights(d.N, d.L, d.K))
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: %w", err)
	}
	res.WCorr = rows(wcorr)
	res.Timings.Metrics = time.Since(t)
	r.log.Debug().Int("components", len(elems)).Dur("took", res.Timings.Metrics).Msg("metrics")

	if cfg.LockAdjacent {
		res.Locks = selector.AdjacentPairs(d.Rank)
	}
	t = time.Now()
	var absR matrix.Matrix
	if m := ssa.AbsMatrix(wcorr); m != nil {
		absR = m
	}
	if res.Selection, err = selector.Select(res.Contributions, absR, res.Locks, cfg.selectorParams(), r.solver); err != nil {
		return nil, nil, fmt.Errorf("pipeline: %w", err)
	}
	res.Timings.Select = time.Since(t)
	r.log.Info().
		Stringer("status", res.Selection.Status).
		Float64("objective", res.Selection.Objective).
		Int("kept", res.Selection.Count()).
		Int64("branches", res.Selection.Branches).
		Int64("conflicts", res.Selection.Conflicts).
		Dur("wall", res.Selection.WallTime).
		Msg("select")

	t = time.Now()
	res.Selected = res.Selection.Indices()
	if res.Reconstruction, err = ssa.Assemble(elems, res.Selection.Keep, d.N); err != nil {
		return nil, nil, fmt.Errorf("pipeline: %w", err)
	}
	res.Timings.Assemble = time.Since(t)
	res.Timings.Total = time.Since(start)
	r.log.Debug().Ints("selected", res.Selected).Dur("took", res.Timings.Assemble).Msg("assemble")

	return res, elems, nil
}
