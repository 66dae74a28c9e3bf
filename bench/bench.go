// SPDX-License-Identifier: MIT

package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/orssa/pipeline"
	"github.com/katalvlaran/orssa/synth"
	"github.com/rs/zerolog"
)

// MinN is the smallest series length a sweep accepts.
const MinN = 50

// DefaultSeed seeds the shared series stream.
const DefaultSeed = 12345

// ErrBadSweep reports an invalid N range or cardinality range.
var ErrBadSweep = errors.New("bench: invalid sweep")

// Sweep describes one benchmark run. Config.Window is ignored; every size
// uses N/2 clamped to [2, N−1].
type Sweep struct {
	Start, End, Step int
	Config           pipeline.Config
	// SameR sizes the baseline like the OR-SSA pick; otherwise it keeps RMax.
	SameR bool
	Seed  int64
}

// Validate checks the N range and the cardinality bounds.
func (s Sweep) Validate() error {
	if s.Start < MinN || s.End <= s.Start || s.Step <= 0 {
		return fmt.Errorf("%w: N range %d:%d:%d", ErrBadSweep, s.Start, s.Step, s.End)
	}
	if s.Config.RMin < 0 || s.Config.RMax < s.Config.RMin {
		return fmt.Errorf("%w: r range [%d,%d]", ErrBadSweep, s.Config.RMin, s.Config.RMax)
	}

	return nil
}

// Row is the measurement for one N. Times are in seconds.
type Row struct {
	N           int     `json:"n"`
	L           int     `json:"l"`
	Rank        int     `json:"rank"`
	DecompSec   float64 `json:"decomp_sec"`
	BaselineSec float64 `json:"baseline_sec"`
	ORSec       float64 `json:"or_sec"`
	SolverSec   float64 `json:"solver_sec"`
	Objective   float64 `json:"objective"`
	Status      string  `json:"status"`
	Kept        int     `json:"kept"`
	BaselineR   int     `json:"baseline_r"`
	MSEBaseline float64 `json:"mse_baseline"`
	MSEOR       float64 `json:"mse_or"`
}

// Sink receives each row as soon as it is measured. A non-nil error stops
// the sweep.
type Sink func(Row) error

// Window is the window used for a series of length n.
func Window(n int) int {
	return min(max(2, n/2), n-1)
}

// Run executes the sweep. ctx is checked before each size; a cancelled
// sweep returns the rows measured so far together with ctx.Err().
//
// Sizes whose decomposition has rank 0, or whose rank is below RMin, are
// logged and skipped.
func Run(ctx context.Context, s Sweep, runner *pipeline.Runner, log zerolog.Logger, sink Sink) ([]Row, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if runner == nil {
		runner = pipeline.NewRunner()
	}
	seed := s.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	rng := rand.New(rand.NewSource(seed))

	log.Info().
		Int("start", s.Start).Int("step", s.Step).Int("end", s.End).
		Int("rmin", s.Config.RMin).Int("rmax", s.Config.RMax).
		Float64("lambda", s.Config.Lambda).Dur("time_limit", s.Config.TimeLimit).
		Bool("lock_adjacent", s.Config.LockAdjacent).Bool("same_r", s.SameR).
		Msg("benchmark started")

	rows := make([]Row, 0, (s.End-s.Start)/s.Step+1)
	for n := s.Start; n <= s.End; n += s.Step {
		if err := ctx.Err(); err != nil {
			log.Warn().Int("n", n).Msg("benchmark cancelled")
			return rows, err
		}

		series := synth.BenchmarkSeries(n, rng)
		cfg := s.Config
		cfg.Window = Window(n)

		baseR := 0
		if !s.SameR {
			baseR = cfg.RMax
		}
		cmp, err := runner.RunWithBaselineR(series, cfg, baseR)
		if errors.Is(err, pipeline.ErrInvalidConfig) {
			log.Warn().Int("n", n).Err(err).Msg("skipping size")
			continue
		}
		if err != nil {
			return rows, err
		}
		if cmp.OR.Rank == 0 {
			log.Warn().Int("n", n).Msg("rank 0, skipping size")
			continue
		}

		row := measure(n, cmp)
		log.Info().
			Int("n", n).Int("rank", row.Rank).
			Float64("decomp_sec", row.DecompSec).
			Int("baseline_r", row.BaselineR).Float64("baseline_sec", row.BaselineSec).
			Float64("solver_sec", row.SolverSec).Float64("objective", row.Objective).
			Str("status", row.Status).
			Msg("size done")

		if sink != nil {
			if err = sink(row); err != nil {
				return rows, fmt.Errorf("bench: sink: %w", err)
			}
		}
		rows = append(rows, row)
	}
	log.Info().Int("sizes", len(rows)).Msg("benchmark complete")

	return rows, nil
}

// measure flattens a comparison into a Row. The OR time spans metrics,
// selection and assembly.
func measure(n int, cmp *pipeline.Comparison) Row {
	or := cmp.OR
	t := or.Timings

	return Row{
		N:           n,
		L:           or.L,
		Rank:        or.Rank,
		DecompSec:   t.Decompose.Seconds(),
		BaselineSec: cmp.BaselineTime.Seconds(),
		ORSec:       (t.Metrics + t.Select + t.Assemble).Seconds(),
		SolverSec:   or.Selection.WallTime.Seconds(),
		Objective:   or.Selection.Objective,
		Status:      or.Selection.Status.String(),
		Kept:        or.Selection.Count(),
		BaselineR:   cmp.BaselineR,
		MSEBaseline: cmp.MSEBaseline,
		MSEOR:       cmp.MSEOR,
	}
}
