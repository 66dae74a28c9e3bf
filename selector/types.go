// SPDX-License-Identifier: MIT

package selector

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/orssa/ip"
)

// Scale is the fixed-point factor applied to objective coefficients.
const Scale = 1_000_000

// Params are the selection hyperparameters.
//   - RMin, RMax: bounds on the number of kept components.
//   - Lambda: redundancy weight λ ≥ 0.
//   - TimeLimit: solver wall-clock budget.
//   - Workers: parallel search workers (0 means 1).
//   - Seed: base seed for perturbed workers.
type Params struct {
	RMin, RMax int
	Lambda     float64
	TimeLimit  time.Duration
	Workers    int
	Seed       int64
}

// Validate checks the hyperparameters independently of the rank.
func (p Params) Validate() error {
	if p.RMin < 0 || p.RMin > p.RMax {
		return fmt.Errorf("rMin=%d rMax=%d: %w", p.RMin, p.RMax, ErrBadCardinality)
	}
	if p.Lambda < 0 || math.IsNaN(p.Lambda) || math.IsInf(p.Lambda, 0) {
		return fmt.Errorf("lambda=%v: %w", p.Lambda, ErrNegativeLambda)
	}
	if p.TimeLimit <= 0 {
		return fmt.Errorf("time limit %v: %w", p.TimeLimit, ErrBadTimeLimit)
	}

	return nil
}

func (p Params) solverParams() ip.Params {
	return ip.Params{TimeLimit: p.TimeLimit, Workers: p.Workers, Seed: p.Seed}
}

// Pair is a locked pair of component indices.
type Pair struct {
	I, J int
}

// AdjacentPairs returns (0,1), (2,3), … covering r components. An odd last
// component stays unlocked.
func AdjacentPairs(r int) []Pair {
	if r < 2 {
		return nil
	}
	out := make([]Pair, 0, r/2)
	for i := 0; i+1 < r; i += 2 {
		out = append(out, Pair{I: i, J: i + 1})
	}

	return out
}

// Result is one selection outcome.
//   - Keep has exactly r entries; all false when the solver found nothing.
//   - Objective is the unscaled objective of Keep.
type Result struct {
	Keep      []bool
	Status    ip.Status
	Objective float64
	Branches  int64
	Conflicts int64
	WallTime  time.Duration
}

// Count returns the number of kept components.
func (r Result) Count() int {
	n := 0
	for _, k := range r.Keep {
		if k {
			n++
		}
	}

	return n
}

// Indices returns the kept component indices in ascending order.
func (r Result) Indices() []int {
	out := make([]int, 0, len(r.Keep))
	for i, k := range r.Keep {
		if k {
			out = append(out, i)
		}
	}

	return out
}
