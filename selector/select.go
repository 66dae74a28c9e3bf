// SPDX-License-Identifier: MIT
// Package selector - Select (build, solve, decode).
//
// Purpose:
//   - Drive one selection: validate inputs, build the 0/1 program with
//     BuildModel, hand it to an ip.Solver and decode Keep and the unscaled
//     objective.
//
// Errors:
//   - Input validation only. Solver outcomes, infeasibility included, come
//     back through Result.Status.

package selector

import (
	"fmt"

	"github.com/katalvlaran/orssa/ip"
	"github.com/katalvlaran/orssa/ip/bnb"
	"github.com/katalvlaran/orssa/matrix"
)

// Select builds and solves the selection program for contributions q and
// absolute weighted correlations absR.
//
// r = len(q) = 0 returns an empty Keep with StatusNotSolved and no solve.
// rMin > r is not rejected here: the solver reports StatusInfeasible.
// A nil solver selects bnb.Solver.
//
// Errors: ErrBadCardinality, ErrNegativeLambda, ErrBadTimeLimit,
// ErrDimensionMismatch, ErrLockOutOfRange, or a solver input error.
func Select(q []float64, absR matrix.Matrix, locks []Pair, p Params, solver ip.Solver) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, fmt.Errorf("Select: %w", err)
	}
	if err := checkInputs(q, absR, locks); err != nil {
		return Result{}, fmt.Errorf("Select: %w", err)
	}
	if len(q) == 0 {
		return Result{Keep: []bool{}, Status: ip.StatusNotSolved}, nil
	}
	if solver == nil {
		solver = bnb.New()
	}

	m, z, err := BuildModel(q, absR, locks, p)
	if err != nil {
		return Result{}, fmt.Errorf("Select: %w", err)
	}
	sol, err := solver.Solve(m, p.solverParams())
	if err != nil {
		return Result{}, fmt.Errorf("Select: %w", err)
	}

	res := Result{
		Keep:      make([]bool, len(q)),
		Status:    sol.Status,
		Branches:  sol.Branches,
		Conflicts: sol.Conflicts,
		WallTime:  sol.WallTime,
	}
	if sol.Status.HasSolution() {
		for i, v := range z {
			res.Keep[i] = sol.Value(v)
		}
		res.Objective = float64(sol.Objective) / Scale
	}

	return res, nil
}
