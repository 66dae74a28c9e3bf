// SPDX-License-Identifier: MIT
// Package bnb - Solve (dispatcher and status mapping).
//
// Flow:
//  1. Validate the model and the budget; input errors are the only errors.
//  2. Preprocess once into a read-only problem shared by all workers.
//  3. Fan out Workers searches with errgroup; the first to exhaust its tree
//     stops the rest, and every worker stops at the deadline.
//  4. Map the outcome: exhausted with incumbent → OPTIMAL, exhausted without
//     → INFEASIBLE, stopped with incumbent → FEASIBLE, otherwise UNKNOWN.
//
// Budget:
//   - WallTime covers preprocessing and search. Workers poll the deadline on
//     every node, so WallTime exceeds TimeLimit by at most one node's work.

package bnb

import (
	"fmt"
	"time"

	"github.com/katalvlaran/orssa/ip"
	"golang.org/x/sync/errgroup"
)

// Solver is the branch-and-bound ip.Solver. The zero value is ready to use.
type Solver struct{}

var _ ip.Solver = Solver{}

// New returns a Solver.
func New() Solver { return Solver{} }

// Solve runs up to p.Workers searches in parallel for at most p.TimeLimit.
//
// Errors: ip.ErrNilModel, model validation errors, ip.ErrBadTimeLimit,
// ip.ErrBadWorkers. Search outcomes are reported via Solution.Status.
func (Solver) Solve(m *ip.Model, p ip.Params) (*ip.Solution, error) {
	start := time.Now()
	if m == nil {
		return nil, fmt.Errorf("bnb.Solve: %w", ip.ErrNilModel)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("bnb.Solve: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("bnb.Solve: %w", err)
	}

	prob := newProblem(m)
	workers := max(1, p.Workers)
	sh := &shared{}
	deadline := start.Add(p.TimeLimit)

	ws := make([]*worker, workers)
	var g errgroup.Group
	for i := range ws {
		w := newWorker(prob, sh, i, p.Seed, deadline)
		ws[i] = w
		g.Go(func() error {
			w.run()
			return nil
		})
	}
	_ = g.Wait()

	sol := &ip.Solution{}
	for _, w := range ws {
		sol.Branches += w.branches
		sol.Conflicts += w.conflicts
	}
	best, has := sh.incumbent()
	proved := sh.proved.Load()
	switch {
	case proved && has:
		sol.Status = ip.StatusOptimal
	case proved:
		sol.Status = ip.StatusInfeasible
	case has:
		sol.Status = ip.StatusFeasible
	default:
		sol.Status = ip.StatusUnknown
	}
	if has {
		sol.Values = append([]bool(nil), sh.values...)
		sol.Objective = best
		sol.BestBound = best
	}
	if !proved && ws[0].rootOK {
		sol.BestBound = ws[0].rootBound
	}
	sol.WallTime = time.Since(start)

	return sol, nil
}
