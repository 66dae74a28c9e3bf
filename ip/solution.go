// SPDX-License-Identifier: MIT

package ip

import (
	"fmt"
	"time"
)

// Status is the terminal category of a solve.
type Status int

const (
	// StatusUnknown: the budget ran out before any feasible assignment was found.
	StatusUnknown Status = iota
	// StatusFeasible: a feasible assignment was found but not proven optimal.
	StatusFeasible
	// StatusOptimal: the returned assignment is proven optimal.
	StatusOptimal
	// StatusInfeasible: the model was proven to have no feasible assignment.
	StatusInfeasible
	// StatusNotSolved: no search was attempted (e.g. an empty selection).
	StatusNotSolved
)

// String returns the conventional CP-SAT style name.
func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "UNKNOWN"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusOptimal:
		return "OPTIMAL"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusNotSolved:
		return "NOT_SOLVED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// HasSolution reports whether the status carries a feasible assignment.
func (s Status) HasSolution() bool { return s == StatusOptimal || s == StatusFeasible }

// MarshalText renders the status name, so JSON snapshots stay readable.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText parses a name produced by MarshalText.
func (s *Status) UnmarshalText(b []byte) error {
	for c := StatusUnknown; c <= StatusNotSolved; c++ {
		if c.String() == string(b) {
			*s = c
			return nil
		}
	}

	return fmt.Errorf("ip: unknown status %q", string(b))
}

// Params is the per-solve budget.
//   - TimeLimit: wall-clock budget, must be > 0.
//   - Workers: parallel search workers; 0 means 1.
//   - Seed: base seed for the perturbed workers. Worker 0 never uses it.
type Params struct {
	TimeLimit time.Duration
	Workers   int
	Seed      int64
}

// Validate checks the budget.
func (p Params) Validate() error {
	if p.TimeLimit <= 0 {
		return ErrBadTimeLimit
	}
	if p.Workers < 0 {
		return ErrBadWorkers
	}

	return nil
}

// Solution is the outcome of one Solve call. Values is nil unless
// Status.HasSolution().
type Solution struct {
	Status    Status
	Values    []bool
	Objective int64
	BestBound int64
	Branches  int64
	Conflicts int64
	WallTime  time.Duration
}

// Value returns the assigned value of v, false when no assignment exists.
func (s *Solution) Value(v Var) bool {
	if s == nil || int(v) < 0 || int(v) >= len(s.Values) {
		return false
	}

	return s.Values[v]
}

// Solver solves a Model within Params. It returns an error only for
// malformed input; search outcomes are reported through Solution.Status.
type Solver interface {
	Solve(m *Model, p Params) (*Solution, error)
}
