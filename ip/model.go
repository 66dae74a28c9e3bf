// SPDX-License-Identifier: MIT

package ip

import (
	"fmt"
	"math"
)

// MaxCoef bounds coefficient magnitudes so activity sums over a few
// thousand terms stay far from int64 overflow.
const MaxCoef int64 = 1 << 40

// Unbounded sentinels for one-sided constraints.
const (
	NegInf int64 = math.MinInt64 / 4
	PosInf int64 = math.MaxInt64 / 4
)

// Var identifies a boolean variable inside one Model.
type Var int

// Term is coef·x.
type Term struct {
	Var  Var
	Coef int64
}

// T is shorthand for Term{v, coef}.
func T(v Var, coef int64) Term { return Term{Var: v, Coef: coef} }

// Constraint is lo ≤ Σ terms ≤ hi.
type Constraint struct {
	Terms  []Term
	Lo, Hi int64
}

// Model is a 0/1 program: boolean variables, linear range constraints and a
// linear objective to maximize. The zero value is not usable; call NewModel.
type Model struct {
	names     []string
	cons      []Constraint
	objective []Term
}

// NewModel returns an empty model.
func NewModel() *Model { return &Model{} }

// NewBoolVar adds a boolean variable and returns its handle.
func (m *Model) NewBoolVar(name string) Var {
	m.names = append(m.names, name)

	return Var(len(m.names) - 1)
}

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.names) }

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int { return len(m.cons) }

// Name returns the variable name, or "" for an unknown handle.
func (m *Model) Name(v Var) string {
	if int(v) < 0 || int(v) >= len(m.names) {
		return ""
	}

	return m.names[v]
}

// Constraint returns a copy of constraint i.
func (m *Model) Constraint(i int) Constraint {
	c := m.cons[i]
	c.Terms = append([]Term(nil), c.Terms...)

	return c
}

// Objective returns a copy of the objective terms.
func (m *Model) Objective() []Term { return append([]Term(nil), m.objective...) }

// checkTerms validates variable handles and coefficient magnitudes.
func (m *Model) checkTerms(terms []Term) error {
	for _, t := range terms {
		if int(t.Var) < 0 || int(t.Var) >= len(m.names) {
			return fmt.Errorf("var %d: %w", t.Var, ErrUnknownVar)
		}
		if t.Coef > MaxCoef || t.Coef < -MaxCoef {
			return fmt.Errorf("var %d coef %d: %w", t.Var, t.Coef, ErrCoefTooLarge)
		}
	}

	return nil
}

// AddLinear adds lo ≤ Σ terms ≤ hi. Use NegInf/PosInf for a missing side.
func (m *Model) AddLinear(terms []Term, lo, hi int64) error {
	if lo > hi {
		return fmt.Errorf("AddLinear: [%d,%d]: %w", lo, hi, ErrEmptyRange)
	}
	if err := m.checkTerms(terms); err != nil {
		return fmt.Errorf("AddLinear: %w", err)
	}
	m.cons = append(m.cons, Constraint{
		Terms: append([]Term(nil), terms...),
		Lo:    lo,
		Hi:    hi,
	})

	return nil
}

// AddLE adds Σ terms ≤ hi.
func (m *Model) AddLE(terms []Term, hi int64) error { return m.AddLinear(terms, NegInf, hi) }

// AddGE adds Σ terms ≥ lo.
func (m *Model) AddGE(terms []Term, lo int64) error { return m.AddLinear(terms, lo, PosInf) }

// AddEQ adds Σ terms = v.
func (m *Model) AddEQ(terms []Term, v int64) error { return m.AddLinear(terms, v, v) }

// Maximize replaces the objective with Σ terms.
func (m *Model) Maximize(terms []Term) error {
	if err := m.checkTerms(terms); err != nil {
		return fmt.Errorf("Maximize: %w", err)
	}
	m.objective = append([]Term(nil), terms...)

	return nil
}

// Validate re-checks every constraint and the objective. Models built only
// through the Add* methods always validate; solvers still call it first.
func (m *Model) Validate() error {
	if m == nil {
		return ErrNilModel
	}
	for i, c := range m.cons {
		if c.Lo > c.Hi {
			return fmt.Errorf("Validate: constraint %d: %w", i, ErrEmptyRange)
		}
		if err := m.checkTerms(c.Terms); err != nil {
			return fmt.Errorf("Validate: constraint %d: %w", i, err)
		}
	}
	if err := m.checkTerms(m.objective); err != nil {
		return fmt.Errorf("Validate: objective: %w", err)
	}

	return nil
}

// Evaluate returns the objective value of values and whether every
// constraint holds. len(values) must equal NumVars.
func (m *Model) Evaluate(values []bool) (objective int64, feasible bool) {
	if len(values) != len(m.names) {
		return 0, false
	}
	feasible = true
	var act int64
	for _, c := range m.cons {
		act = 0
		for _, t := range c.Terms {
			if values[t.Var] {
				act += t.Coef
			}
		}
		if act < c.Lo || act > c.Hi {
			feasible = false
			break
		}
	}
	for _, t := range m.objective {
		if values[t.Var] {
			objective += t.Coef
		}
	}

	return objective, feasible
}
