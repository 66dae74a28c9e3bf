// SPDX-License-Identifier: MIT

package selector

import (
	"fmt"
	"math"

	"github.com/katalvlaran/orssa/ip"
	"github.com/katalvlaran/orssa/matrix"
)

// LinearizeAnd adds y with y ≤ zi, y ≤ zj, zi + zj − y ≤ 1, so that
// y = zi ∧ zj in every feasible assignment.
func LinearizeAnd(m *ip.Model, zi, zj ip.Var, name string) (ip.Var, error) {
	y := m.NewBoolVar(name)
	if err := m.AddLE([]ip.Term{ip.T(y, 1), ip.T(zi, -1)}, 0); err != nil {
		return y, err
	}
	if err := m.AddLE([]ip.Term{ip.T(y, 1), ip.T(zj, -1)}, 0); err != nil {
		return y, err
	}
	if err := m.AddLE([]ip.Term{ip.T(zi, 1), ip.T(zj, 1), ip.T(y, -1)}, 1); err != nil {
		return y, err
	}

	return y, nil
}

// quantize rounds v·Scale half to even.
func quantize(v float64) int64 {
	return int64(math.RoundToEven(v * Scale))
}

// checkInputs validates shapes and lock indices for r = len(q).
func checkInputs(q []float64, absR matrix.Matrix, locks []Pair) error {
	r := len(q)
	if r > 0 {
		if matrix.ValidateNotNil(absR) != nil || absR.Rows() != r || absR.Cols() != r {
			return ErrDimensionMismatch
		}
	}
	for _, l := range locks {
		if l.I < 0 || l.I >= r || l.J < 0 || l.J >= r {
			return fmt.Errorf("lock (%d,%d) with r=%d: %w", l.I, l.J, r, ErrLockOutOfRange)
		}
	}

	return nil
}

// BuildModel assembles the selection program and returns it with the z
// variables (z[i] keeps component i).
func BuildModel(q []float64, absR matrix.Matrix, locks []Pair, p Params) (*ip.Model, []ip.Var, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, fmt.Errorf("BuildModel: %w", err)
	}
	if err := checkInputs(q, absR, locks); err != nil {
		return nil, nil, fmt.Errorf("BuildModel: %w", err)
	}

	r := len(q)
	m := ip.NewModel()
	z := make([]ip.Var, r)
	for i := range z {
		z[i] = m.NewBoolVar(fmt.Sprintf("z_%d", i))
	}

	var (
		obj  []ip.Term
		c    int64
		rij  float64
		y    ip.Var
		err  error
		i, j int
	)
	for i = 0; i < r; i++ {
		if c = quantize(q[i]); c != 0 {
			obj = append(obj, ip.T(z[i], c))
		}
	}
	for i = 0; i < r; i++ {
		for j = i + 1; j < r; j++ {
			if y, err = LinearizeAnd(m, z[i], z[j], fmt.Sprintf("y_%d_%d", i, j)); err != nil {
				return nil, nil, fmt.Errorf("BuildModel: %w", err)
			}
			if rij, err = absR.At(i, j); err != nil {
				return nil, nil, fmt.Errorf("BuildModel: %w", err)
			}
			if c = quantize(p.Lambda * math.Abs(rij)); c != 0 {
				obj = append(obj, ip.T(y, -c))
			}
		}
	}

	card := make([]ip.Term, r)
	for i = range z {
		card[i] = ip.T(z[i], 1)
	}
	if err = m.AddLinear(card, int64(p.RMin), int64(p.RMax)); err != nil {
		return nil, nil, fmt.Errorf("BuildModel: %w", err)
	}
	for _, l := range locks {
		if err = m.AddEQ([]ip.Term{ip.T(z[l.I], 1), ip.T(z[l.J], -1)}, 0); err != nil {
			return nil, nil, fmt.Errorf("BuildModel: %w", err)
		}
	}
	if err = m.Maximize(obj); err != nil {
		return nil, nil, fmt.Errorf("BuildModel: %w", err)
	}

	return m, z, nil
}
