// SPDX-License-Identifier: MIT
// Package ssa - elementary reconstruction (diagonal averaging).
//
// Purpose:
//   - Map each triplet to its length-N elementary component.
//   - Expose DiagonalAverage as the exact inverse of Embed on Hankel input.
//
// Invariant:
//   - Diagonal averaging is linear, so the components are additive: any
//     subset sums to the diagonal average of the matching partial
//     trajectory matrix, and all r of them reproduce the series at full rank.

package ssa

import (
	"fmt"

	"github.com/katalvlaran/orssa/matrix"
)

// ElementaryReconstructions maps every triplet of d to a length-N series by
// diagonal averaging of σ_i·u_i⊗v_i. The rank-1 matrix is never
// materialized; each anti-diagonal sum is accumulated directly.
//
// Returns nil for a nil or rank-0 decomposition.
// Complexity: O(r·L·K) time, O(r·N) memory.
func ElementaryReconstructions(d *Decomposition) [][]float64 {
	if d == nil || d.Rank == 0 {
		return nil
	}
	counts := Weights(d.N, d.L, d.K)
	out := make([][]float64, d.Rank)

	var (
		i, a, b int
		ua      float64
		row     []float64
	)
	for i = 0; i < d.Rank; i++ {
		row = make([]float64, d.N)
		u, v := d.U[i], d.V[i]
		for a = 0; a < d.L; a++ {
			ua = d.Sigma[i] * u[a]
			for b = 0; b < d.K; b++ {
				row[a+b] += ua * v[b]
			}
		}
		for a = range row {
			row[a] /= counts[a]
		}
		out[i] = row
	}

	return out
}

// DiagonalAverage maps an L×K matrix to a length L+K-1 series: element k is
// the mean of all m[a,b] with a+b = k. It is the inverse of Embed on Hankel
// input.
//
// Errors: matrix.ErrNilMatrix, or an At failure from a foreign Matrix.
func DiagonalAverage(m matrix.Matrix) ([]float64, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("DiagonalAverage: %w", err)
	}
	l, k := m.Rows(), m.Cols()
	n := l + k - 1
	out := make([]float64, n)

	var (
		a, b int
		v    float64
		err  error
	)
	for a = 0; a < l; a++ {
		for b = 0; b < k; b++ {
			if v, err = m.At(a, b); err != nil {
				return nil, fmt.Errorf("DiagonalAverage: %w", err)
			}
			out[a+b] += v
		}
	}
	counts := Weights(n, l, k)
	for a = range out {
		out[a] /= counts[a]
	}

	return out, nil
}
