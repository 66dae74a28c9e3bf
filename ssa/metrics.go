// SPDX-License-Identifier: MIT

package ssa

import (
	"fmt"
	"math"

	"github.com/katalvlaran/orssa/matrix"
	"gonum.org/v1/gonum/floats"
)

// Contributions returns q_i = σ_i²/Σσ². An empty or all-zero input gives a
// zero vector of the same length.
func Contributions(sigmas []float64) []float64 {
	q := make([]float64, len(sigmas))
	var sum2 float64
	for _, s := range sigmas {
		sum2 += s * s
	}
	if sum2 <= 0 {
		return q
	}
	for i, s := range sigmas {
		q[i] = s * s / sum2
	}

	return q
}

// Weights returns the triangular profile w_k, the number of trajectory cells
// (a,b) with a+b = k:
//
//	w_k = min(k+1, L, K, N-k)
//
// For L ≤ K this is k+1 on [0, L-2], L on [L-1, K-1] and N-k on [K, N-1].
// L > K is handled by the same formula with the plateau at K.
func Weights(n, l, k int) []float64 {
	if n <= 0 {
		return nil
	}
	w := make([]float64, n)
	plateau := min(l, k)
	for i := 0; i < n; i++ {
		w[i] = float64(min(i+1, plateau, n-i))
	}

	return w
}

// WCorrelation returns the symmetric r×r weighted correlation matrix of
// elems under weights w:
//
//	ρ_ij = Σ w_k x_i[k] x_j[k] / (‖x_i‖_w ‖x_j‖_w),  ‖x‖_w = √max(NormFloor, Σ w x²)
//
// The diagonal is exactly 1. Entries are clamped into [-1, 1] against
// roundoff. An empty elems gives (nil, nil).
//
// Errors: ErrLengthMismatch when a component or w differs in length.
// Complexity: O(r²·N).
func WCorrelation(elems [][]float64, w []float64) (*matrix.Dense, error) {
	r := len(elems)
	if r == 0 {
		return nil, nil
	}
	n := len(w)
	weighted := make([][]float64, r)
	norms := make([]float64, r)
	for i, x := range elems {
		if len(x) != n {
			return nil, fmt.Errorf("WCorrelation: component %d has length %d, weights %d: %w", i, len(x), n, ErrLengthMismatch)
		}
		weighted[i] = make([]float64, n)
		floats.MulTo(weighted[i], w, x)
		norms[i] = math.Sqrt(math.Max(NormFloor, floats.Dot(weighted[i], x)))
	}

	out, err := matrix.NewDense(r, r)
	if err != nil {
		return nil, fmt.Errorf("WCorrelation: %w", err)
	}
	raw := out.RawData()
	var (
		i, j int
		rho  float64
	)
	for i = 0; i < r; i++ {
		raw[i*r+i] = 1
		for j = i + 1; j < r; j++ {
			rho = floats.Dot(weighted[i], elems[j]) / (norms[i] * norms[j])
			rho = math.Max(-1, math.Min(1, rho))
			raw[i*r+j] = rho
			raw[j*r+i] = rho
		}
	}

	return out, nil
}

// AbsMatrix returns a new matrix with |m[i,j]| entries. nil gives nil.
func AbsMatrix(m *matrix.Dense) *matrix.Dense {
	if m == nil {
		return nil
	}
	out := m.Clone().(*matrix.Dense)
	raw := out.RawData()
	for i, v := range raw {
		raw[i] = math.Abs(v)
	}

	return out
}
