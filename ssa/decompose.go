// SPDX-License-Identifier: MIT
// Package ssa - Decompose (embedding, SVD and rank truncation).
//
// Purpose:
//   - Turn a series into the ordered list of significant singular triplets
//     (u_i, σ_i, v_i) of its L×K trajectory matrix.
//
// Steps:
//  1. Embed validates the series and window and builds the Hankel matrix.
//  2. The configured svd.Factorizer (Gonum by default) returns a thin SVD
//     with singular values in descending order.
//  3. Rank r is the count of σ strictly above
//     tol = max(L,K)·factor·max(σ₀, SigmaFloor). The threshold removes
//     round-off from the factorization, not noise in the data.
//  4. The first r columns of U and V are copied out; the trajectory matrix is
//     kept for diagonal-averaging checks.
//
// Errors:
//   - ErrSeriesTooShort, ErrNonFinite, ErrWindowOutOfRange from Embed.
//   - svd.ErrFactorizeFailed (wrapped) from the backend.
//
// Complexity:
//   - Time: O(L·K·min(L,K)) for the SVD, O(r·(L+K)) for the copy-out.
//   - Memory: O(L·K) for the trajectory matrix plus O(r·(L+K)) for vectors.
//
// Determinism:
//   - Same series, window and backend give the same triplets. Sign of a
//     singular vector pair is whatever the backend returns.

package ssa

import (
	"fmt"
	"math"
)

// Decompose embeds series with window l and keeps the numerically
// significant singular triplets.
//
// Rank r counts singular values strictly above
// tol = max(L,K)·factor·max(σ₀, SigmaFloor). A zero series gives r = 0,
// which is a valid result rather than an error.
//
// Errors: ErrSeriesTooShort, ErrNonFinite, ErrWindowOutOfRange, and any
// backend failure (svd.ErrFactorizeFailed).
func Decompose(series []float64, l int, opts ...Option) (*Decomposition, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	x, err := Embed(series, l)
	if err != nil {
		return nil, fmt.Errorf("Decompose: %w", err)
	}
	n := len(series)
	k := n - l + 1

	f, err := o.factorizer.Factorize(x)
	if err != nil {
		return nil, fmt.Errorf("Decompose: %w", err)
	}

	var sigma0 float64
	if len(f.Values) > 0 {
		sigma0 = f.Values[0]
	}
	tol := float64(max(l, k)) * o.rankTol * math.Max(sigma0, SigmaFloor)

	r := 0
	for _, s := range f.Values {
		if s > tol {
			r++
		}
	}

	d := &Decomposition{
		N:          n,
		L:          l,
		K:          k,
		Rank:       r,
		Trajectory: x,
		Sigma:      make([]float64, r),
		U:          make([][]float64, r),
		V:          make([][]float64, r),
	}
	for i := 0; i < r; i++ {
		d.Sigma[i] = f.Values[i]
		if d.U[i], err = f.U.Col(i); err != nil {
			return nil, fmt.Errorf("Decompose: %w", err)
		}
		if d.V[i], err = f.V.Col(i); err != nil {
			return nil, fmt.Errorf("Decompose: %w", err)
		}
	}

	return d, nil
}
