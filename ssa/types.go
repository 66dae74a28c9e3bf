// SPDX-License-Identifier: MIT

package ssa

import (
	"github.com/katalvlaran/orssa/matrix"
	"github.com/katalvlaran/orssa/svd"
)

const (
	// MinSeriesLength is the shortest series Decompose accepts.
	MinSeriesLength = 4

	// DefaultRankTolerance is the relative factor in
	// tol = max(L,K)·factor·max(σ₀, SigmaFloor).
	DefaultRankTolerance = 1e-12

	// SigmaFloor keeps the rank tolerance positive for an all-zero series.
	SigmaFloor = 1e-30

	// NormFloor bounds Σ w·x² from below before the square root in
	// WCorrelation, so degenerate components correlate as 0.
	NormFloor = 1e-30
)

// Decomposition is the rank-truncated SVD of a trajectory matrix.
//
// Sigma[i], U[i] (length L) and V[i] (length K) form elementary triplet i,
// ordered by descending singular value. Rank == len(Sigma).
// Read-only after Decompose returns.
type Decomposition struct {
	N, L, K    int
	Rank       int
	Trajectory *matrix.Dense
	Sigma      []float64
	U          [][]float64
	V          [][]float64
}

// Triplet returns (u_i, σ_i, v_i). ok is false for i outside [0, Rank).
func (d *Decomposition) Triplet(i int) (u []float64, sigma float64, v []float64, ok bool) {
	if d == nil || i < 0 || i >= d.Rank {
		return nil, 0, nil, false
	}

	return d.U[i], d.Sigma[i], d.V[i], true
}

// TotalEnergy returns Σσ² over the kept triplets.
func (d *Decomposition) TotalEnergy() float64 {
	if d == nil {
		return 0
	}
	var e float64
	for _, s := range d.Sigma {
		e += s * s
	}

	return e
}

// Option configures Decompose.
type Option func(*options)

type options struct {
	factorizer svd.Factorizer
	rankTol    float64
}

func defaultOptions() options {
	return options{factorizer: svd.Gonum{}, rankTol: DefaultRankTolerance}
}

// WithFactorizer selects the SVD backend. nil keeps the default (svd.Gonum).
func WithFactorizer(f svd.Factorizer) Option {
	return func(o *options) {
		if f != nil {
			o.factorizer = f
		}
	}
}

// WithRankTolerance overrides the relative rank factor. Non-positive values
// keep DefaultRankTolerance.
func WithRankTolerance(factor float64) Option {
	return func(o *options) {
		if factor > 0 {
			o.rankTol = factor
		}
	}
}
