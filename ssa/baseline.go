// SPDX-License-Identifier: MIT

package ssa

import "fmt"

// TopR is the classic SSA grouping: keep the r leading components. It
// returns the keep mask and the assembled series.
//
// Errors: ErrNilDecomposition, ErrBadRank for r outside [0, d.Rank],
// ErrKeepLength when elems does not match d.
func TopR(d *Decomposition, elems [][]float64, r int) ([]bool, []float64, error) {
	if d == nil {
		return nil, nil, fmt.Errorf("TopR: %w", ErrNilDecomposition)
	}
	if r < 0 || r > d.Rank {
		return nil, nil, fmt.Errorf("TopR: r=%d rank=%d: %w", r, d.Rank, ErrBadRank)
	}
	keep := make([]bool, d.Rank)
	for i := 0; i < r; i++ {
		keep[i] = true
	}
	recon, err := Assemble(elems, keep, d.N)
	if err != nil {
		return nil, nil, fmt.Errorf("TopR: %w", err)
	}

	return keep, recon, nil
}

// Reconstruct is the one-shot rank-r SSA smoother: decompose, keep the r
// leading triplets, diagonal-average their sum. r is clamped to the
// numerical rank.
func Reconstruct(series []float64, l, r int, opts ...Option) ([]float64, error) {
	d, err := Decompose(series, l, opts...)
	if err != nil {
		return nil, fmt.Errorf("Reconstruct: %w", err)
	}
	if r < 0 {
		return nil, fmt.Errorf("Reconstruct: r=%d: %w", r, ErrBadRank)
	}
	r = min(r, d.Rank)
	elems := ElementaryReconstructions(d)
	_, recon, err := TopR(d, elems, r)
	if err != nil {
		return nil, fmt.Errorf("Reconstruct: %w", err)
	}

	return recon, nil
}
