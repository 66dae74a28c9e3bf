// SPDX-License-Identifier: MIT

package ssa

import (
	"fmt"
	"math"

	"github.com/katalvlaran/orssa/matrix"
)

// validateSeries checks length and finiteness.
func validateSeries(series []float64) error {
	if len(series) < MinSeriesLength {
		return fmt.Errorf("N=%d < %d: %w", len(series), MinSeriesLength, ErrSeriesTooShort)
	}
	for i, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("series[%d]: %w", i, ErrNonFinite)
		}
	}

	return nil
}

// validateWindow checks 2 ≤ L ≤ N-1.
func validateWindow(n, l int) error {
	if l < 2 || l > n-1 {
		return fmt.Errorf("L=%d not in [2,%d]: %w", l, n-1, ErrWindowOutOfRange)
	}

	return nil
}

// Embed builds the L×K trajectory matrix X[i,j] = series[i+j], K = N-L+1.
//
// Errors: ErrSeriesTooShort, ErrNonFinite, ErrWindowOutOfRange.
// Complexity: O(L·K).
func Embed(series []float64, l int) (*matrix.Dense, error) {
	if err := validateSeries(series); err != nil {
		return nil, fmt.Errorf("Embed: %w", err)
	}
	n := len(series)
	if err := validateWindow(n, l); err != nil {
		return nil, fmt.Errorf("Embed: %w", err)
	}
	k := n - l + 1

	data := make([]float64, l*k)
	for i := 0; i < l; i++ {
		copy(data[i*k:(i+1)*k], series[i:i+k])
	}

	return matrix.NewDenseFrom(l, k, data)
}
