// SPDX-License-Identifier: MIT

package ssa

import "fmt"

// Assemble sums the components with keep[i] == true. n is the series length
// and fixes the output size even when nothing is kept (or elems is empty).
//
// Errors: ErrKeepLength when len(keep) != len(elems); ErrLengthMismatch when
// a kept component is not of length n.
func Assemble(elems [][]float64, keep []bool, n int) ([]float64, error) {
	if len(keep) != len(elems) {
		return nil, fmt.Errorf("Assemble: keep=%d elems=%d: %w", len(keep), len(elems), ErrKeepLength)
	}
	out := make([]float64, n)
	for i, x := range elems {
		if !keep[i] {
			continue
		}
		if len(x) != n {
			return nil, fmt.Errorf("Assemble: component %d: %w", i, ErrLengthMismatch)
		}
		for t, v := range x {
			out[t] += v
		}
	}

	return out, nil
}
