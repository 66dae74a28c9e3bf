// SPDX-License-Identifier: MIT

package ssa

import "errors"

var (
	// ErrSeriesTooShort is returned for series shorter than MinSeriesLength.
	ErrSeriesTooShort = errors.New("ssa: series too short")

	// ErrNonFinite is returned when the series holds NaN or ±Inf.
	ErrNonFinite = errors.New("ssa: series contains NaN or Inf")

	// ErrWindowOutOfRange is returned when L is outside [2, N-1].
	ErrWindowOutOfRange = errors.New("ssa: window length out of range")

	// ErrNilDecomposition is returned when a nil *Decomposition is passed.
	ErrNilDecomposition = errors.New("ssa: nil decomposition")

	// ErrLengthMismatch is returned when series or weights disagree in length.
	ErrLengthMismatch = errors.New("ssa: length mismatch")

	// ErrKeepLength is returned by Assemble when len(keep) != len(elems).
	ErrKeepLength = errors.New("ssa: keep vector length differs from component count")

	// ErrBadRank is returned by the top-r baseline for r outside [0, rank].
	ErrBadRank = errors.New("ssa: requested rank out of range")
)
