// SPDX-License-Identifier: MIT

package selector

import "errors"

var (
	// ErrDimensionMismatch is returned when |R| is not r×r for r = len(q).
	ErrDimensionMismatch = errors.New("selector: correlation matrix does not match contributions")

	// ErrBadCardinality is returned for rMin < 0 or rMin > rMax.
	ErrBadCardinality = errors.New("selector: invalid cardinality bounds")

	// ErrNegativeLambda is returned for λ < 0 or NaN.
	ErrNegativeLambda = errors.New("selector: lambda must be non-negative")

	// ErrBadTimeLimit is returned for a non-positive time budget.
	ErrBadTimeLimit = errors.New("selector: time limit must be positive")

	// ErrLockOutOfRange is returned when a locked pair names a missing component.
	ErrLockOutOfRange = errors.New("selector: locked pair index out of range")
)
