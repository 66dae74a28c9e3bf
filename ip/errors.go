// SPDX-License-Identifier: MIT

package ip

import "errors"

var (
	// ErrUnknownVar is returned when a term references a variable that was
	// not created by this model.
	ErrUnknownVar = errors.New("ip: unknown variable")

	// ErrEmptyRange is returned for a constraint with lo > hi.
	ErrEmptyRange = errors.New("ip: constraint range is empty")

	// ErrCoefTooLarge is returned when |coef| exceeds MaxCoef.
	ErrCoefTooLarge = errors.New("ip: coefficient magnitude too large")

	// ErrBadTimeLimit is returned when Params.TimeLimit <= 0.
	ErrBadTimeLimit = errors.New("ip: time limit must be positive")

	// ErrBadWorkers is returned when Params.Workers < 0.
	ErrBadWorkers = errors.New("ip: worker count must be non-negative")

	// ErrNilModel is returned by solvers for a nil model.
	ErrNilModel = errors.New("ip: nil model")
)
