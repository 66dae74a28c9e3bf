// SPDX-License-Identifier: MIT

package svd

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/orssa/matrix"
)

var (
	// ErrFactorizeFailed is returned when a backend cannot factorize its input.
	ErrFactorizeFailed = errors.New("svd: factorization failed")

	// ErrUnknownBackend is returned by ByName for an unregistered name.
	ErrUnknownBackend = errors.New("svd: unknown backend")
)

// Factorizer computes a thin SVD a = U·diag(Values)·Vᵀ.
type Factorizer interface {
	Factorize(a matrix.Matrix) (*Factors, error)
}

// Factors holds a thin SVD of an L×K matrix with p = min(L, K).
//   - Values: p singular values, descending, non-negative.
//   - U: L×p, column i is the left singular vector of Values[i].
//   - V: K×p, column i is the right singular vector of Values[i].
type Factors struct {
	Values []float64
	U      *matrix.Dense
	V      *matrix.Dense
}

// Backend names accepted by ByName.
const (
	NameGonum  = "gonum"
	NameJacobi = "jacobi"
)

// ByName resolves a backend by name. The empty string selects Gonum.
func ByName(name string) (Factorizer, error) {
	switch name {
	case "", NameGonum:
		return Gonum{}, nil
	case NameJacobi:
		return Jacobi{}, nil
	default:
		return nil, fmt.Errorf("ByName(%q): %w", name, ErrUnknownBackend)
	}
}
