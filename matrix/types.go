// SPDX-License-Identifier: MIT

package matrix

// Numeric policy defaults.
const (
	// DefaultValidateNaNInf toggles strict finite-value validation on Set and
	// on ingestion through NewDenseFrom.
	DefaultValidateNaNInf = true

	// DefaultEigenTol is the Jacobi convergence threshold used when a caller
	// passes tol <= 0.
	DefaultEigenTol = 1e-12
)

// Matrix is a two-dimensional mutable array of float64 values.
//
// All methods are expected O(1) except Clone (O(rows*cols)).
type Matrix interface {
	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int

	// At retrieves the element at (i, j); ErrOutOfRange on invalid indices.
	At(i, j int) (float64, error)

	// Set assigns v at (i, j); ErrOutOfRange on invalid indices.
	Set(i, j int, v float64) error

	// Clone returns an independent deep copy.
	Clone() Matrix
}
