// SPDX-License-Identifier: MIT

package svd

import (
	"fmt"
	"math"

	"github.com/katalvlaran/orssa/matrix"
)

// Jacobi factorizes through the eigen-decomposition of the smaller Gram
// matrix. Zero fields select matrix.DefaultEigenTol and
// matrix.DefaultEigenSweeps.
//
// Precision:
//   - Forming the Gram matrix squares the condition number. Eigenvalues at or
//     below p·ε·λ₀ (p = min(L,K)) are set to σ = 0, so singular values under
//     roughly √(p·ε)·σ₀ are lost: about 1.5e-7·σ₀ at p = 100.
//   - That floor is far coarser than the SSA rank tolerance
//     max(L,K)·1e-12·σ₀. On series with a long tail of small singular
//     values Jacobi reports a lower rank than Gonum, and the sum of all
//     elementary components reproduces the series only to about the same
//     relative accuracy. Use Gonum when full rank precision matters.
type Jacobi struct {
	Tol       float64
	MaxSweeps int
}

var _ Factorizer = Jacobi{}

// machEps is the float64 unit roundoff used for the eigenvalue floor.
const machEps = 2.220446049250313e-16

// Factorize implements Factorizer.
//
// For an L×K input with L ≤ K it solves (A·Aᵀ)u = λu and sets v = Aᵀu/σ;
// otherwise it solves (Aᵀ·A)v = λv and sets u = Av/σ. Eigenvalues below
// p·ε·λ₀ give σ = 0 and zero vectors on the recovered side.
//
// Complexity: O(p²·q) for the Gram matrix and the back-projection,
// O(sweeps·p³) for the eigen solve, with p = min(L,K) and q = max(L,K).
func (j Jacobi) Factorize(a matrix.Matrix) (*Factors, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, fmt.Errorf("Jacobi.Factorize: %w", err)
	}
	byRows := a.Rows() <= a.Cols()
	gram, err := matrix.Gram(a, byRows)
	if err != nil {
		return nil, fmt.Errorf("Jacobi.Factorize: %w", err)
	}
	lambda, vecs, err := matrix.Eigen(gram, j.Tol, j.MaxSweeps)
	if err != nil {
		return nil, fmt.Errorf("Jacobi.Factorize: %w: %w", ErrFactorizeFailed, err)
	}

	src, err := matrix.NewDenseFrom(a.Rows(), a.Cols(), flatten(a))
	if err != nil {
		return nil, fmt.Errorf("Jacobi.Factorize: %w", err)
	}
	// other = srcᵀ (byRows) or src: maps a solved vector to the opposite side.
	other := src
	if byRows {
		if other, err = matrix.Transpose(src); err != nil {
			return nil, fmt.Errorf("Jacobi.Factorize: %w", err)
		}
	}
	// Column k of other·vecs is σ_k times the recovered singular vector.
	recovered, err := matrix.Mul(other, vecs)
	if err != nil {
		return nil, fmt.Errorf("Jacobi.Factorize: %w", err)
	}

	p := len(lambda)
	floor := 0.0
	if p > 0 && lambda[0] > 0 {
		floor = float64(p) * machEps * lambda[0]
	}
	values := make([]float64, p)
	raw := recovered.RawData()
	rows := recovered.Rows()
	var (
		k, i  int
		sigma float64
	)
	for k = 0; k < p; k++ {
		if lambda[k] <= floor {
			for i = 0; i < rows; i++ {
				raw[i*p+k] = 0
			}
			continue
		}
		sigma = math.Sqrt(lambda[k])
		values[k] = sigma
		for i = 0; i < rows; i++ {
			raw[i*p+k] /= sigma
		}
	}

	if byRows {
		return &Factors{Values: values, U: vecs, V: recovered}, nil
	}

	return &Factors{Values: values, U: recovered, V: vecs}, nil
}

// flatten copies any Matrix into a row-major slice.
func flatten(a matrix.Matrix) []float64 {
	if d, ok := a.(*matrix.Dense); ok {
		return d.RawData()
	}
	out := make([]float64, 0, a.Rows()*a.Cols())
	var i, j int
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			v, _ := a.At(i, j)
			out = append(out, v)
		}
	}

	return out
}
