// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Products and decompositions needed by the SSA layer: Transpose, Mul,
//     Gram and the symmetric Jacobi Eigen solver.
//   - *Dense operands run on flat slices; any other Matrix goes through At.
//
// Determinism:
//   - Fixed loop orders (i→j→k for products, row-cyclic pivots for Jacobi).

package matrix

import (
	"fmt"
	"math"
	"sort"
)

const (
	opTranspose = "Transpose"
	opMul       = "Mul"
	opGram      = "Gram"
	opEigen     = "Eigen"
)

// DefaultEigenSweeps bounds the number of full Jacobi sweeps when a caller
// passes maxSweeps <= 0. Cyclic Jacobi converges quadratically, so real
// inputs finish in well under 20.
const DefaultEigenSweeps = 64

// matrixErrorf wraps a sentinel once with the operation tag.
func matrixErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// denseView returns a *Dense with the same contents as m. For *Dense input it
// is m itself (no copy); other implementations are materialized through At.
func denseView(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// Transpose returns a new c×r matrix with out[j,i] = m[i,j].
// Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	src, err := denseView(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out, err := NewDense(src.c, src.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < src.r; i++ {
		for j = 0; j < src.c; j++ {
			out.data[j*src.r+i] = src.data[i*src.c+j]
		}
	}

	return out, nil
}

// Mul returns the product a×b.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*n*c). The i-k-j order keeps the inner loop contiguous.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	ad, err := denseView(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	bd, err := denseView(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	out, err := NewDense(ad.r, bd.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, k, j      int
		aik          float64
		rowA, rowOut int
	)
	for i = 0; i < ad.r; i++ {
		rowA = i * ad.c
		rowOut = i * bd.c
		for k = 0; k < ad.c; k++ {
			aik = ad.data[rowA+k]
			if aik == 0 {
				continue
			}
			for j = 0; j < bd.c; j++ {
				out.data[rowOut+j] += aik * bd.data[k*bd.c+j]
			}
		}
	}

	return out, nil
}

// Gram returns A·Aᵀ when byRows is true, otherwise Aᵀ·A.
//
// Only the upper triangle is computed; the lower one is mirrored so the
// result is exactly symmetric and passes ValidateSymmetric with tol 0.
// Complexity: O(r²·c) for byRows, O(c²·r) otherwise.
func Gram(a Matrix, byRows bool) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opGram, err)
	}
	ad, err := denseView(a)
	if err != nil {
		return nil, matrixErrorf(opGram, err)
	}

	n, inner := ad.c, ad.r
	if byRows {
		n, inner = ad.r, ad.c
	}
	out, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opGram, err)
	}

	var (
		i, j, k int
		sum     float64
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			sum = 0
			if byRows {
				for k = 0; k < inner; k++ {
					sum += ad.data[i*ad.c+k] * ad.data[j*ad.c+k]
				}
			} else {
				for k = 0; k < inner; k++ {
					sum += ad.data[k*ad.c+i] * ad.data[k*ad.c+j]
				}
			}
			out.data[i*n+j] = sum
			out.data[j*n+i] = sum
		}
	}

	return out, nil
}

// Eigen computes all eigenpairs of a symmetric matrix with cyclic Jacobi
// rotations.
//
// Returns eigenvalues in descending order and a matrix whose column k is the
// unit eigenvector of values[k]. tol is relative to the Frobenius norm of m:
// iteration stops once every off-diagonal entry is at most tol*‖m‖_F (tol<=0
// uses DefaultEigenTol, maxSweeps<=0 uses DefaultEigenSweeps).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrMatrixEigenFailed.
// Complexity: O(sweeps·n³).
func Eigen(m Matrix, tol float64, maxSweeps int) ([]float64, *Dense, error) {
	if tol <= 0 || math.IsNaN(tol) {
		tol = DefaultEigenTol
	}
	if maxSweeps <= 0 {
		maxSweeps = DefaultEigenSweeps
	}
	if err := ValidateSquare(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := denseView(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	n := src.r
	var (
		i, j int
		frob float64
	)
	for _, v := range src.data {
		frob += v * v
	}
	frob = math.Sqrt(frob)
	// Symmetry is checked against the same scale as convergence.
	if err = ValidateSymmetric(src, tol*math.Max(frob, 1)); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	a := src.Clone().(*Dense)
	q, _ := NewDense(n, n)
	for i = 0; i < n; i++ {
		q.data[i*n+i] = 1
	}

	// Floor keeps an all-zero input convergent at sweep 0.
	threshold := math.Max(tol*frob, 1e-300)

	var (
		sweep, p, r, k     int
		maxOff             float64
		app, aqq, apq      float64
		theta, t, c, s     float64
		akp, akq, qkp, qkq float64
		converged          bool
	)
	for sweep = 0; sweep <= maxSweeps; sweep++ {
		maxOff = 0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				if v := math.Abs(a.data[i*n+j]); v > maxOff {
					maxOff = v
				}
			}
		}
		if maxOff <= threshold {
			converged = true
			break
		}
		if sweep == maxSweeps {
			break
		}

		for p = 0; p < n-1; p++ {
			for r = p + 1; r < n; r++ {
				apq = a.data[p*n+r]
				if math.Abs(apq) <= threshold {
					continue
				}
				app = a.data[p*n+p]
				aqq = a.data[r*n+r]

				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				for k = 0; k < n; k++ {
					if k == p || k == r {
						continue
					}
					akp = a.data[k*n+p]
					akq = a.data[k*n+r]
					a.data[k*n+p] = c*akp - s*akq
					a.data[p*n+k] = a.data[k*n+p]
					a.data[k*n+r] = s*akp + c*akq
					a.data[r*n+k] = a.data[k*n+r]
				}
				a.data[p*n+p] = app - t*apq
				a.data[r*n+r] = aqq + t*apq
				a.data[p*n+r], a.data[r*n+p] = 0, 0

				for k = 0; k < n; k++ {
					qkp = q.data[k*n+p]
					qkq = q.data[k*n+r]
					q.data[k*n+p] = c*qkp - s*qkq
					q.data[k*n+r] = s*qkp + c*qkq
				}
			}
		}
	}
	if !converged {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	// Sort eigenpairs by value, descending; ties keep index order.
	order := make([]int, n)
	for i = 0; i < n; i++ {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return a.data[order[x]*n+order[x]] > a.data[order[y]*n+order[y]]
	})

	values := make([]float64, n)
	vectors, _ := NewDense(n, n)
	for k = 0; k < n; k++ {
		values[k] = a.data[order[k]*n+order[k]]
		for i = 0; i < n; i++ {
			vectors.data[i*n+k] = q.data[i*n+order[k]]
		}
	}

	return values, vectors, nil
}
