// SPDX-License-Identifier: MIT

// Package svd is the dense singular value decomposition capability used by
// the SSA decomposer.
//
// The decomposer depends only on the Factorizer interface. Two backends ship
// with the module:
//
//   - Gonum: thin SVD from gonum.org/v1/gonum/mat (Golub-Kahan). Default.
//   - Jacobi: pure-Go fallback. Eigen-decomposes the smaller Gram matrix with
//     cyclic Jacobi rotations and recovers the opposite singular vectors.
//     Singular values below √(n·ε)·σ₀ are lost to squaring and reported as 0.
//
// Every backend returns singular values in descending order with U and V
// columns paired positionally. Signs of paired vectors are backend-specific.
package svd
