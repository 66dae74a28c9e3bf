// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra primitives used by the
// SSA pipeline.
//
// The package offers:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set and an
//     optional finite-only numeric policy.
//   - Kernels: Mul, Transpose, Gram (A·Aᵀ / Aᵀ·A) and a Jacobi Eigen solver
//     for symmetric input.
//   - Validators shared by the kernels (nil, square, symmetric, product shapes).
//
// Policy:
//   - No panics on user input; every failure is one of the sentinels in
//     errors.go, wrapped at most once with the operation name.
//   - Deterministic loop orders everywhere; identical input gives identical
//     output bit for bit.
//   - *Dense operands take flat-slice fast paths; other Matrix implementations
//     fall back to At/Set.
//
// Complexity quicksheet:
//
//	NewDense O(r·c) · At/Set O(1) · Mul O(r·n·c) · Gram O(r²·c) · Eigen O(iter·n)
package matrix
