// SPDX-License-Identifier: MIT

// Package ssa implements Singular Spectrum Analysis over a single,
// fully materialized series.
//
// Pipeline (leaves first):
//
//  1. Embed builds the L×K trajectory (Hankel) matrix X[i,j] = s[i+j].
//  2. Decompose factorizes X through an svd.Factorizer and keeps the r
//     singular triplets with σ_i > max(L,K)·1e-12·max(σ₀, 1e-30).
//  3. ElementaryReconstructions expands each triplet to σ·u⊗v and maps it
//     back to a length-N series by diagonal averaging.
//  4. Contributions, Weights and WCorrelation measure energy share and
//     pairwise redundancy between elementary components.
//  5. Assemble sums a chosen subset of components.
//
// Every function is pure: inputs are never mutated and results are fresh
// values owned by the caller. Nothing here logs, panics on user input, or
// keeps package state.
//
// Complexity:
//
//	Embed O(L·K) · Decompose O(L·K·min(L,K)) · ElementaryReconstructions O(r·L·K)
//	WCorrelation O(r²·N) · Assemble O(r·N)
package ssa
