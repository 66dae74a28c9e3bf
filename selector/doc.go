// SPDX-License-Identifier: MIT

// Package selector chooses which SSA elementary components to keep.
//
// The choice is the 0/1 program
//
//	maximize   Σ_i q_i·z_i − λ·Σ_{i<j} |R_ij|·y_ij
//	subject to y_ij = z_i ∧ z_j              (LinearizeAnd)
//	           rMin ≤ Σ_i z_i ≤ rMax
//	           z_i = z_j for every locked pair
//
// with coefficients quantized to integers at Scale and solved by any
// ip.Solver within a wall-clock budget. The reported Objective is divided
// back by Scale.
//
// Keep is not unique when ties exist; only the Objective value and
// feasibility are reproducible across runs.
package selector
