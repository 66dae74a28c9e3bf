// SPDX-License-Identifier: MIT

// Package ip is a small 0/1 integer-programming capability.
//
// A Model holds boolean variables, linear range constraints
// lo ≤ Σ a_k·x_k ≤ hi with int64 coefficients, and a linear objective to
// maximize. A Solver turns a Model plus Params (time budget, worker hint,
// seed) into a Solution carrying values, objective, status and search
// diagnostics.
//
// The selector builds its model against this package only; the bundled
// backend lives in ip/bnb. Any other engine can be plugged in by
// implementing Solver.
//
// Solver outcomes (optimal, feasible, infeasible, unknown) are data in
// Solution.Status, never errors. Errors are reserved for malformed models
// and parameters.
package ip
