// SPDX-License-Identifier: MIT

// Package bnb is a time-bounded, multi-worker branch-and-bound backend for
// ip models.
//
// Search (per worker):
//  1. Activity propagation: every constraint keeps the minimum and maximum
//     reachable activity over its free variables. A constraint whose range
//     is violated is a conflict; a free variable whose value would violate
//     it is forced to the other value.
//  2. Bound: fixed objective + best positive gain of every free variable.
//     A variable's gain is its coefficient plus the penalty of every
//     conjunction x+p−y ≤ 1 whose partner p is already 1. The best
//     unit-coefficient ≤ constraint caps how many gains can be collected
//     (top-k).
//  3. DFS over a static variable order: most-constrained first, then larger
//     |objective|, then index. The preferred value is 1 for positive
//     objective coefficients.
//  4. Soft time limit: rare deadline checks (every 1024 node events).
//
// Workers:
//   - Worker 0 runs the deterministic order. Workers 1..W-1 use perturbed
//     orders drawn from seeded, independent RNG streams.
//   - All workers share one incumbent and prune against it. The first worker
//     to exhaust its tree proves optimality (or infeasibility) and stops the
//     rest.
//
// With Workers ≤ 1 and enough time the result is fully deterministic.
package bnb
