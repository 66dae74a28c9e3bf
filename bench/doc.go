// SPDX-License-Identifier: MIT

// Package bench sweeps the series length N and times classic top-r SSA
// against OR-SSA on the same decomposition.
//
// For each N in [Start, End] with step Step, a series is drawn from
// synth.BenchmarkSeries using one shared RNG stream (seeded once per sweep),
// the window is N/2 clamped to [2, N−1], and one Row is produced. Both
// curves include the decomposition cost, matching how the timings are
// usually plotted.
package bench
