// SPDX-License-Identifier: MIT

// Package synth generates deterministic synthetic series for demos, tests
// and benchmarks of the OR-SSA pipeline.
//
// Every generator takes an explicit seed (or an explicit *rand.Rand through
// WithRand) so that equal inputs always give equal outputs. Nothing here
// reads global state.
//
// Generators:
//   - SineTrend: linear trend + sine of period 20 + uniform jitter.
//   - Experimental: broken trend, two waves, heteroscedastic noise, outliers.
//   - Composite: slow trend + two waves under a slow amplitude modulation
//     (no noise; pair it with AddUniformNoise).
//   - BenchmarkSeries: trend + two waves + uniform noise from a shared stream.
//   - Chirp, Pulse: shape primitives with options.
//
// Generators return nil for n < 1 or an invalid parameter set. Option
// constructors panic on meaningless arguments; generators never panic.
package synth
