// SPDX-License-Identifier: MIT

package synth

import (
	"math/rand"
)

// Option customizes a generator before the series is produced.
type Option func(*config)

// config is the resolved knob set of one generator call. Each generator
// starts from its own defaults and applies options on top.
type config struct {
	amp        float64 // amplitude > 0
	period     float64 // period in samples > 0
	f0, f1     float64 // chirp sweep, cycles/sample
	duty       float64 // pulse duty in [0,1]
	triangular bool
	trend      float64 // slope per sample
	sigma      float64 // noise level ≥ 0
	rng        *rand.Rand
}

// WithAmplitude sets the main oscillation amplitude. Panics on a ≤ 0.
func WithAmplitude(a float64) Option {
	if !(a > 0) {
		panic("synth: WithAmplitude(a<=0)")
	}
	return func(c *config) { c.amp = a }
}

// WithPeriod sets the main period in samples. Panics on p ≤ 0.
func WithPeriod(p float64) Option {
	if !(p > 0) {
		panic("synth: WithPeriod(p<=0)")
	}
	return func(c *config) { c.period = p }
}

// WithSweep sets the chirp start and end frequencies (cycles/sample).
// Panics unless both are positive.
func WithSweep(f0, f1 float64) Option {
	if !(f0 > 0) || !(f1 > 0) {
		panic("synth: WithSweep(f<=0)")
	}
	return func(c *config) { c.f0, c.f1 = f0, f1 }
}

// WithDuty sets the rectangular pulse duty cycle. Panics outside [0,1].
func WithDuty(d float64) Option {
	if d < 0 || d > 1 {
		panic("synth: WithDuty out of [0,1]")
	}
	return func(c *config) { c.duty = d }
}

// WithTriangular switches Pulse to a triangular envelope.
func WithTriangular() Option {
	return func(c *config) { c.triangular = true }
}

// WithTrend sets the linear trend slope per sample.
func WithTrend(slope float64) Option {
	return func(c *config) { c.trend = slope }
}

// WithNoise sets the noise level; 0 disables noise. Panics on sigma < 0.
func WithNoise(sigma float64) Option {
	if sigma < 0 {
		panic("synth: WithNoise(sigma<0)")
	}
	return func(c *config) { c.sigma = sigma }
}

// WithRand shares an explicit RNG stream across calls. The seed argument of
// the generator is then ignored. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("synth: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// resolve applies opts over the generator defaults.
func resolve(def config, opts []Option) config {
	for _, opt := range opts {
		opt(&def)
	}

	return def
}

// rngFrom returns cfg.rng if present (shared stream), else a local rand
// seeded by seed.
func rngFrom(cfg config, seed int64) *rand.Rand {
	if cfg.rng != nil {
		return cfg.rng
	}

	return rand.New(rand.NewSource(seed))
}
