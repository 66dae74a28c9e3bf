// SPDX-License-Identifier: MIT

package synth

import (
	"math"
)

const (
	defShapeAmp = 1.0
	defChirpF0  = 0.02 // cycles/sample
	defChirpF1  = 0.25
	defPulseF0  = 0.125 // period 8
	defDuty     = 0.5
)

// Chirp returns a linear frequency sweep from f0 to f1:
//
//	f_i = f0 + (f1 − f0)·i/(n−1)
//	θ_{i+1} = θ_i + 2π·f_i
//	y_i = A·sin(θ_i) + trend·i + sigma·N(0,1)
//
// Defaults: A 1, f0 0.02, f1 0.25, no trend, no noise.
// Options: WithAmplitude, WithSweep, WithTrend, WithNoise, WithRand.
func Chirp(n int, seed int64, opts ...Option) []float64 {
	if n < 1 {
		return nil
	}
	cfg := resolve(config{amp: defShapeAmp, f0: defChirpF0, f1: defChirpF1}, opts)
	rng := rngFrom(cfg, seed)

	out := make([]float64, n)
	var theta, pos, fi float64
	for i := range out {
		if n > 1 {
			pos = float64(i) / float64(n-1)
		}
		fi = cfg.f0 + (cfg.f1-cfg.f0)*pos
		theta += tau * fi
		out[i] = cfg.amp*math.Sin(theta) + cfg.trend*float64(i)
		if cfg.sigma > 0 {
			out[i] += cfg.sigma * rng.NormFloat64()
		}
	}

	return out
}

// Pulse returns a rectangular ({0, A}, on while the phase fraction is below
// duty) or triangular ([0, A]) pulse train with period 1/f, plus optional
// trend and Gaussian noise.
//
// Defaults: A 1, period 8, duty 0.5, rectangular.
// Options: WithAmplitude, WithPeriod, WithDuty, WithTriangular, WithTrend,
// WithNoise, WithRand.
func Pulse(n int, seed int64, opts ...Option) []float64 {
	if n < 1 {
		return nil
	}
	cfg := resolve(config{amp: defShapeAmp, period: 1 / defPulseF0, duty: defDuty}, opts)
	rng := rngFrom(cfg, seed)

	f := 1 / cfg.period
	out := make([]float64, n)
	var frac, base float64
	for i := range out {
		frac = math.Mod(float64(i)*f, 1)
		switch {
		case cfg.triangular:
			base = cfg.amp * (1 - math.Abs(2*frac-1))
		case frac < cfg.duty:
			base = cfg.amp
		default:
			base = 0
		}
		base += cfg.trend * float64(i)
		if cfg.sigma > 0 {
			base += cfg.sigma * rng.NormFloat64()
		}
		out[i] = base
	}

	return out
}
