// SPDX-License-Identifier: MIT

package synth

import (
	"math"
	"math/rand"
)

const tau = 2 * math.Pi

// SineTrend defaults: y = 0.05·t + 3·sin(2πt/20) + 0.5·U[0,1).
const (
	defSineAmp    = 3.0
	defSinePeriod = 20.0
	defSineTrend  = 0.05
	defSineJitter = 0.5
)

// Experimental regime constants.
const (
	expBreak        = 100  // trend breakpoint and noise regime switch
	expSlopeBefore  = 0.02 // trend slope before the break
	expSlopeAfter   = 0.05 // trend slope after the break
	expLevelAtBreak = 2.0
	expNoiseBefore  = 0.3
	expNoiseAfter   = 1.0
	expOutlierProb  = 0.03
	expOutlierSpan  = 10.0 // outliers are uniform in [-span/2, span/2)
)

// Composite constants; see Composite.
const (
	compTrend     = 0.003
	compPeriod1   = 40.0
	compPeriod2   = 11.0
	compPhase2    = 0.4
	compModPeriod = 180.0
	compModDepth  = 0.2
)

// Benchmark series constants; see BenchmarkSeries.
const (
	benchTrend  = 0.0008
	benchAmp1   = 2.0
	benchAmp2   = 0.7
	benchPeriod = 40.0
	benchNoise  = 0.4
)

// SineTrend returns y_t = trend·t + A·sin(2πt/P) + sigma·U[0,1).
//
// Defaults: trend 0.05, A 3, P 20, sigma 0.5 (uniform, non-negative).
// Options: WithAmplitude, WithPeriod, WithTrend, WithNoise, WithRand.
func SineTrend(n int, seed int64, opts ...Option) []float64 {
	if n < 1 {
		return nil
	}
	cfg := resolve(config{
		amp:    defSineAmp,
		period: defSinePeriod,
		trend:  defSineTrend,
		sigma:  defSineJitter,
	}, opts)
	rng := rngFrom(cfg, seed)

	out := make([]float64, n)
	var t float64
	for i := range out {
		t = float64(i)
		out[i] = cfg.trend*t + cfg.amp*math.Sin(tau*t/cfg.period)
		if cfg.sigma > 0 {
			out[i] += cfg.sigma * rng.Float64()
		}
	}

	return out
}

// Experimental returns a series with a structural break at t=100:
//
//	trend  = 0.02·t before, 2 + 0.05·(t−100) after
//	wave   = 2·sin(2πt/40) + 0.8·cos(2πt/10)
//	noise  = (0.3 before, 1.0 after)·(U − 0.5)
//	spikes = with probability 0.03, a uniform draw in [−5, 5)
func Experimental(n int, seed int64) []float64 {
	if n < 1 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))

	out := make([]float64, n)
	var (
		t, trend, wave, level float64
	)
	for i := range out {
		t = float64(i)
		if i < expBreak {
			trend = expSlopeBefore * t
			level = expNoiseBefore
		} else {
			trend = expLevelAtBreak + expSlopeAfter*(t-expBreak)
			level = expNoiseAfter
		}
		wave = 2*math.Sin(tau*t/40) + 0.8*math.Cos(tau*t/10)
		out[i] = trend + wave + level*(rng.Float64()-0.5)
		if rng.Float64() < expOutlierProb {
			out[i] += rng.Float64()*expOutlierSpan - expOutlierSpan/2
		}
	}

	return out
}

// Composite returns the clean series
//
//	y_t = scale·((1 + 0.2·sin(2πt/180))·(2·sin(2πt/40) + 0.5·cos(2πt/11 + 0.4)) + 0.003·t)
//
// It is deterministic; returns nil for n < 1 or scale ≤ 0.
func Composite(n int, scale float64) []float64 {
	if n < 1 || !(scale > 0) {
		return nil
	}
	out := make([]float64, n)
	var t, mod, waves float64
	for i := range out {
		t = float64(i)
		mod = 1 + compModDepth*math.Sin(tau*t/compModPeriod)
		waves = 2*math.Sin(tau*t/compPeriod1) + 0.5*math.Cos(tau*t/compPeriod2+compPhase2)
		out[i] = scale * (mod*waves + compTrend*t)
	}

	return out
}

// BenchmarkSeries returns 0.0008·t + 2·sin(2πt/40) + 0.7·cos(2πt/11) + 0.4·(U − 0.5)
// drawing U from rng. Sweeps share one stream across sizes. nil rng or
// n < 1 gives nil.
func BenchmarkSeries(n int, rng *rand.Rand) []float64 {
	if n < 1 || rng == nil {
		return nil
	}
	out := make([]float64, n)
	var t float64
	for i := range out {
		t = float64(i)
		out[i] = benchTrend*t +
			benchAmp1*math.Sin(tau*t/benchPeriod) +
			benchAmp2*math.Cos(tau*t/compPeriod2) +
			benchNoise*(rng.Float64()-0.5)
	}

	return out
}
