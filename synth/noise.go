// SPDX-License-Identifier: MIT

package synth

import (
	"math/rand"
)

// AddUniformNoise returns clean + sigma·U(−1, 1) drawn from a stream seeded
// by seed. clean is not modified. sigma < 0 or empty clean gives nil.
func AddUniformNoise(clean []float64, sigma float64, seed int64) []float64 {
	if len(clean) == 0 || sigma < 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, len(clean))
	for i, v := range clean {
		out[i] = v + sigma*(rng.Float64()-0.5)*2
	}

	return out
}

// AddGaussianNoise returns clean + sigma·N(0,1). Same contract as
// AddUniformNoise.
func AddGaussianNoise(clean []float64, sigma float64, seed int64) []float64 {
	if len(clean) == 0 || sigma < 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, len(clean))
	for i, v := range clean {
		out[i] = v + sigma*rng.NormFloat64()
	}

	return out
}
