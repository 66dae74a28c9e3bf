// SPDX-License-Identifier: MIT

// RNG utilities for the perturbed workers.
//
// math/rand.Rand is not goroutine-safe; every worker owns its own stream.

package bnb

import "math/rand"

// defaultRNGSeed is used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand (seed==0 ⇒ defaultRNGSeed).
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream id (SplitMix64 finalizer).
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// workerRNG returns the independent stream of worker id under seed.
func workerRNG(seed int64, id int) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rngFromSeed(deriveSeed(seed, uint64(id)))
}

// perturb applies short-range random swaps to order and flips a fraction of
// value preferences. Both slices are modified in place.
//
// Complexity: O(len(order) + len(prefOne)).
func perturb(order []int, prefOne []bool, rng *rand.Rand) {
	const (
		reach    = 4
		flipProb = 0.15
	)
	n := len(order)
	var i, j int
	for i = 0; i < n; i++ {
		j = i + rng.Intn(min(reach, n-i))
		order[i], order[j] = order[j], order[i]
	}
	for i = range prefOne {
		if rng.Float64() < flipProb {
			prefOne[i] = !prefOne[i]
		}
	}
}
