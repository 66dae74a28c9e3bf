// SPDX-License-Identifier: MIT

package ssa_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/orssa/ssa"
	"github.com/katalvlaran/orssa/svd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func sine(n int, period float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.Sin(2 * math.Pi * float64(i) / period)
	}

	return s
}

func noisy(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	s := make([]float64, n)
	for i := range s {
		s[i] = 0.1*float64(i) + 2*math.Sin(2*math.Pi*float64(i)/12) + rng.Float64()
	}

	return s
}

func TestEmbed_Hankel(t *testing.T) {
	x, err := ssa.Embed([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, x.Rows())
	assert.Equal(t, 3, x.Cols())
	assert.Equal(t, []float64{1, 2, 3, 2, 3, 4, 3, 4, 5}, x.RawData())
}

func TestEmbed_Validation(t *testing.T) {
	_, err := ssa.Embed([]float64{1, 2, 3}, 2)
	assert.ErrorIs(t, err, ssa.ErrSeriesTooShort)

	_, err = ssa.Embed([]float64{1, 2, 3, 4}, 1)
	assert.ErrorIs(t, err, ssa.ErrWindowOutOfRange)
	_, err = ssa.Embed([]float64{1, 2, 3, 4}, 4)
	assert.ErrorIs(t, err, ssa.ErrWindowOutOfRange)

	_, err = ssa.Embed([]float64{1, math.NaN(), 3, 4}, 2)
	assert.ErrorIs(t, err, ssa.ErrNonFinite)
}

func TestDecompose_PureSineHasRankTwo(t *testing.T) {
	d, err := ssa.Decompose(sine(200, 20), 100)
	require.NoError(t, err)
	assert.Equal(t, 200, d.N)
	assert.Equal(t, 101, d.K)
	assert.Equal(t, 2, d.Rank)
	assert.Greater(t, d.Sigma[1], 0.9*d.Sigma[0])
}

func TestDecompose_ZeroSeriesHasRankZero(t *testing.T) {
	d, err := ssa.Decompose(make([]float64, 50), 25)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Rank)
	assert.Empty(t, d.Sigma)
	assert.Nil(t, ssa.ElementaryReconstructions(d))
	assert.Equal(t, 0.0, d.TotalEnergy())
}

func TestDecompose_ConstantSeriesHasRankOne(t *testing.T) {
	s := make([]float64, 50)
	for i := range s {
		s[i] = 3
	}
	d, err := ssa.Decompose(s, 25)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Rank)
}

func TestElementaryReconstructions_SumToSeries(t *testing.T) {
	series := noisy(60, 1)
	for _, f := range []svd.Factorizer{svd.Gonum{}, svd.Jacobi{}} {
		for _, l := range []int{5, 30, 50} {
			d, err := ssa.Decompose(series, l, ssa.WithFactorizer(f))
			require.NoError(t, err)
			elems := ssa.ElementaryReconstructions(d)
			require.Len(t, elems, d.Rank)

			keep := make([]bool, d.Rank)
			for i := range keep {
				keep[i] = true
			}
			sum, err := ssa.Assemble(elems, keep, d.N)
			require.NoError(t, err)
			for i := range series {
				assert.InDelta(t, series[i], sum[i], 1e-8, "L=%d t=%d", l, i)
			}
		}
	}
}

func TestDiagonalAverage_InvertsEmbed(t *testing.T) {
	series := noisy(20, 2)
	x, err := ssa.Embed(series, 7)
	require.NoError(t, err)
	back, err := ssa.DiagonalAverage(x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, series, back, tol)

	_, err = ssa.DiagonalAverage(nil)
	assert.Error(t, err)
}

func TestContributions(t *testing.T) {
	q := ssa.Contributions([]float64{3, 4})
	assert.InDelta(t, 9.0/25, q[0], tol)
	assert.InDelta(t, 16.0/25, q[1], tol)

	assert.Equal(t, []float64{0, 0}, ssa.Contributions([]float64{0, 0}))
	assert.Empty(t, ssa.Contributions(nil))

	d, err := ssa.Decompose(noisy(40, 3), 15)
	require.NoError(t, err)
	var sum float64
	for _, v := range ssa.Contributions(d.Sigma) {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, tol)
}

func TestWeights_MatchCellCounts(t *testing.T) {
	cases := []struct{ n, l int }{{10, 3}, {10, 5}, {10, 6}, {10, 9}, {7, 4}}
	for _, c := range cases {
		k := c.n - c.l + 1
		want := make([]float64, c.n)
		for a := 0; a < c.l; a++ {
			for b := 0; b < k; b++ {
				want[a+b]++
			}
		}
		assert.Equal(t, want, ssa.Weights(c.n, c.l, k), "N=%d L=%d", c.n, c.l)
	}
	assert.Equal(t, []float64{1, 2, 3, 3, 3, 2, 1}, ssa.Weights(7, 3, 5))
}

func TestWCorrelation_Properties(t *testing.T) {
	d, err := ssa.Decompose(noisy(80, 4), 30)
	require.NoError(t, err)
	elems := ssa.ElementaryReconstructions(d)
	r, err := ssa.WCorrelation(elems, ssa.Weights(d.N, d.L, d.K))
	require.NoError(t, err)
	require.Equal(t, d.Rank, r.Rows())

	for i := 0; i < d.Rank; i++ {
		v, _ := r.At(i, i)
		assert.Equal(t, 1.0, v)
		for j := 0; j < d.Rank; j++ {
			a, _ := r.At(i, j)
			b, _ := r.At(j, i)
			assert.Equal(t, a, b)
			assert.LessOrEqual(t, math.Abs(a), 1.0)
		}
	}

	abs := ssa.AbsMatrix(r)
	for _, v := range abs.RawData() {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestWCorrelation_DegenerateComponentIsZero(t *testing.T) {
	elems := [][]float64{{1, 2, 3}, {0, 0, 0}}
	r, err := ssa.WCorrelation(elems, []float64{1, 2, 1})
	require.NoError(t, err)
	v, _ := r.At(0, 1)
	assert.Equal(t, 0.0, v)
	assert.False(t, math.IsNaN(v))

	_, err = ssa.WCorrelation(elems, []float64{1, 2})
	assert.ErrorIs(t, err, ssa.ErrLengthMismatch)

	r, err = ssa.WCorrelation(nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, r)
}

func TestAssemble(t *testing.T) {
	elems := [][]float64{{1, 1}, {2, 2}, {4, 4}}
	out, err := ssa.Assemble(elems, []bool{true, false, true}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5}, out)

	_, err = ssa.Assemble(elems, []bool{true}, 2)
	assert.ErrorIs(t, err, ssa.ErrKeepLength)

	out, err = ssa.Assemble(nil, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, out)
}

func TestTopRAndReconstruct(t *testing.T) {
	series := noisy(60, 5)
	d, err := ssa.Decompose(series, 20)
	require.NoError(t, err)
	elems := ssa.ElementaryReconstructions(d)

	keep, recon, err := ssa.TopR(d, elems, 3)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true}, keep[:3])
	assert.False(t, keep[3])

	oneShot, err := ssa.Reconstruct(series, 20, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, recon, oneShot, tol)

	_, _, err = ssa.TopR(d, elems, d.Rank+1)
	assert.ErrorIs(t, err, ssa.ErrBadRank)
	_, _, err = ssa.TopR(nil, nil, 0)
	assert.ErrorIs(t, err, ssa.ErrNilDecomposition)
}

func TestTriplet(t *testing.T) {
	d, err := ssa.Decompose(sine(40, 10), 10)
	require.NoError(t, err)
	u, s, v, ok := d.Triplet(0)
	require.True(t, ok)
	assert.Len(t, u, 10)
	assert.Len(t, v, 31)
	assert.Equal(t, d.Sigma[0], s)

	_, _, _, ok = d.Triplet(d.Rank)
	assert.False(t, ok)
}
