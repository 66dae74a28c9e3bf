// SPDX-License-Identifier: MIT

package selector_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/katalvlaran/orssa/ip"
	"github.com/katalvlaran/orssa/ip/bnb"
	"github.com/katalvlaran/orssa/matrix"
	"github.com/katalvlaran/orssa/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func params(rMin, rMax int, lambda float64) selector.Params {
	return selector.Params{RMin: rMin, RMax: rMax, Lambda: lambda, TimeLimit: 10 * time.Second, Workers: 1}
}

// uniform returns an r×r matrix with v off the diagonal and 1 on it.
func uniform(t *testing.T, r int, v float64) *matrix.Dense {
	m, err := matrix.NewDense(r, r)
	require.NoError(t, err)
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			x := v
			if i == j {
				x = 1
			}
			require.NoError(t, m.Set(i, j, x))
		}
	}

	return m
}

func TestLinearizeAnd_ForcedValues(t *testing.T) {
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			for _, sign := range []int64{1, -1} {
				m := ip.NewModel()
				zi := m.NewBoolVar("zi")
				zj := m.NewBoolVar("zj")
				y, err := selector.LinearizeAnd(m, zi, zj, "y")
				require.NoError(t, err)
				require.NoError(t, m.AddEQ([]ip.Term{ip.T(zi, 1)}, b2i(a)))
				require.NoError(t, m.AddEQ([]ip.Term{ip.T(zj, 1)}, b2i(b)))
				require.NoError(t, m.Maximize([]ip.Term{ip.T(y, sign)}))

				sol, err := bnb.New().Solve(m, ip.Params{TimeLimit: time.Second})
				require.NoError(t, err)
				require.Equal(t, ip.StatusOptimal, sol.Status)
				assert.Equal(t, a && b, sol.Value(y), "zi=%v zj=%v sign=%d", a, b, sign)
			}
		}
	}
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func TestSelect_ZeroLambdaPicksTopEnergy(t *testing.T) {
	q := []float64{0.1, 0.5, 0.3, 0.1}
	res, err := selector.Select(q, uniform(t, 4, 0.7), nil, params(2, 2, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, ip.StatusOptimal, res.Status)
	assert.Equal(t, []bool{false, true, true, false}, res.Keep)
	assert.InDelta(t, 0.8, res.Objective, 1e-9)
	assert.Equal(t, []int{1, 2}, res.Indices())
	assert.Equal(t, 2, res.Count())
}

func TestSelect_LargeLambdaPrefersFewerComponents(t *testing.T) {
	q := []float64{0.4, 0.35, 0.25}
	absR := uniform(t, 3, 0.9)

	low, err := selector.Select(q, absR, nil, params(1, 3, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, low.Count())

	high, err := selector.Select(q, absR, nil, params(1, 3, 10), nil)
	require.NoError(t, err)
	assert.Equal(t, ip.StatusOptimal, high.Status)
	assert.Equal(t, []bool{true, false, false}, high.Keep)
	assert.InDelta(t, 0.4, high.Objective, 1e-9)
}

func TestSelect_LargeLambdaPrefersUncorrelated(t *testing.T) {
	q := []float64{0.4, 0.35, 0.25}
	absR, _ := matrix.NewDenseFrom(3, 3, []float64{
		1, 0.95, 0,
		0.95, 1, 0,
		0, 0, 1,
	})
	res, err := selector.Select(q, absR, nil, params(2, 2, 5), nil)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, res.Keep)
}

func TestSelect_LocksAndCardinalityHold(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 25; iter++ {
		r := 3 + rng.Intn(6)
		q := make([]float64, r)
		for i := range q {
			q[i] = rng.Float64()
		}
		absR := uniform(t, r, 0)
		for i := 0; i < r; i++ {
			for j := i + 1; j < r; j++ {
				v := rng.Float64()
				_ = absR.Set(i, j, v)
				_ = absR.Set(j, i, v)
			}
		}
		rMin := rng.Intn(3)
		rMax := rMin + 1 + rng.Intn(3)
		locks := selector.AdjacentPairs(r)

		res, err := selector.Select(q, absR, locks, selector.Params{
			RMin: rMin, RMax: rMax, Lambda: rng.Float64(), TimeLimit: 10 * time.Second, Workers: 2, Seed: int64(iter),
		}, nil)
		require.NoError(t, err)
		require.Len(t, res.Keep, r)
		if !res.Status.HasSolution() {
			assert.Equal(t, ip.StatusInfeasible, res.Status)
			continue
		}
		assert.GreaterOrEqual(t, res.Count(), rMin, "iter %d", iter)
		assert.LessOrEqual(t, res.Count(), rMax, "iter %d", iter)
		for _, l := range locks {
			assert.Equal(t, res.Keep[l.I], res.Keep[l.J], "iter %d lock %v", iter, l)
		}
	}
}

func TestSelect_IdempotentObjective(t *testing.T) {
	q := []float64{0.3, 0.3, 0.2, 0.1, 0.1}
	absR := uniform(t, 5, 0.2)
	p := params(2, 4, 0.3)
	p.Workers = 4
	a, err := selector.Select(q, absR, nil, p, nil)
	require.NoError(t, err)
	b, err := selector.Select(q, absR, nil, p, nil)
	require.NoError(t, err)
	assert.Equal(t, a.Objective, b.Objective)
}

func TestSelect_HonoursTimeBudgetAtHighRank(t *testing.T) {
	const r = 300
	rng := rand.New(rand.NewSource(9))
	q := make([]float64, r)
	var sum float64
	for i := range q {
		q[i] = rng.Float64()
		sum += q[i]
	}
	for i := range q {
		q[i] /= sum
	}
	absR := uniform(t, r, 0)
	for i := 0; i < r; i++ {
		for j := i + 1; j < r; j++ {
			v := rng.Float64()
			_ = absR.Set(i, j, v)
			_ = absR.Set(j, i, v)
		}
	}
	locks := selector.AdjacentPairs(r)
	budget := 300 * time.Millisecond

	res, err := selector.Select(q, absR, locks, selector.Params{
		RMin: 2, RMax: 6, Lambda: 0.1, TimeLimit: budget, Workers: 4, Seed: 3,
	}, nil)
	require.NoError(t, err)
	assert.True(t, res.Status.HasSolution(), "status %s", res.Status)
	assert.Less(t, res.WallTime, budget+250*time.Millisecond)
	assert.GreaterOrEqual(t, res.Count(), 2)
	assert.LessOrEqual(t, res.Count(), 6)
	for _, l := range locks {
		assert.Equal(t, res.Keep[l.I], res.Keep[l.J])
	}
}

func TestSelect_EmptyRank(t *testing.T) {
	res, err := selector.Select(nil, nil, nil, params(2, 6, 0.1), nil)
	require.NoError(t, err)
	assert.Equal(t, ip.StatusNotSolved, res.Status)
	assert.Empty(t, res.Keep)
	assert.Equal(t, 0.0, res.Objective)
}

func TestSelect_RMinAboveRankIsInfeasible(t *testing.T) {
	res, err := selector.Select([]float64{0.6, 0.4}, uniform(t, 2, 0.1), nil, params(3, 4, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, ip.StatusInfeasible, res.Status)
	assert.Equal(t, []bool{false, false}, res.Keep)
}

func TestSelect_Validation(t *testing.T) {
	q := []float64{0.5, 0.5}
	absR := uniform(t, 2, 0)

	_, err := selector.Select(q, absR, nil, params(3, 2, 0), nil)
	assert.ErrorIs(t, err, selector.ErrBadCardinality)
	_, err = selector.Select(q, absR, nil, params(-1, 2, 0), nil)
	assert.ErrorIs(t, err, selector.ErrBadCardinality)
	_, err = selector.Select(q, absR, nil, params(1, 2, -0.1), nil)
	assert.ErrorIs(t, err, selector.ErrNegativeLambda)
	_, err = selector.Select(q, absR, nil, params(1, 2, math.NaN()), nil)
	assert.ErrorIs(t, err, selector.ErrNegativeLambda)

	p := params(1, 2, 0)
	p.TimeLimit = 0
	_, err = selector.Select(q, absR, nil, p, nil)
	assert.ErrorIs(t, err, selector.ErrBadTimeLimit)

	_, err = selector.Select(q, uniform(t, 3, 0), nil, params(1, 2, 0), nil)
	assert.ErrorIs(t, err, selector.ErrDimensionMismatch)
	_, err = selector.Select(q, absR, []selector.Pair{{I: 0, J: 2}}, params(1, 2, 0), nil)
	assert.ErrorIs(t, err, selector.ErrLockOutOfRange)
}

func TestBuildModel_Shape(t *testing.T) {
	q := []float64{0.5, 0.3, 0.2}
	m, z, err := selector.BuildModel(q, uniform(t, 3, 0.5), selector.AdjacentPairs(3), params(1, 2, 0.1))
	require.NoError(t, err)
	assert.Len(t, z, 3)
	// 3 z + 3 y; 3·3 linearization + cardinality + one lock.
	assert.Equal(t, 6, m.NumVars())
	assert.Equal(t, 11, m.NumConstraints())
	assert.Len(t, m.Objective(), 6)

	// λ=0 drops every pair term.
	m, _, err = selector.BuildModel(q, uniform(t, 3, 0.5), nil, params(1, 2, 0))
	require.NoError(t, err)
	assert.Len(t, m.Objective(), 3)
}

func TestAdjacentPairs(t *testing.T) {
	assert.Nil(t, selector.AdjacentPairs(1))
	assert.Equal(t, []selector.Pair{{0, 1}, {2, 3}}, selector.AdjacentPairs(5))
}
