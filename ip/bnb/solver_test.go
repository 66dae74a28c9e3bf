// SPDX-License-Identifier: MIT

package bnb_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/katalvlaran/orssa/ip"
	"github.com/katalvlaran/orssa/ip/bnb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var params = ip.Params{TimeLimit: 10 * time.Second, Workers: 1}

// bruteForce enumerates every assignment. ok is false when infeasible.
func bruteForce(m *ip.Model) (best int64, ok bool) {
	n := m.NumVars()
	values := make([]bool, n)
	for mask := 0; mask < 1<<n; mask++ {
		for i := range values {
			values[i] = mask&(1<<i) != 0
		}
		if obj, feasible := m.Evaluate(values); feasible && (!ok || obj > best) {
			best, ok = obj, true
		}
	}

	return best, ok
}

func TestSolve_Knapsack(t *testing.T) {
	m := ip.NewModel()
	w := []int64{5, 4, 6, 3}
	v := []int64{10, 40, 30, 50}
	vars := make([]ip.Var, len(w))
	var capTerms, obj []ip.Term
	for i := range w {
		vars[i] = m.NewBoolVar("x")
		capTerms = append(capTerms, ip.T(vars[i], w[i]))
		obj = append(obj, ip.T(vars[i], v[i]))
	}
	require.NoError(t, m.AddLE(capTerms, 10))
	require.NoError(t, m.Maximize(obj))

	sol, err := bnb.New().Solve(m, params)
	require.NoError(t, err)
	assert.Equal(t, ip.StatusOptimal, sol.Status)
	assert.Equal(t, int64(90), sol.Objective)
	assert.Equal(t, []bool{false, true, false, true}, sol.Values)
	assert.Equal(t, sol.Objective, sol.BestBound)
	assert.Greater(t, sol.Branches, int64(0))
}

func TestSolve_Infeasible(t *testing.T) {
	m := ip.NewModel()
	x := m.NewBoolVar("x")
	y := m.NewBoolVar("y")
	require.NoError(t, m.AddGE([]ip.Term{ip.T(x, 1), ip.T(y, 1)}, 2))
	require.NoError(t, m.AddLE([]ip.Term{ip.T(x, 1)}, 0))

	sol, err := bnb.New().Solve(m, params)
	require.NoError(t, err)
	assert.Equal(t, ip.StatusInfeasible, sol.Status)
	assert.Nil(t, sol.Values)
	assert.GreaterOrEqual(t, sol.Conflicts, int64(1))
}

func TestSolve_EmptyConstraintConflict(t *testing.T) {
	m := ip.NewModel()
	x := m.NewBoolVar("x")
	require.NoError(t, m.AddEQ([]ip.Term{ip.T(x, 1), ip.T(x, -1)}, 1))

	sol, err := bnb.New().Solve(m, params)
	require.NoError(t, err)
	assert.Equal(t, ip.StatusInfeasible, sol.Status)
}

func TestSolve_EmptyModel(t *testing.T) {
	sol, err := bnb.New().Solve(ip.NewModel(), params)
	require.NoError(t, err)
	assert.Equal(t, ip.StatusOptimal, sol.Status)
	assert.Equal(t, int64(0), sol.Objective)
	assert.Empty(t, sol.Values)
}

// randomModel builds a pairwise-penalty model with cardinality, the same
// shape the component selector produces.
func randomModel(rng *rand.Rand, r int) *ip.Model {
	m := ip.NewModel()
	z := make([]ip.Var, r)
	var obj, card []ip.Term
	for i := range z {
		z[i] = m.NewBoolVar("z")
		obj = append(obj, ip.T(z[i], rng.Int63n(1000)))
		card = append(card, ip.T(z[i], 1))
	}
	for i := 0; i < r; i++ {
		for j := i + 1; j < r; j++ {
			y := m.NewBoolVar("y")
			_ = m.AddLE([]ip.Term{ip.T(y, 1), ip.T(z[i], -1)}, 0)
			_ = m.AddLE([]ip.Term{ip.T(y, 1), ip.T(z[j], -1)}, 0)
			_ = m.AddLE([]ip.Term{ip.T(z[i], 1), ip.T(z[j], 1), ip.T(y, -1)}, 1)
			obj = append(obj, ip.T(y, -rng.Int63n(400)))
		}
	}
	lo := int64(rng.Intn(2))
	_ = m.AddLinear(card, lo, lo+int64(rng.Intn(3)))
	if r >= 2 && rng.Intn(2) == 0 {
		_ = m.AddEQ([]ip.Term{ip.T(z[0], 1), ip.T(z[1], -1)}, 0)
	}
	_ = m.Maximize(obj)

	return m
}

func TestSolve_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 40; iter++ {
		m := randomModel(rng, 2+rng.Intn(3))
		want, ok := bruteForce(m)

		for _, workers := range []int{1, 4} {
			sol, err := bnb.New().Solve(m, ip.Params{TimeLimit: 10 * time.Second, Workers: workers, Seed: int64(iter)})
			require.NoError(t, err)
			if !ok {
				assert.Equal(t, ip.StatusInfeasible, sol.Status, "iter %d", iter)
				continue
			}
			require.Equal(t, ip.StatusOptimal, sol.Status, "iter %d", iter)
			assert.Equal(t, want, sol.Objective, "iter %d workers %d", iter, workers)
			obj, feasible := m.Evaluate(sol.Values)
			assert.True(t, feasible)
			assert.Equal(t, want, obj)
		}
	}
}

func TestSolve_DeterministicSingleWorker(t *testing.T) {
	m := randomModel(rand.New(rand.NewSource(3)), 8)
	a, err := bnb.New().Solve(m, params)
	require.NoError(t, err)
	b, err := bnb.New().Solve(m, params)
	require.NoError(t, err)
	assert.Equal(t, a.Values, b.Values)
	assert.Equal(t, a.Branches, b.Branches)
}

func TestSolve_TimeLimit(t *testing.T) {
	m := randomModel(rand.New(rand.NewSource(5)), 30)
	sol, err := bnb.New().Solve(m, ip.Params{TimeLimit: time.Nanosecond, Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, ip.StatusUnknown, sol.Status)
	assert.Nil(t, sol.Values)
}

// selectionModel has the selector's shape at scale: r keep variables, one
// penalized AND auxiliary per pair, 2 ≤ Σz ≤ 6 and z[2k] = z[2k+1].
func selectionModel(rng *rand.Rand, r int) *ip.Model {
	m := ip.NewModel()
	z := make([]ip.Var, r)
	var obj, card []ip.Term
	for i := range z {
		z[i] = m.NewBoolVar("z")
		obj = append(obj, ip.T(z[i], 1+rng.Int63n(1_000_000)))
		card = append(card, ip.T(z[i], 1))
	}
	for i := 0; i < r; i++ {
		for j := i + 1; j < r; j++ {
			y := m.NewBoolVar("y")
			_ = m.AddLE([]ip.Term{ip.T(y, 1), ip.T(z[i], -1)}, 0)
			_ = m.AddLE([]ip.Term{ip.T(y, 1), ip.T(z[j], -1)}, 0)
			_ = m.AddLE([]ip.Term{ip.T(z[i], 1), ip.T(z[j], 1), ip.T(y, -1)}, 1)
			obj = append(obj, ip.T(y, -rng.Int63n(100_000)))
		}
	}
	_ = m.AddLinear(card, 2, 6)
	for i := 0; i+1 < r; i += 2 {
		_ = m.AddEQ([]ip.Term{ip.T(z[i], 1), ip.T(z[i+1], -1)}, 0)
	}
	_ = m.Maximize(obj)

	return m
}

func TestSolve_HonoursTimeBudgetOnLargeModel(t *testing.T) {
	m := selectionModel(rand.New(rand.NewSource(21)), 200)
	budget := 200 * time.Millisecond
	slack := 250 * time.Millisecond

	start := time.Now()
	sol, err := bnb.New().Solve(m, ip.Params{TimeLimit: budget, Workers: 4, Seed: 1})
	elapsed := time.Since(start)
	require.NoError(t, err)

	assert.True(t, sol.Status.HasSolution(), "status %s", sol.Status)
	assert.Less(t, sol.WallTime, budget+slack)
	assert.Less(t, elapsed, budget+slack)
	obj, feasible := m.Evaluate(sol.Values)
	assert.True(t, feasible)
	assert.Equal(t, sol.Objective, obj)
}

func TestSolve_BadInput(t *testing.T) {
	_, err := bnb.New().Solve(nil, params)
	assert.ErrorIs(t, err, ip.ErrNilModel)

	_, err = bnb.New().Solve(ip.NewModel(), ip.Params{})
	assert.ErrorIs(t, err, ip.ErrBadTimeLimit)
}

func BenchmarkSolve_Pairwise12(b *testing.B) {
	m := randomModel(rand.New(rand.NewSource(11)), 12)
	p := ip.Params{TimeLimit: time.Minute, Workers: 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bnb.New().Solve(m, p)
	}
}
