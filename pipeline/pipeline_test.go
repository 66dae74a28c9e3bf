// SPDX-License-Identifier: MIT

package pipeline_test

import (
	"bytes"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/katalvlaran/orssa/ip"
	"github.com/katalvlaran/orssa/pipeline"
	"github.com/katalvlaran/orssa/svd"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(n int, noise float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	s := make([]float64, n)
	for i := range s {
		s[i] = math.Sin(2*math.Pi*float64(i)/20) + noise*(rng.Float64()-0.5)
	}

	return s
}

func cfg(l, rMin, rMax int, lambda float64, lock bool) pipeline.Config {
	c := pipeline.DefaultConfig(l)
	c.RMin, c.RMax, c.Lambda, c.LockAdjacent = rMin, rMax, lambda, lock
	c.TimeLimit = 10 * time.Second
	c.Workers = 2

	return c
}

func TestRun_PureSine(t *testing.T) {
	series := sine(200, 0, 1)
	res, err := pipeline.NewRunner().Run(series, cfg(100, 2, 2, 0, false))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Rank)
	assert.Equal(t, ip.StatusOptimal, res.Selection.Status)
	assert.Equal(t, []int{0, 1}, res.Selected)
	assert.InDeltaSlice(t, series, res.Reconstruction, 1e-8)
	assert.InDelta(t, 1.0, res.Selection.Objective, 1e-6)
}

func TestRun_NoisySinePicksTopTwo(t *testing.T) {
	series := sine(200, 0.05, 2)
	for _, f := range []svd.Factorizer{svd.Gonum{}, svd.Jacobi{}} {
		res, err := pipeline.NewRunner(pipeline.WithFactorizer(f)).Run(series, cfg(100, 2, 2, 0, false))
		require.NoError(t, err)
		assert.Greater(t, res.Rank, 2)
		assert.Equal(t, ip.StatusOptimal, res.Selection.Status)
		assert.Equal(t, []int{0, 1}, res.Selected)
		assert.InDelta(t, res.Contributions[0]+res.Contributions[1], res.Selection.Objective, 1e-5)

		clean := sine(200, 0, 2)
		for i := range clean {
			assert.InDelta(t, clean[i], res.Reconstruction[i], 0.05)
		}
	}
}

func TestRun_ZeroSeriesIsDegenerate(t *testing.T) {
	res, err := pipeline.NewRunner().Run(make([]float64, 50), cfg(25, 2, 6, 0.1, true))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Rank)
	assert.Equal(t, ip.StatusNotSolved, res.Selection.Status)
	assert.Empty(t, res.Selection.Keep)
	assert.Empty(t, res.Selected)
	assert.Equal(t, make([]float64, 50), res.Reconstruction)
	assert.Equal(t, 0.0, res.Selection.Objective)
}

func TestRun_LocksAndCardinality(t *testing.T) {
	series := sine(120, 0.3, 3)
	res, err := pipeline.NewRunner().Run(series, cfg(40, 2, 6, 0.1, true))
	require.NoError(t, err)
	require.True(t, res.Selection.Status.HasSolution())

	kept := res.Selection.Count()
	assert.GreaterOrEqual(t, kept, 2)
	assert.LessOrEqual(t, kept, 6)
	for _, p := range res.Locks {
		assert.Equal(t, res.Selection.Keep[p.I], res.Selection.Keep[p.J])
	}
	assert.Len(t, res.WCorr, res.Rank)
	assert.Len(t, res.Selection.Keep, res.Rank)
}

func TestRun_RMinAboveRank(t *testing.T) {
	_, err := pipeline.NewRunner().Run(sine(200, 0, 1), cfg(100, 3, 4, 0, false))
	assert.ErrorIs(t, err, pipeline.ErrInvalidConfig)
}

func TestConfig_Validate(t *testing.T) {
	good := cfg(10, 2, 6, 0.1, true)
	assert.NoError(t, good.Validate(20))

	cases := map[string]func(*pipeline.Config){
		"window too small": func(c *pipeline.Config) { c.Window = 1 },
		"window too large": func(c *pipeline.Config) { c.Window = 20 },
		"negative rmin":    func(c *pipeline.Config) { c.RMin = -1 },
		"rmax below rmin":  func(c *pipeline.Config) { c.RMax = 1 },
		"negative lambda":  func(c *pipeline.Config) { c.Lambda = -0.5 },
		"nan lambda":       func(c *pipeline.Config) { c.Lambda = math.NaN() },
		"zero time limit":  func(c *pipeline.Config) { c.TimeLimit = 0 },
		"negative workers": func(c *pipeline.Config) { c.Workers = -2 },
	}
	for name, mutate := range cases {
		c := good
		mutate(&c)
		assert.ErrorIs(t, c.Validate(20), pipeline.ErrInvalidConfig, name)
	}

	_, err := pipeline.NewRunner().Run(sine(20, 0, 1), cfg(1, 2, 6, 0.1, true))
	assert.ErrorIs(t, err, pipeline.ErrInvalidConfig)
}

func TestRun_Logger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	_, err := pipeline.NewRunner(pipeline.WithLogger(log)).Run(sine(60, 0, 1), cfg(20, 2, 2, 0, false))
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `"message":"decompose"`)
	assert.Contains(t, out, `"message":"select"`)
	assert.Contains(t, out, `"status":"OPTIMAL"`)
}

func TestRunWithBaseline(t *testing.T) {
	series := sine(150, 0.4, 4)
	cmp, err := pipeline.NewRunner().RunWithBaseline(series, cfg(50, 2, 4, 0.1, true))
	require.NoError(t, err)
	assert.Equal(t, pipeline.BaselineRank(cmp.OR.Selection.Count(), cmp.OR.Rank), cmp.BaselineR)
	assert.Len(t, cmp.Baseline, len(series))
	assert.GreaterOrEqual(t, cmp.MSEBaseline, 0.0)
	assert.GreaterOrEqual(t, cmp.MSEOR, 0.0)
}

func TestBaselineRank(t *testing.T) {
	assert.Equal(t, 0, pipeline.BaselineRank(3, 0))
	assert.Equal(t, 1, pipeline.BaselineRank(0, 5))
	assert.Equal(t, 5, pipeline.BaselineRank(9, 5))
	assert.Equal(t, 3, pipeline.BaselineRank(3, 5))
}

func TestRunWithBaselineR_ExplicitSize(t *testing.T) {
	series := sine(150, 0.4, 4)
	cmp, err := pipeline.NewRunner().RunWithBaselineR(series, cfg(50, 2, 4, 0.1, true), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, cmp.BaselineR)
}
