// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/orssa/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestTranspose(t *testing.T) {
	m, _ := matrix.NewDenseFrom(2, 3, []float64{1, 2, 3, 4, 5, 6})
	tr, err := matrix.Transpose(m)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Rows())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, tr.RawData())

	_, err = matrix.Transpose(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMul(t *testing.T) {
	a, _ := matrix.NewDenseFrom(2, 3, []float64{1, 2, 3, 4, 5, 6})
	b, _ := matrix.NewDenseFrom(3, 2, []float64{7, 8, 9, 10, 11, 12})
	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{58, 64, 139, 154}, p.RawData())

	_, err = matrix.Mul(a, a)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestGram_MatchesMulAndIsSymmetric(t *testing.T) {
	a, _ := matrix.NewDenseFrom(3, 2, []float64{1, 2, 3, 4, 5, 6})
	at, _ := matrix.Transpose(a)

	rows, err := matrix.Gram(a, true)
	require.NoError(t, err)
	want, _ := matrix.Mul(a, at)
	assert.Equal(t, want.RawData(), rows.RawData())
	assert.NoError(t, matrix.ValidateSymmetric(rows, 0))

	cols, err := matrix.Gram(a, false)
	require.NoError(t, err)
	want, _ = matrix.Mul(at, a)
	assert.Equal(t, want.RawData(), cols.RawData())
	assert.Equal(t, 2, cols.Rows())
}

func TestEigen_Diagonal2x2(t *testing.T) {
	m, _ := matrix.NewDenseFrom(2, 2, []float64{2, 1, 1, 2})
	vals, vecs, err := matrix.Eigen(m, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, vals[0], eps)
	assert.InDelta(t, 1.0, vals[1], eps)

	// A·v = λ·v for every pair.
	for k := 0; k < 2; k++ {
		v, _ := vecs.Col(k)
		for i := 0; i < 2; i++ {
			row, _ := m.Row(i)
			assert.InDelta(t, vals[k]*v[i], row[0]*v[0]+row[1]*v[1], eps)
		}
	}
}

func TestEigen_ReconstructsInput(t *testing.T) {
	a, _ := matrix.NewDenseFrom(4, 3, []float64{
		1, 2, 0,
		0, 1, 3,
		4, 0, 1,
		2, 2, 2,
	})
	g, _ := matrix.Gram(a, false)
	vals, vecs, err := matrix.Eigen(g, 1e-14, 0)
	require.NoError(t, err)

	for k := 1; k < len(vals); k++ {
		assert.GreaterOrEqual(t, vals[k-1], vals[k])
	}
	// Q·diag(λ)·Qᵀ == G
	n := g.Rows()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var s float64
			for k := 0; k < n; k++ {
				qik, _ := vecs.At(i, k)
				qjk, _ := vecs.At(j, k)
				s += qik * vals[k] * qjk
			}
			gij, _ := g.At(i, j)
			assert.InDelta(t, gij, s, 1e-8)
		}
	}
}

func TestEigen_ZeroMatrix(t *testing.T) {
	z, _ := matrix.NewDense(3, 3)
	vals, vecs, err := matrix.Eigen(z, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, vals)
	v, _ := vecs.At(1, 1)
	assert.Equal(t, 1.0, v)
}

func TestEigen_Errors(t *testing.T) {
	rect, _ := matrix.NewDense(2, 3)
	_, _, err := matrix.Eigen(rect, 0, 0)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	asym, _ := matrix.NewDenseFrom(2, 2, []float64{1, 5, 0, 1})
	_, _, err = matrix.Eigen(asym, 0, 0)
	assert.ErrorIs(t, err, matrix.ErrAsymmetry)
}
