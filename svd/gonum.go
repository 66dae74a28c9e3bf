// SPDX-License-Identifier: MIT

package svd

import (
	"fmt"

	"github.com/katalvlaran/orssa/matrix"
	"gonum.org/v1/gonum/mat"
)

// Gonum factorizes with gonum's thin SVD.
type Gonum struct{}

var _ Factorizer = Gonum{}

// Factorize implements Factorizer.
func (Gonum) Factorize(a matrix.Matrix) (*Factors, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, fmt.Errorf("Gonum.Factorize: %w", err)
	}
	rows, cols := a.Rows(), a.Cols()
	src := mat.NewDense(rows, cols, nil)
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = a.At(i, j); err != nil {
				return nil, fmt.Errorf("Gonum.Factorize: %w", err)
			}
			src.Set(i, j, v)
		}
	}

	var dec mat.SVD
	if ok := dec.Factorize(src, mat.SVDThin); !ok {
		return nil, fmt.Errorf("Gonum.Factorize: %w", ErrFactorizeFailed)
	}

	var u, right mat.Dense
	dec.UTo(&u)
	dec.VTo(&right)

	out := &Factors{Values: dec.Values(nil)}
	if out.U, err = fromGonum(&u); err != nil {
		return nil, fmt.Errorf("Gonum.Factorize: %w", err)
	}
	if out.V, err = fromGonum(&right); err != nil {
		return nil, fmt.Errorf("Gonum.Factorize: %w", err)
	}

	return out, nil
}

// fromGonum copies a gonum matrix into a matrix.Dense.
func fromGonum(m mat.Matrix) (*matrix.Dense, error) {
	r, c := m.Dims()
	data := make([]float64, 0, r*c)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			data = append(data, m.At(i, j))
		}
	}

	return matrix.NewDenseFrom(r, c, data)
}
