// SPDX-License-Identifier: MIT

package quality

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmpty indicates an empty input series.
	ErrEmpty = errors.New("quality: empty series")

	// ErrLengthMismatch indicates pointwise metrics on series of different length.
	ErrLengthMismatch = errors.New("quality: length mismatch")
)

// residual returns ref − est after shape checks.
func residual(ref, est []float64) ([]float64, error) {
	if len(ref) == 0 || len(est) == 0 {
		return nil, ErrEmpty
	}
	if len(ref) != len(est) {
		return nil, ErrLengthMismatch
	}
	d := make([]float64, len(ref))
	floats.SubTo(d, ref, est)

	return d, nil
}

// MSE returns mean((ref − est)²).
func MSE(ref, est []float64) (float64, error) {
	d, err := residual(ref, est)
	if err != nil {
		return 0, err
	}

	return floats.Dot(d, d) / float64(len(d)), nil
}

// RMSE returns √MSE.
func RMSE(ref, est []float64) (float64, error) {
	mse, err := MSE(ref, est)
	if err != nil {
		return 0, err
	}

	return math.Sqrt(mse), nil
}

// MaxAbs returns max |ref − est|.
func MaxAbs(ref, est []float64) (float64, error) {
	d, err := residual(ref, est)
	if err != nil {
		return 0, err
	}

	return floats.Norm(d, math.Inf(1)), nil
}

// SNR returns the signal-to-noise ratio of est against ref in decibels.
// An exact match gives +Inf; a zero reference with non-zero error gives -Inf.
func SNR(ref, est []float64) (float64, error) {
	d, err := residual(ref, est)
	if err != nil {
		return 0, err
	}
	noise := floats.Dot(d, d)
	signal := floats.Dot(ref, ref)
	if noise == 0 {
		return math.Inf(1), nil
	}
	if signal == 0 {
		return math.Inf(-1), nil
	}

	return 10 * math.Log10(signal/noise), nil
}

// DTW returns the Dynamic Time Warping distance between a and b with cost
// |a_i − b_j|. window > 0 restricts matches to |i−j| ≤ window; window ≤ 0
// means unconstrained. A band narrower than |len(a)−len(b)| gives +Inf.
//
// Recurrence: D[i][j] = |a[i-1]−b[j-1]| + min(D[i-1][j], D[i][j-1], D[i-1][j-1]).
// Complexity: O(n·m) time, O(m) memory.
func DTW(a, b []float64, window int) (float64, error) {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0, ErrEmpty
	}
	band := math.MaxInt32
	if window > 0 {
		band = window
	}

	inf := math.Inf(1)
	prev := make([]float64, m+1)
	curr := make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = inf
	}

	var i, j int
	for i = 1; i <= n; i++ {
		curr[0] = inf
		for j = 1; j <= m; j++ {
			if absInt(i-j) > band {
				curr[j] = inf
				continue
			}
			curr[j] = math.Abs(a[i-1]-b[j-1]) + min(prev[j], curr[j-1], prev[j-1])
		}
		prev, curr = curr, prev
	}

	return prev[m], nil
}

// absInt returns |x|.
func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
