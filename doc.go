// SPDX-License-Identifier: MIT

// Package orssa is optimization-refined singular spectrum analysis (OR-SSA)
// for one-dimensional series.
//
// Classic SSA embeds a series into a Hankel trajectory matrix, factors it
// with an SVD, turns every rank-one term back into a series by diagonal
// averaging and keeps the r leading ones. OR-SSA replaces the "keep the
// first r" rule with a 0/1 program: maximize the retained energy minus λ
// times the w-correlation of every retained pair, subject to r_min ≤ kept ≤
// r_max and optional pair locks.
//
// Packages:
//
//	matrix/    row-major Dense, validators, Mul/Transpose/Gram, Jacobi eigen
//	svd/       SVD capability: gonum backend and a pure Go Jacobi backend
//	ssa/       embedding, decomposition, elementary reconstruction, metrics, assembly
//	ip/        0/1 integer programming model and solver interface
//	ip/bnb/    time-bounded multi-worker branch-and-bound solver
//	selector/  OR-SSA selection model (energy, redundancy, cardinality, locks)
//	pipeline/  validated end-to-end runner with a top-r baseline comparison
//	quality/   MSE, RMSE, SNR and DTW scores
//	synth/     seeded synthetic series
//	csvio/     CSV column loading and saving over afero
//	store/     zstd run snapshots and sqlite benchmark history
//	plotting/  PNG overlays and contribution spectra
//	bench/     N-sweep timing harness
//	cmd/orssa  command-line front end
//
// Quick start:
//
//	res, err := pipeline.NewRunner().Run(series, pipeline.DefaultConfig(len(series)/2))
//	if err != nil { ... }
//	fmt.Println(res.Selected, res.Selection.Status)
package orssa
