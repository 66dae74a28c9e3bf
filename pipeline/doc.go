// SPDX-License-Identifier: MIT

// Package pipeline runs OR-SSA end to end:
//
//	Decompose → Contributions + W-correlation → Select → Assemble
//
// Config is an immutable value validated per call; nothing is clamped. A
// Runner carries the pluggable collaborators (SVD backend, ip solver,
// logger) and is safe for concurrent use as long as they are.
//
// Degenerate input (rank 0) is a valid terminal state: the selection is
// empty with status NOT_SOLVED and the reconstruction is all zeros.
package pipeline
