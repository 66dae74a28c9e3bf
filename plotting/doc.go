// SPDX-License-Identifier: MIT

// Package plotting renders PNG charts of OR-SSA results with gonum/plot:
// an overlay of the input and its reconstructions, and the contribution
// spectrum with the selected components highlighted.
//
// Output goes through an afero.Fs so callers can render into memory.
package plotting
