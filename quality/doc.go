// SPDX-License-Identifier: MIT

// Package quality scores a reconstruction against a reference series.
//
//   - MSE, RMSE, MaxAbs: pointwise error of equal-length series.
//   - SNR: 10·log10(Σ ref² / Σ (ref−est)²) in dB; +Inf for an exact match.
//   - DTW: Dynamic Time Warping distance with an optional Sakoe–Chiba band,
//     computed with two rolling rows (O(min(n,m)) memory). Useful when a
//     reconstruction is phase-shifted against the reference.
package quality
