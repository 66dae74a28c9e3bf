// SPDX-License-Identifier: MIT

// Package store persists OR-SSA outputs.
//
//   - Snapshots: one pipeline run (config + result) as zstd-compressed JSON,
//     written through an afero.Fs. Each snapshot carries a random UUID and a
//     UTC timestamp.
//   - History: an sqlite database of benchmark rows, grouped by a batch UUID
//     per sweep (pure-Go driver, no cgo).
package store
