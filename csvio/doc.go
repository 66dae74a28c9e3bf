// SPDX-License-Identifier: MIT

// Package csvio loads and saves numeric columns as delimited text over an
// afero.Fs, so callers and tests can swap the OS filesystem for an
// in-memory one.
//
// Reading is lenient: a row may use ',', ';' or '\t' (mixed freely), blank
// rows and rows whose selected field is not a finite number are skipped.
// Writing uses ',' and the shortest round-trip float formatting.
package csvio
