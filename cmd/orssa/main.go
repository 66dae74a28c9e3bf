// SPDX-License-Identifier: MIT

// Command orssa runs OR-SSA component selection on CSV series, synthetic
// noise experiments and N-sweep benchmarks.
package main

import (
	"os"

	"github.com/spf13/afero"
)

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}
