// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/orssa/selector"
)

// ErrInvalidConfig wraps every configuration violation.
var ErrInvalidConfig = errors.New("pipeline: invalid configuration")

// Defaults of the interactive application.
const (
	DefaultRMin      = 2
	DefaultRMax      = 6
	DefaultLambda    = 0.10
	DefaultTimeLimit = 5 * time.Second
	DefaultWorkers   = 8
)

// Config is the per-call OR-SSA configuration.
//   - Window: embedding length L, 2 ≤ L ≤ N−1.
//   - RMin, RMax: bounds on kept components.
//   - Lambda: redundancy weight.
//   - LockAdjacent: lock pairs (0,1), (2,3), … of the decomposition.
//   - TimeLimit, Workers, Seed: solver budget.
type Config struct {
	Window       int           `json:"window" validate:"gte=2"`
	RMin         int           `json:"rmin" validate:"gte=0"`
	RMax         int           `json:"rmax" validate:"gtefield=RMin"`
	Lambda       float64       `json:"lambda" validate:"gte=0"`
	LockAdjacent bool          `json:"lock_adjacent"`
	TimeLimit    time.Duration `json:"time_limit" validate:"gt=0"`
	Workers      int           `json:"workers" validate:"gte=0"`
	Seed         int64         `json:"seed"`
}

// DefaultConfig returns the defaults for a window of length l.
func DefaultConfig(l int) Config {
	return Config{
		Window:       l,
		RMin:         DefaultRMin,
		RMax:         DefaultRMax,
		Lambda:       DefaultLambda,
		LockAdjacent: true,
		TimeLimit:    DefaultTimeLimit,
		Workers:      DefaultWorkers,
	}
}

var validate = validator.New()

// Validate checks c for a series of length n.
func (c Config) Validate(n int) error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: rule '%s' (value: '%v')", e.Field(), e.Tag(), e.Value()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Window > n-1 {
		return fmt.Errorf("%w: Window %d exceeds N-1=%d", ErrInvalidConfig, c.Window, n-1)
	}

	return nil
}

// selectorParams maps the solver part of c.
func (c Config) selectorParams() selector.Params {
	return selector.Params{
		RMin:      c.RMin,
		RMax:      c.RMax,
		Lambda:    c.Lambda,
		TimeLimit: c.TimeLimit,
		Workers:   c.Workers,
		Seed:      c.Seed,
	}
}
