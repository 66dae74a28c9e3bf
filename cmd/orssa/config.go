// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/orssa/bench"
	"github.com/katalvlaran/orssa/pipeline"
	"github.com/katalvlaran/orssa/svd"
)

const (
	configName = ".orssa"
	envPrefix  = "ORSSA"
)

// Config keys shared by viper, flags, env (ORSSA_<KEY>) and the YAML file.
const (
	keyWindow       = "window"
	keyRMin         = "rmin"
	keyRMax         = "rmax"
	keyLambda       = "lambda"
	keyLockAdjacent = "lock_adjacent"
	keyTimeLimit    = "time_limit"
	keyWorkers      = "workers"
	keySeed         = "seed"
	keySolver       = "solver"
	keySVD          = "svd"
	keyColumn       = "column"
	keyVerbose      = "verbose"
)

const solverBnB = "bnb"

// AppConfig is the merged CLI configuration. TimeLimit is in seconds.
type AppConfig struct {
	Window       int     `mapstructure:"window" yaml:"window" validate:"gte=0"`
	RMin         int     `mapstructure:"rmin" yaml:"rmin" validate:"gte=0"`
	RMax         int     `mapstructure:"rmax" yaml:"rmax" validate:"gtefield=RMin"`
	Lambda       float64 `mapstructure:"lambda" yaml:"lambda" validate:"gte=0"`
	LockAdjacent bool    `mapstructure:"lock_adjacent" yaml:"lock_adjacent"`
	TimeLimit    float64 `mapstructure:"time_limit" yaml:"time_limit" validate:"gt=0"`
	Workers      int     `mapstructure:"workers" yaml:"workers" validate:"gte=0"`
	Seed         int64   `mapstructure:"seed" yaml:"seed"`
	Solver       string  `mapstructure:"solver" yaml:"solver" validate:"oneof=bnb"`
	SVD          string  `mapstructure:"svd" yaml:"svd" validate:"oneof=gonum jacobi"`
	Column       int     `mapstructure:"column" yaml:"column" validate:"gte=0"`
	Verbose      bool    `mapstructure:"verbose" yaml:"verbose"`
}

// DefaultAppConfig mirrors the defaults of the interactive application.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		RMin:         pipeline.DefaultRMin,
		RMax:         pipeline.DefaultRMax,
		Lambda:       pipeline.DefaultLambda,
		LockAdjacent: true,
		TimeLimit:    pipeline.DefaultTimeLimit.Seconds(),
		Workers:      pipeline.DefaultWorkers,
		Solver:       solverBnB,
		SVD:          svd.NameGonum,
	}
}

// validate caches struct info across calls.
var validate = validator.New()

func validateAppConfig(c *AppConfig) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: rule '%s' (value: '%v')", e.Field(), e.Tag(), e.Value()))
	}

	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// pipelineConfig maps c to the core configuration for a series of length n.
// Window 0 means N/2 clamped to [2, N−1].
func (c AppConfig) pipelineConfig(n int) pipeline.Config {
	l := c.Window
	if l == 0 {
		l = bench.Window(n)
	}

	return pipeline.Config{
		Window:       l,
		RMin:         c.RMin,
		RMax:         c.RMax,
		Lambda:       c.Lambda,
		LockAdjacent: c.LockAdjacent,
		TimeLimit:    time.Duration(c.TimeLimit * float64(time.Second)),
		Workers:      c.Workers,
		Seed:         c.Seed,
	}
}
