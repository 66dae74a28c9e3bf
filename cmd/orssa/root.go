// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/katalvlaran/orssa/ip/bnb"
	"github.com/katalvlaran/orssa/pipeline"
	"github.com/katalvlaran/orssa/svd"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	fs  afero.Fs
	v   *viper.Viper
	cfg AppConfig
	log zerolog.Logger
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs, v: viper.New(), log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "orssa",
		Short: "Optimization-refined singular spectrum analysis",
		Long: `orssa decomposes a series with SSA and picks the components to keep by
solving a 0/1 program that rewards energy and penalizes redundancy.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	d := DefaultAppConfig()
	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "config file (default is ./.orssa.yaml or $HOME/.orssa.yaml)")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.Int("window", d.Window, "window length L (0 = N/2)")
	pf.Int("rmin", d.RMin, "minimum number of kept components")
	pf.Int("rmax", d.RMax, "maximum number of kept components")
	pf.Float64("lambda", d.Lambda, "redundancy penalty weight")
	pf.Bool("lock-adjacent", d.LockAdjacent, "keep components (0,1), (2,3), ... together")
	pf.Float64("time-limit", d.TimeLimit, "solver time limit in seconds")
	pf.Int("workers", d.Workers, "solver workers (0 = one)")
	pf.Int64("seed", d.Seed, "solver seed")
	pf.String("solver", d.Solver, "integer solver backend (bnb)")
	pf.String("svd", d.SVD, "SVD backend (gonum, jacobi)")
	pf.Int("column", d.Column, "CSV column to read")

	for key, flag := range map[string]string{
		"config":        "config",
		keyVerbose:      "verbose",
		keyWindow:       "window",
		keyRMin:         "rmin",
		keyRMax:         "rmax",
		keyLambda:       "lambda",
		keyLockAdjacent: "lock-adjacent",
		keyTimeLimit:    "time-limit",
		keyWorkers:      "workers",
		keySeed:         "seed",
		keySolver:       "solver",
		keySVD:          "svd",
		keyColumn:       "column",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newRunCmd(a),
		newNoiseCmd(a),
		newGenerateCmd(a),
		newBenchCmd(a),
		newConfigCmd(a),
	)

	return root
}

// load merges .env, environment, config file, flags and defaults into
// a.cfg, validates it and sets up the logger.
func (a *app) load(cmd *cobra.Command) error {
	// A missing .env is fine.
	_ = godotenv.Load()

	v := a.v
	v.SetFs(a.fs)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	d := DefaultAppConfig()
	v.SetDefault(keyWindow, d.Window)
	v.SetDefault(keyRMin, d.RMin)
	v.SetDefault(keyRMax, d.RMax)
	v.SetDefault(keyLambda, d.Lambda)
	v.SetDefault(keyLockAdjacent, d.LockAdjacent)
	v.SetDefault(keyTimeLimit, d.TimeLimit)
	v.SetDefault(keyWorkers, d.Workers)
	v.SetDefault(keySeed, d.Seed)
	v.SetDefault(keySolver, d.Solver)
	v.SetDefault(keySVD, d.SVD)
	v.SetDefault(keyColumn, d.Column)
	v.SetDefault(keyVerbose, d.Verbose)

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	a.cfg = AppConfig{}
	if err := v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validateAppConfig(&a.cfg); err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if a.cfg.Verbose {
		level = zerolog.DebugLevel
	}
	out := cmd.ErrOrStderr()
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: !isTerminal(out)}).
		Level(level).With().Timestamp().Logger()
	if used := v.ConfigFileUsed(); used != "" {
		a.log.Debug().Str("file", used).Msg("config loaded")
	}

	return nil
}

// runner builds a pipeline.Runner from the merged configuration.
func (a *app) runner() (*pipeline.Runner, error) {
	f, err := svd.ByName(a.cfg.SVD)
	if err != nil {
		return nil, err
	}

	return pipeline.NewRunner(
		pipeline.WithFactorizer(f),
		pipeline.WithSolver(bnb.New()),
		pipeline.WithLogger(a.log),
	), nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}
