// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/katalvlaran/orssa/bench"
	"github.com/katalvlaran/orssa/store"
	"github.com/spf13/cobra"
)

const rowHeader = "N\tL\tRANK\tDECOMP_S\tBASE_R\tBASE_S\tOR_S\tSOLVER_S\tOBJECTIVE\tSTATUS\tMSE_BASE\tMSE_OR"

func writeRow(w io.Writer, r bench.Row) {
	fmt.Fprintf(w, "%d\t%d\t%d\t%.3f\t%d\t%.3f\t%.3f\t%.3f\t%.5f\t%s\t%.4g\t%.4g\n",
		r.N, r.L, r.Rank, r.DecompSec, r.BaselineR, r.BaselineSec, r.ORSec,
		r.SolverSec, r.Objective, r.Status, r.MSEBaseline, r.MSEOR)
}

func newBenchCmd(a *app) *cobra.Command {
	var (
		start, end, step int
		sameR            bool
		seriesSeed       int64
		history          string
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Sweep N and time baseline SSA against OR-SSA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sweep := bench.Sweep{
				Start:  start,
				End:    end,
				Step:   step,
				Config: a.cfg.pipelineConfig(start),
				SameR:  sameR,
				Seed:   seriesSeed,
			}
			runner, err := a.runner()
			if err != nil {
				return err
			}

			var (
				h     *store.History
				batch = uuid.New()
			)
			if history != "" {
				if h, err = store.OpenHistory(history); err != nil {
					return err
				}
				defer h.Close()
				a.log.Info().Str("db", history).Stringer("batch", batch).Msg("recording history")
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, rowHeader)
			ctx := cmd.Context()
			_, err = bench.Run(ctx, sweep, runner, a.log, func(r bench.Row) error {
				writeRow(tw, r)
				if h == nil {
					return nil
				}
				_, err := h.Record(ctx, batch, r)
				return err
			})
			if ferr := tw.Flush(); err == nil {
				err = ferr
			}

			return err
		},
	}
	f := cmd.Flags()
	f.IntVar(&start, "start", 100, "first N (>= 50)")
	f.IntVar(&end, "end", 1000, "last N")
	f.IntVar(&step, "step", 100, "N increment")
	f.BoolVar(&sameR, "same-r", true, "baseline keeps as many components as OR-SSA (else rmax)")
	f.Int64Var(&seriesSeed, "series-seed", bench.DefaultSeed, "seed of the shared series stream")
	f.StringVar(&history, "history", "", "sqlite database to record rows into")

	cmd.AddCommand(newBenchHistoryCmd())

	return cmd
}

func newBenchHistoryCmd() *cobra.Command {
	var (
		db    string
		limit int
		batch string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded benchmark rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := store.OpenHistory(db)
			if err != nil {
				return err
			}
			defer h.Close()

			var entries []store.Entry
			if batch != "" {
				id, perr := uuid.Parse(batch)
				if perr != nil {
					return fmt.Errorf("bench history: batch: %w", perr)
				}
				entries, err = h.Batch(cmd.Context(), id)
			} else {
				entries, err = h.List(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "BATCH\tRECORDED\t"+rowHeader)
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t", e.Batch.String()[:8], e.CreatedAt.Format("2006-01-02 15:04:05"))
				writeRow(tw, e.Row)
			}

			return tw.Flush()
		},
	}
	f := cmd.Flags()
	f.StringVar(&db, "db", "bench.db", "sqlite database")
	f.IntVar(&limit, "limit", 20, "rows to show, newest first (0 = all)")
	f.StringVar(&batch, "batch", "", "show one sweep by batch UUID")

	return cmd
}
