// SPDX-License-Identifier: MIT

package store_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/orssa/bench"
	"github.com/katalvlaran/orssa/pipeline"
	"github.com/katalvlaran/orssa/store"
	"github.com/katalvlaran/orssa/synth"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runOnce(t *testing.T) (pipeline.Config, *pipeline.Result) {
	t.Helper()
	series := synth.SineTrend(120, 1)
	cfg := pipeline.DefaultConfig(40)
	cfg.RMax = 4
	cfg.Workers = 2
	res, err := pipeline.NewRunner().Run(series, cfg)
	require.NoError(t, err)

	return cfg, res
}

func TestSnapshot_RoundTrip(t *testing.T) {
	cfg, res := runOnce(t)
	fs := afero.NewMemMapFs()
	snap := store.NewSnapshot("sine.csv", cfg, res)
	require.NotEqual(t, uuid.Nil, snap.ID)

	require.NoError(t, store.SaveSnapshot(fs, "/runs/a.zst", snap))
	got, err := store.LoadSnapshot(fs, "/runs/a.zst")
	require.NoError(t, err)

	assert.Equal(t, snap.ID, got.ID)
	assert.True(t, snap.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, "sine.csv", got.Source)
	assert.Equal(t, cfg, got.Config)
	assert.Equal(t, res.Selected, got.Result.Selected)
	assert.Equal(t, res.Selection.Status, got.Result.Selection.Status)
	assert.Equal(t, res.Selection.Keep, got.Result.Selection.Keep)
	assert.InDeltaSlice(t, res.Reconstruction, got.Result.Reconstruction, 0)
	assert.Equal(t, res.Timings, got.Result.Timings)
}

func TestSnapshot_IsCompressed(t *testing.T) {
	cfg, res := runOnce(t)
	var buf bytes.Buffer
	require.NoError(t, store.Encode(&buf, store.NewSnapshot("", cfg, res)))
	// zstd frame magic.
	assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, buf.Bytes()[:4])
}

func TestSnapshot_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, store.Encode(&buf, store.Snapshot{}), store.ErrNilResult)

	_, err := store.Decode(bytes.NewReader([]byte("not zstd")))
	assert.Error(t, err)

	_, err = store.LoadSnapshot(afero.NewMemMapFs(), "/nope.zst")
	assert.Error(t, err)

	cfg, res := runOnce(t)
	snap := store.NewSnapshot("", cfg, res)
	snap.Version = 99
	buf.Reset()
	require.NoError(t, store.Encode(&buf, snap))
	_, err = store.Decode(&buf)
	assert.ErrorIs(t, err, store.ErrSnapshotVersion)
}

func TestHistory_RecordListBatch(t *testing.T) {
	h, err := store.OpenHistory(filepath.Join(t.TempDir(), "bench.db"))
	require.NoError(t, err)
	defer h.Close()

	ctx := context.Background()
	b1, b2 := uuid.New(), uuid.New()
	for _, n := range []int{100, 200} {
		_, err = h.Record(ctx, b1, bench.Row{N: n, L: n / 2, Rank: 10, Status: "OPTIMAL", Objective: 0.5})
		require.NoError(t, err)
	}
	id, err := h.Record(ctx, b2, bench.Row{N: 300, Status: "FEASIBLE", MSEOR: 0.25})
	require.NoError(t, err)

	all, err := h.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, id, all[0].ID)
	assert.Equal(t, 300, all[0].Row.N)
	assert.Equal(t, 0.25, all[0].Row.MSEOR)
	assert.WithinDuration(t, time.Now(), all[0].CreatedAt, time.Minute)

	top, err := h.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)

	batch, err := h.Batch(ctx, b1)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, 100, batch[0].Row.N)
	assert.Equal(t, 200, batch[1].Row.N)
	assert.Equal(t, "OPTIMAL", batch[1].Row.Status)
	assert.Equal(t, b1, batch[0].Batch)
}

func TestHistory_Memory(t *testing.T) {
	h, err := store.OpenHistory(":memory:")
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Record(context.Background(), uuid.New(), bench.Row{N: 50})
	require.NoError(t, err)
	rows, err := h.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
