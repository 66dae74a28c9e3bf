// SPDX-License-Identifier: MIT

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/orssa/pipeline"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
)

// SnapshotVersion is bumped when the snapshot layout changes.
const SnapshotVersion = 1

var (
	// ErrNilResult is returned when a snapshot has no result to store.
	ErrNilResult = errors.New("store: nil result")
	// ErrSnapshotVersion is returned for snapshots written by another layout.
	ErrSnapshotVersion = errors.New("store: unsupported snapshot version")
)

// Snapshot is one persisted pipeline run.
type Snapshot struct {
	Version   int              `json:"version"`
	ID        uuid.UUID        `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Source    string           `json:"source,omitempty"`
	Config    pipeline.Config  `json:"config"`
	Result    *pipeline.Result `json:"result"`
}

// NewSnapshot stamps res with a fresh ID and the current UTC time.
func NewSnapshot(source string, cfg pipeline.Config, res *pipeline.Result) Snapshot {
	return Snapshot{
		Version:   SnapshotVersion,
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Source:    source,
		Config:    cfg,
		Result:    res,
	}
}

// Encode writes s to w as zstd-compressed JSON.
func Encode(w io.Writer, s Snapshot) error {
	if s.Result == nil {
		return ErrNilResult
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("store: zstd writer: %w", err)
	}
	if err = json.NewEncoder(enc).Encode(s); err != nil {
		enc.Close()
		return fmt.Errorf("store: encode snapshot: %w", err)
	}

	return enc.Close()
}

// Decode reads a snapshot written by Encode.
func Decode(r io.Reader) (*Snapshot, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("store: zstd reader: %w", err)
	}
	defer dec.Close()

	var s Snapshot
	if err = json.NewDecoder(dec).Decode(&s); err != nil {
		return nil, fmt.Errorf("store: decode snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, s.Version)
	}
	if s.Result == nil {
		return nil, ErrNilResult
	}

	return &s, nil
}

// SaveSnapshot writes s to path on fs, truncating an existing file.
func SaveSnapshot(fs afero.Fs, path string, s Snapshot) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("store: create %s: %w", path, err)
	}
	if err = Encode(f, s); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// LoadSnapshot reads a snapshot from path on fs.
func LoadSnapshot(fs afero.Fs, path string) (*Snapshot, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}
