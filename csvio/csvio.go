// SPDX-License-Identifier: MIT

package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

var (
	// ErrNoData is returned when no numeric value was parsed.
	ErrNoData = errors.New("csvio: no numeric data parsed")
	// ErrBadColumn is returned for a negative column index.
	ErrBadColumn = errors.New("csvio: column index must be >= 0")
	// ErrRaggedColumns is returned when SaveTable columns differ in length.
	ErrRaggedColumns = errors.New("csvio: columns differ in length")
)

// isDelim reports whether r separates fields.
func isDelim(r rune) bool { return r == ',' || r == ';' || r == '\t' }

// field returns the col-th field of line (empty fields count) and whether it
// exists.
func field(line string, col int) (string, bool) {
	idx := 0
	start := 0
	for i, r := range line {
		if !isDelim(r) {
			continue
		}
		if idx == col {
			return line[start:i], true
		}
		idx++
		start = i + 1
	}
	if idx == col {
		return line[start:], true
	}

	return "", false
}

// ReadColumn parses column col of every row of r.
//
// Errors: ErrBadColumn, ErrNoData, or the underlying read error.
func ReadColumn(r io.Reader, col int) ([]float64, error) {
	if col < 0 {
		return nil, ErrBadColumn
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		out  []float64
		line string
		tok  string
		ok   bool
		v    float64
		err  error
	)
	for sc.Scan() {
		line = strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if tok, ok = field(line, col); !ok {
			continue
		}
		if v, err = strconv.ParseFloat(strings.TrimSpace(tok), 64); err != nil {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("csvio: read: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}

	return out, nil
}

// LoadColumn opens path on fs and reads column col (see ReadColumn).
func LoadColumn(fs afero.Fs, path string, col int) ([]float64, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvio: open %s: %w", path, err)
	}
	defer f.Close()

	vals, err := ReadColumn(f, col)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return vals, nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// SaveArray writes one value per line.
func SaveArray(fs afero.Fs, path string, arr []float64) error {
	rows := make([][]float64, len(arr))
	for i, v := range arr {
		rows[i] = []float64{v}
	}

	return writeRows(fs, path, nil, rows)
}

// SaveMatrix writes each row as comma-separated values.
func SaveMatrix(fs afero.Fs, path string, rows [][]float64) error {
	return writeRows(fs, path, nil, rows)
}

// SaveTable writes equal-length columns side by side under an optional
// header row.
//
// Errors: ErrRaggedColumns when columns differ in length or the header
// does not name every column.
func SaveTable(fs afero.Fs, path string, header []string, cols ...[]float64) error {
	if len(header) > 0 && len(header) != len(cols) {
		return ErrRaggedColumns
	}
	n := 0
	if len(cols) > 0 {
		n = len(cols[0])
	}
	for _, c := range cols {
		if len(c) != n {
			return ErrRaggedColumns
		}
	}
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, len(cols))
		for j, c := range cols {
			rows[i][j] = c[i]
		}
	}

	return writeRows(fs, path, header, rows)
}

// writeRows creates path (truncating) and writes rows through encoding/csv.
func writeRows(fs afero.Fs, path string, header []string, rows [][]float64) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("csvio: create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if len(header) > 0 {
		if err = w.Write(header); err != nil {
			f.Close()
			return fmt.Errorf("csvio: write %s: %w", path, err)
		}
	}
	rec := make([]string, 0, 8)
	for _, row := range rows {
		rec = rec[:0]
		for _, v := range row {
			rec = append(rec, formatFloat(v))
		}
		if err = w.Write(rec); err != nil {
			f.Close()
			return fmt.Errorf("csvio: write %s: %w", path, err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("csvio: flush %s: %w", path, err)
	}

	return f.Close()
}
