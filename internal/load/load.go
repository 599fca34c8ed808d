// Package load persists the produced tables as flat files: one UTF-8 CSV per
// table in the output directory, header row included, no index column.
// Numeric cells are rendered with strconv, so the decimal separator is always
// '.' regardless of host locale.
//
// Each written file's content is hashed (xxh3) so reruns can be compared for
// byte-identical output without diffing the files.
package load

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"

	"dwetl/internal/table"
	"dwetl/pkg/records"
)

// Result summarizes one written table.
type Result struct {
	Table    string
	Rows     int
	Checksum uint64 // xxh3 of the rendered CSV bytes
}

// WriteTables writes each named table to dir/<name>.csv in the given order.
// The directory is created if needed. Any write error aborts immediately.
func WriteTables(dir string, order []string, tables map[string]table.Table) ([]Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}

	results := make([]Result, 0, len(order))
	for _, name := range order {
		t, ok := tables[name]
		if !ok {
			return nil, fmt.Errorf("load: table %q not in output set", name)
		}
		res, err := writeTable(dir, name, t)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func writeTable(dir, name string, t table.Table) (Result, error) {
	path := filepath.Join(dir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	h := xxh3.New()
	w := csv.NewWriter(newTeeWriter(f, h))

	if err := w.Write(t.Cols); err != nil {
		return Result{}, fmt.Errorf("write %s header: %w", path, err)
	}
	row := make([]string, len(t.Cols))
	for _, r := range t.Rows {
		for i, c := range t.Cols {
			row[i] = records.AsString(r[c])
		}
		if err := w.Write(row); err != nil {
			return Result{}, fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Result{}, fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("close %s: %w", path, err)
	}

	return Result{Table: name, Rows: t.Len(), Checksum: h.Sum64()}, nil
}

// teeWriter duplicates writes into the checksum hasher. Only bytes that
// reached the file are hashed.
type teeWriter struct {
	f *os.File
	h *xxh3.Hasher
}

func newTeeWriter(f *os.File, h *xxh3.Hasher) *teeWriter { return &teeWriter{f: f, h: h} }

func (t *teeWriter) Write(p []byte) (int, error) {
	n, err := t.f.Write(p)
	if n > 0 {
		t.h.Write(p[:n])
	}
	return n, err
}
