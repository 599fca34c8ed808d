package transform

import (
	"dwetl/internal/table"
	"dwetl/pkg/records"
)

// assignSurrogateKey sorts t ascending by sortKey (stable, so ties keep their
// original relative order), writes idField as the 1-based rank, and reorders
// columns to [idField, sortKey, remaining columns in original order]. The
// input table is not mutated. Given identical input the mapping from natural
// key to surrogate id is fully deterministic.
func assignSurrogateKey(t table.Table, sortKey, idField string) table.Table {
	sorted := t.SortBy(sortKey)

	rows := make([]records.Record, len(sorted.Rows))
	for i, r := range sorted.Rows {
		nr := r.Clone()
		nr[idField] = i + 1
		rows[i] = nr
	}

	cols := make([]string, 0, len(t.Cols)+1)
	cols = append(cols, idField, sortKey)
	for _, c := range t.Cols {
		if c != idField && c != sortKey {
			cols = append(cols, c)
		}
	}
	return table.New(cols, rows)
}
