// Package table implements the minimal in-memory table abstraction the
// transform stage is built on: an ordered column list plus a sequence of
// records. Joins and group-bys are expressed with Index and SortBy rather
// than a dataframe library; the star-schema builders hand-write their joins
// over these primitives.
package table

import (
	"sort"
	"time"

	"dwetl/pkg/records"
)

// Table is an ordered sequence of records with a shared schema. Cols fixes
// the column order for output; Rows hold the data. A Table is treated as an
// immutable snapshot once produced.
type Table struct {
	Cols []string
	Rows []records.Record
}

// New returns a Table with the given column order and rows.
func New(cols []string, rows []records.Record) Table {
	return Table{Cols: cols, Rows: rows}
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// HasCol reports whether the table's schema contains col.
func (t Table) HasCol(col string) bool {
	for _, c := range t.Cols {
		if c == col {
			return true
		}
	}
	return false
}

// Index builds a lookup from the canonical string form of col's value to the
// first row holding it. Rows with a nil key are excluded. Keying on the
// string form makes joins tolerant of int/string drift between raw tables
// (the raw extracts are not consistent about quoting numeric ids).
func (t Table) Index(col string) map[string]records.Record {
	idx := make(map[string]records.Record, len(t.Rows))
	for _, r := range t.Rows {
		v := r[col]
		if v == nil {
			continue
		}
		k := records.AsString(v)
		if _, ok := idx[k]; !ok {
			idx[k] = r
		}
	}
	return idx
}

// SortBy stable-sorts rows ascending by col and returns a new Table sharing
// the same column order. Ties keep their original relative order; nil sorts
// before any non-nil value.
func (t Table) SortBy(col string) Table {
	rows := make([]records.Record, len(t.Rows))
	copy(rows, t.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return Compare(rows[i][col], rows[j][col]) < 0
	})
	return Table{Cols: t.Cols, Rows: rows}
}

// Compare orders two cell values. nil < everything else; numbers compare
// numerically (int and float64 interchangeably), times chronologically, and
// everything else by canonical string form.
func Compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if x, ok := asFloat(a); ok {
		if y, ok := asFloat(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	}
	if x, ok := a.(time.Time); ok {
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	sa, sb := records.AsString(a), records.AsString(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}
