// Package records defines the canonical row representation shared by the
// parser, transform, and load stages.
package records

import (
	"fmt"
	"strconv"
	"time"
)

// Record is a single row keyed by column name. Values are nil, string, int,
// float64, bool, or time.Time depending on how far through the pipeline the
// row has traveled.
type Record map[string]any

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// AsString converts common cell types to their canonical string form without
// the overhead of fmt.Sprint; uncommon types fall back to fmt.Sprint.
// nil converts to the empty string.
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(t)
	}
}
