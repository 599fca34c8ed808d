package transform

import (
	"time"

	"dwetl/internal/table"
)

// timestampLayouts are tried in order when parsing raw timestamp cells. The
// raw extracts mostly use ISO forms with and without a time component.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// parseTimestamp parses a raw cell as a timestamp. It accepts time.Time
// values produced upstream as-is and tries each known layout for strings.
// Anything else, including unparseable strings and nil, reports ok=false.
func parseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// normalizeDate strips the time-of-day component, leaving midnight UTC of the
// same calendar day.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dateKey is the canonical map key for a calendar day.
func dateKey(t time.Time) string { return t.Format("2006-01-02") }

// dateIDOf resolves a raw timestamp cell against the calendar's date→id map.
// Unparseable or unmatched timestamps yield nil (a null date key).
func dateIDOf(v any, calendar map[string]int) any {
	ts, ok := parseTimestamp(v)
	if !ok {
		return nil
	}
	if id, ok := calendar[dateKey(normalizeDate(ts))]; ok {
		return id
	}
	return nil
}

// timeOf formats a raw timestamp cell as an HH:MM:SS time-of-day string.
// Unparseable or missing timestamps format as "00:00:00".
func timeOf(v any) string {
	ts, ok := parseTimestamp(v)
	if !ok {
		return "00:00:00"
	}
	return ts.Format("15:04:05")
}

// calendarIndex builds the date→surrogate-id lookup facts resolve against.
func calendarIndex(calendar table.Table) map[string]int {
	idx := make(map[string]int, calendar.Len())
	for _, r := range calendar.Rows {
		d, ok := r["date"].(time.Time)
		if !ok {
			continue
		}
		if id, ok := r["id"].(int); ok {
			idx[dateKey(d)] = id
		}
	}
	return idx
}
