package transform

import (
	"log"
	"time"

	"dwetl/internal/table"
	"dwetl/pkg/records"
)

// calendarCols fixes dim_calendar's output schema, preserved even when the
// dimension comes out empty.
var calendarCols = []string{
	"id", "date", "day", "month", "year", "day_name", "month_name",
	"quarter", "week_number", "year_month", "is_weekend",
}

// timestampSource names one raw (table, column) pair scanned for dates.
type timestampSource struct {
	Table  string
	Column string
}

// calendarSources are every raw timestamp the business timeline is derived
// from. Absent tables or columns are skipped silently.
var calendarSources = []timestampSource{
	{"sales_order", "order_date"},
	{"web_session", "started_at"},
	{"nps_response", "responded_at"},
	{"payment", "paid_at"},
	{"shipment", "shipped_at"},
	{"shipment", "delivered_at"},
	{"customer", "created_at"},
	{"address", "created_at"},
	{"product", "created_at"},
}

// buildCalendar scans the configured timestamp sources, derives the global
// date span, and materializes one row per calendar day from the minimum to
// the maximum observed date inclusive. Days with no transactions still get a
// row so the calendar can back density and gap analytics.
//
// When no source yields a single valid timestamp the dimension is returned
// empty with its schema intact; every date foreign key downstream then
// degrades to null. That is a recoverable condition, not a failure.
func buildCalendar(raw map[string]table.Table) table.Table {
	var minDate, maxDate time.Time
	seen := false

	for _, src := range calendarSources {
		t, ok := raw[src.Table]
		if !ok || !t.HasCol(src.Column) {
			continue
		}
		for _, r := range t.Rows {
			ts, ok := parseTimestamp(r[src.Column])
			if !ok {
				continue
			}
			d := normalizeDate(ts)
			if !seen {
				minDate, maxDate = d, d
				seen = true
				continue
			}
			if d.Before(minDate) {
				minDate = d
			}
			if d.After(maxDate) {
				maxDate = d
			}
		}
	}

	if !seen {
		log.Printf("transform: warning: no valid timestamps found, dim_calendar will be empty")
		return table.New(calendarCols, nil)
	}

	var rows []records.Record
	id := 1
	for d := minDate; !d.After(maxDate); d = d.AddDate(0, 0, 1) {
		_, week := d.ISOWeek()
		wd := d.Weekday()
		rows = append(rows, records.Record{
			"id":          id,
			"date":        d,
			"day":         d.Day(),
			"month":       int(d.Month()),
			"year":        d.Year(),
			"day_name":    wd.String(),
			"month_name":  d.Month().String(),
			"quarter":     (int(d.Month())-1)/3 + 1,
			"week_number": week,
			"year_month":  d.Format("2006-01"),
			"is_weekend":  wd == time.Saturday || wd == time.Sunday,
		})
		id++
	}
	return table.New(calendarCols, rows)
}
