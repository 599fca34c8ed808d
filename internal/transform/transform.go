// Package transform is the core of the pipeline: it reshapes the raw
// operational tables into a star schema. Dimensions get dense, deterministic
// surrogate keys; facts resolve their foreign keys against the dimensions
// (primarily the synthesized calendar) with explicit sentinel and null
// policies for anything unresolvable.
//
// Every builder is a pure function over immutable in-memory tables. The run
// is all-or-nothing: the first builder error aborts the whole transformation
// and no partial output set is ever returned.
package transform

import (
	"fmt"
	"log"
	"time"

	"dwetl/internal/metrics"
	"dwetl/internal/table"
)

// OutputOrder lists the produced tables in their canonical build and write
// order: the calendar first (facts depend on it), then the remaining
// dimensions, then the facts.
var OutputOrder = []string{
	"dim_calendar",
	"dim_customer",
	"dim_product",
	"dim_channel",
	"dim_address",
	"dim_store",
	"fact_sales_order",
	"fact_sales_order_item",
	"fact_payment",
	"fact_shipment",
	"fact_web_session",
	"fact_nps_response",
}

// All runs every dimension and fact builder in dependency order and returns
// the complete output set keyed by table name. job labels the run for
// metrics.
func All(job string, raw map[string]table.Table) (map[string]table.Table, error) {
	out := make(map[string]table.Table, len(OutputOrder))

	start := time.Now()
	calendar := buildCalendar(raw)
	metrics.RecordStep(job, "dim_calendar", nil, time.Since(start))
	log.Printf("transform: table=dim_calendar rows=%d", calendar.Len())
	out["dim_calendar"] = calendar
	if calendar.Len() == 0 {
		log.Printf("transform: dim_calendar is empty, date keys in fact tables will be null")
	}

	dims := []struct {
		name  string
		build func(map[string]table.Table) (table.Table, error)
	}{
		{"dim_customer", buildDimCustomer},
		{"dim_product", buildDimProduct},
		{"dim_channel", buildDimChannel},
		{"dim_address", buildDimAddress},
		{"dim_store", buildDimStore},
	}
	for _, d := range dims {
		t, err := runStep(job, d.name, func() (table.Table, error) { return d.build(raw) })
		if err != nil {
			return nil, err
		}
		out[d.name] = t
	}

	facts := []struct {
		name  string
		build func(map[string]table.Table, table.Table) (table.Table, error)
	}{
		{"fact_sales_order", buildFactSalesOrder},
		{"fact_sales_order_item", buildFactSalesOrderItem},
		{"fact_payment", buildFactPayment},
		{"fact_shipment", buildFactShipment},
		{"fact_web_session", buildFactWebSession},
		{"fact_nps_response", buildFactNPSResponse},
	}
	for _, f := range facts {
		t, err := runStep(job, f.name, func() (table.Table, error) { return f.build(raw, calendar) })
		if err != nil {
			return nil, err
		}
		out[f.name] = t
	}

	return out, nil
}

// runStep executes one builder with timing, metrics, and error wrapping. The
// wrapped error names the failing step so an aborted run is attributable.
func runStep(job, name string, build func() (table.Table, error)) (table.Table, error) {
	start := time.Now()
	t, err := build()
	metrics.RecordStep(job, name, err, time.Since(start))
	if err != nil {
		return table.Table{}, fmt.Errorf("build %s: %w", name, err)
	}
	log.Printf("transform: table=%s rows=%d", name, t.Len())
	return t, nil
}
