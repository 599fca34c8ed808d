package transform

import (
	"math"

	"dwetl/internal/table"
	"dwetl/pkg/records"
)

// fkSentinel marks a foreign key with no resolvable reference. Fact key
// columns never carry nulls; a missing or unparseable key becomes the
// sentinel so the gap is explicit.
const fkSentinel = -1

// fkOf coerces a foreign-key cell to int, substituting the sentinel for
// missing or non-numeric values.
func fkOf(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	}
	return fkSentinel
}

// buildFactSalesOrder maps sales_order rows onto fact_sales_order, resolving
// the order date against the calendar and normalizing address/store keys.
func buildFactSalesOrder(raw map[string]table.Table, calendar table.Table) (table.Table, error) {
	orders, err := sourceTable(raw, "sales_order")
	if err != nil {
		return table.Table{}, err
	}
	dateIDs := calendarIndex(calendar)

	cols := []string{
		"id", "customer_id", "channel_id", "store_id", "order_date_id", "order_time",
		"billing_address_id", "shipping_address_id", "status_order", "currency_code",
		"subtotal", "tax_amount", "shipping_fee", "total_amount",
	}
	rows := make([]records.Record, 0, orders.Len())
	for _, r := range orders.Rows {
		rows = append(rows, records.Record{
			"id":                  r["order_id"],
			"customer_id":         fkOf(r["customer_id"]),
			"channel_id":          fkOf(r["channel_id"]),
			"store_id":            fkOf(r["store_id"]),
			"order_date_id":       dateIDOf(r["order_date"], dateIDs),
			"order_time":          timeOf(r["order_date"]),
			"billing_address_id":  fkOf(r["billing_address_id"]),
			"shipping_address_id": fkOf(r["shipping_address_id"]),
			"status_order":        r["status"],
			"currency_code":       r["currency_code"],
			"subtotal":            r["subtotal"],
			"tax_amount":          r["tax_amount"],
			"shipping_fee":        r["shipping_fee"],
			"total_amount":        r["total_amount"],
		})
	}
	return table.New(cols, rows), nil
}

// buildFactSalesOrderItem joins order items to their parent order to pull
// through customer, channel, store, and the order date, which the item rows
// do not carry themselves.
func buildFactSalesOrderItem(raw map[string]table.Table, calendar table.Table) (table.Table, error) {
	items, err := sourceTable(raw, "sales_order_item")
	if err != nil {
		return table.Table{}, err
	}
	orders, err := sourceTable(raw, "sales_order")
	if err != nil {
		return table.Table{}, err
	}
	orderByID := orders.Index("order_id")
	dateIDs := calendarIndex(calendar)

	cols := []string{
		"id", "order_id", "customer_id", "channel_id", "store_id", "product_id",
		"order_date_id", "quantity", "unit_price", "discount_amount", "line_total",
	}
	rows := make([]records.Record, 0, items.Len())
	for _, r := range items.Rows {
		out := records.Record{
			"id":              r["order_item_id"],
			"order_id":        r["order_id"],
			"product_id":      fkOf(r["product_id"]),
			"quantity":        r["quantity"],
			"unit_price":      r["unit_price"],
			"discount_amount": r["discount_amount"],
			"line_total":      r["line_total"],
		}
		order, _ := lookup(orderByID, r["order_id"])
		out["customer_id"] = fkOf(order["customer_id"])
		out["channel_id"] = fkOf(order["channel_id"])
		out["store_id"] = fkOf(order["store_id"])
		out["order_date_id"] = dateIDOf(order["order_date"], dateIDs)
		rows = append(rows, out)
	}
	return table.New(cols, rows), nil
}

// buildFactPayment joins payments to their order for customer, billing
// address, channel, and store keys.
func buildFactPayment(raw map[string]table.Table, calendar table.Table) (table.Table, error) {
	payments, err := sourceTable(raw, "payment")
	if err != nil {
		return table.Table{}, err
	}
	orders, err := sourceTable(raw, "sales_order")
	if err != nil {
		return table.Table{}, err
	}
	orderByID := orders.Index("order_id")
	dateIDs := calendarIndex(calendar)

	cols := []string{
		"id", "customer_id", "billing_address_id", "channel_id", "store_id",
		"method", "status_payment", "amount", "paid_at_date_id", "paid_at_time",
		"transaction_ref",
	}
	rows := make([]records.Record, 0, payments.Len())
	for _, r := range payments.Rows {
		order, _ := lookup(orderByID, r["order_id"])
		rows = append(rows, records.Record{
			"id":                 r["payment_id"],
			"customer_id":        fkOf(order["customer_id"]),
			"billing_address_id": fkOf(order["billing_address_id"]),
			"channel_id":         fkOf(order["channel_id"]),
			"store_id":           fkOf(order["store_id"]),
			"method":             r["method"],
			"status_payment":     r["status"],
			"amount":             r["amount"],
			"paid_at_date_id":    dateIDOf(r["paid_at"], dateIDs),
			"paid_at_time":       timeOf(r["paid_at"]),
			"transaction_ref":    r["transaction_ref"],
		})
	}
	return table.New(cols, rows), nil
}

// buildFactShipment joins shipments to their order and derives the delivery
// lead time. dias_de_entrega is computed on the raw timestamps, not the
// looked-up date keys, and is nil when either endpoint is missing.
func buildFactShipment(raw map[string]table.Table, calendar table.Table) (table.Table, error) {
	shipments, err := sourceTable(raw, "shipment")
	if err != nil {
		return table.Table{}, err
	}
	orders, err := sourceTable(raw, "sales_order")
	if err != nil {
		return table.Table{}, err
	}
	orderByID := orders.Index("order_id")
	dateIDs := calendarIndex(calendar)

	cols := []string{
		"id", "customer_id", "shipping_address_id", "channel_id", "carrier",
		"shipped_at_date_id", "shipped_at_time",
		"delivered_at_date_id", "delivered_at_time", "tracking_number",
		"dias_de_entrega",
	}
	rows := make([]records.Record, 0, shipments.Len())
	for _, r := range shipments.Rows {
		order, _ := lookup(orderByID, r["order_id"])
		out := records.Record{
			"id":                   r["shipment_id"],
			"customer_id":          fkOf(order["customer_id"]),
			"shipping_address_id":  fkOf(order["shipping_address_id"]),
			"channel_id":           fkOf(order["channel_id"]),
			"carrier":              r["carrier"],
			"shipped_at_date_id":   dateIDOf(r["shipped_at"], dateIDs),
			"shipped_at_time":      timeOf(r["shipped_at"]),
			"delivered_at_date_id": dateIDOf(r["delivered_at"], dateIDs),
			"delivered_at_time":    timeOf(r["delivered_at"]),
			"tracking_number":      r["tracking_number"],
		}
		if shipped, ok := parseTimestamp(r["shipped_at"]); ok {
			if delivered, ok := parseTimestamp(r["delivered_at"]); ok {
				out["dias_de_entrega"] = int(math.Floor(delivered.Sub(shipped).Hours() / 24))
			}
		}
		rows = append(rows, out)
	}
	return table.New(cols, rows), nil
}

// buildFactWebSession maps web sessions onto fact_web_session with start and
// end date keys.
func buildFactWebSession(raw map[string]table.Table, calendar table.Table) (table.Table, error) {
	sessions, err := sourceTable(raw, "web_session")
	if err != nil {
		return table.Table{}, err
	}
	dateIDs := calendarIndex(calendar)

	cols := []string{
		"id", "customer_id", "started_at_date_id", "started_at_time",
		"ended_at_date_id", "ended_at_time", "source", "device",
	}
	rows := make([]records.Record, 0, sessions.Len())
	for _, r := range sessions.Rows {
		rows = append(rows, records.Record{
			"id":                 r["session_id"],
			"customer_id":        fkOf(r["customer_id"]),
			"started_at_date_id": dateIDOf(r["started_at"], dateIDs),
			"started_at_time":    timeOf(r["started_at"]),
			"ended_at_date_id":   dateIDOf(r["ended_at"], dateIDs),
			"ended_at_time":      timeOf(r["ended_at"]),
			"source":             r["source"],
			"device":             r["device"],
		})
	}
	return table.New(cols, rows), nil
}

// buildFactNPSResponse maps NPS survey responses onto fact_nps_response.
func buildFactNPSResponse(raw map[string]table.Table, calendar table.Table) (table.Table, error) {
	responses, err := sourceTable(raw, "nps_response")
	if err != nil {
		return table.Table{}, err
	}
	dateIDs := calendarIndex(calendar)

	cols := []string{
		"id", "customer_id", "channel_id", "responded_at_date_id",
		"responded_at_time", "score",
	}
	rows := make([]records.Record, 0, responses.Len())
	for _, r := range responses.Rows {
		rows = append(rows, records.Record{
			"id":                   r["nps_id"],
			"customer_id":          fkOf(r["customer_id"]),
			"channel_id":           fkOf(r["channel_id"]),
			"responded_at_date_id": dateIDOf(r["responded_at"], dateIDs),
			"responded_at_time":    timeOf(r["responded_at"]),
			"score":                r["score"],
		})
	}
	return table.New(cols, rows), nil
}
