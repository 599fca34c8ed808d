// Package schema declares the column contracts for the thirteen raw tables
// the pipeline consumes. A contract names each column the transform stage
// references, its extraction-time type, and whether its absence is fatal.
package schema

import "fmt"

// Field describes one raw column.
type Field struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // "int" | "float" | "text" | "timestamp"
	Required bool   `json:"required,omitempty"`
}

// Contract describes one raw table.
type Contract struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// MissingSourceError reports a required raw table or column that is absent.
// Per the pipeline's error model this is fatal for the whole run.
type MissingSourceError struct {
	Table  string
	Column string // empty when the whole table is missing
}

func (e MissingSourceError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("missing source table %q", e.Table)
	}
	return fmt.Sprintf("missing required column %q in source table %q", e.Column, e.Table)
}

// TableNames lists the raw tables in extraction order. Each corresponds to a
// <name>.csv file in the raw directory.
var TableNames = []string{
	"address", "channel", "customer", "nps_response", "payment",
	"product", "product_category", "province", "sales_order",
	"sales_order_item", "shipment", "store", "web_session",
}

func f(name, typ string) Field { return Field{Name: name, Type: typ, Required: true} }

// Contracts maps raw table name to its contract. Columns not listed here are
// carried through extraction untouched but are never consulted downstream.
var Contracts = map[string]Contract{
	"address": {Name: "address", Fields: []Field{
		f("address_id", "int"), f("province_id", "int"),
		f("line1", "text"), f("line2", "text"), f("city", "text"),
		f("postal_code", "text"), f("country_code", "text"),
		f("created_at", "timestamp"),
	}},
	"channel": {Name: "channel", Fields: []Field{
		f("channel_id", "int"), f("code", "text"), f("name", "text"),
	}},
	"customer": {Name: "customer", Fields: []Field{
		f("customer_id", "int"), f("email", "text"), f("first_name", "text"),
		f("last_name", "text"), f("phone", "text"), f("status", "text"),
		f("created_at", "timestamp"),
	}},
	"nps_response": {Name: "nps_response", Fields: []Field{
		f("nps_id", "int"), f("customer_id", "int"), f("channel_id", "int"),
		f("responded_at", "timestamp"), f("score", "int"),
	}},
	"payment": {Name: "payment", Fields: []Field{
		f("payment_id", "int"), f("order_id", "int"), f("method", "text"),
		f("status", "text"), f("amount", "float"), f("paid_at", "timestamp"),
		f("transaction_ref", "text"),
	}},
	"product": {Name: "product", Fields: []Field{
		f("product_id", "int"), f("category_id", "int"), f("sku", "text"),
		f("name", "text"), f("list_price", "float"), f("status", "text"),
		f("created_at", "timestamp"),
	}},
	"product_category": {Name: "product_category", Fields: []Field{
		f("category_id", "int"), f("parent_id", "int"), f("name", "text"),
	}},
	"province": {Name: "province", Fields: []Field{
		f("province_id", "int"), f("name", "text"), f("code", "text"),
	}},
	"sales_order": {Name: "sales_order", Fields: []Field{
		f("order_id", "int"), f("customer_id", "int"), f("channel_id", "int"),
		f("store_id", "int"), f("order_date", "timestamp"),
		f("billing_address_id", "int"), f("shipping_address_id", "int"),
		f("status", "text"), f("currency_code", "text"),
		f("subtotal", "float"), f("tax_amount", "float"),
		f("shipping_fee", "float"), f("total_amount", "float"),
	}},
	"sales_order_item": {Name: "sales_order_item", Fields: []Field{
		f("order_item_id", "int"), f("order_id", "int"), f("product_id", "int"),
		f("quantity", "int"), f("unit_price", "float"),
		f("discount_amount", "float"), f("line_total", "float"),
	}},
	"shipment": {Name: "shipment", Fields: []Field{
		f("shipment_id", "int"), f("order_id", "int"), f("carrier", "text"),
		f("shipped_at", "timestamp"), f("delivered_at", "timestamp"),
		f("tracking_number", "text"),
	}},
	"store": {Name: "store", Fields: []Field{
		f("store_id", "int"), f("name", "text"), f("address_id", "int"),
	}},
	"web_session": {Name: "web_session", Fields: []Field{
		f("session_id", "int"), f("customer_id", "int"),
		f("started_at", "timestamp"), f("ended_at", "timestamp"),
		f("source", "text"), f("device", "text"),
	}},
}
