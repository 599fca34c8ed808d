package transform

import (
	"dwetl/internal/table"
	"dwetl/pkg/records"
)

// rawFixture builds a small but complete raw-table set, shaped the way the
// extract stage delivers it: ids as int, amounts as float64, timestamps as
// strings, missing cells as nil.
func rawFixture() map[string]table.Table {
	return map[string]table.Table{
		"province": table.New(
			[]string{"province_id", "name", "code"},
			[]records.Record{
				{"province_id": 1, "name": "Córdoba", "code": "COR"},
				{"province_id": 2, "name": "Buenos Aires", "code": "BA"},
			}),
		"address": table.New(
			[]string{"address_id", "province_id", "line1", "line2", "city", "postal_code", "country_code", "created_at"},
			[]records.Record{
				{"address_id": 5, "province_id": 1, "line1": "Av. X", "line2": nil, "city": "Córdoba", "postal_code": "5000", "country_code": "AR", "created_at": "2024-03-01"},
				{"address_id": 6, "province_id": 2, "line1": "Calle Y 123", "line2": "PB", "city": "CABA", "postal_code": "1406", "country_code": "AR", "created_at": "2024-03-02"},
			}),
		"channel": table.New(
			[]string{"channel_id", "code", "name"},
			[]records.Record{
				{"channel_id": 2, "code": "STORE", "name": "Tienda"},
				{"channel_id": 1, "code": "WEB", "name": "Web"},
			}),
		"customer": table.New(
			[]string{"customer_id", "email", "first_name", "last_name", "phone", "status", "created_at"},
			[]records.Record{
				{"customer_id": 7, "email": "g@x.com", "first_name": "Gina", "last_name": "Paz", "phone": nil, "status": "active", "created_at": "2024-01-05"},
				{"customer_id": 3, "email": "a@x.com", "first_name": "Ana", "last_name": "Ruiz", "phone": "555-1", "status": "active", "created_at": "2024-01-02"},
			}),
		"product_category": table.New(
			[]string{"category_id", "parent_id", "name"},
			[]records.Record{
				{"category_id": 10, "parent_id": nil, "name": "Botellas"},
				{"category_id": 11, "parent_id": 10, "name": "Deportivas"},
			}),
		"product": table.New(
			[]string{"product_id", "category_id", "sku", "name", "list_price", "status", "created_at"},
			[]records.Record{
				{"product_id": 100, "category_id": 11, "sku": "EB-100", "name": "EcoBottle 500", "list_price": 25.99, "status": "active", "created_at": "2024-01-03"},
				{"product_id": 101, "category_id": nil, "sku": "EB-101", "name": "EcoBottle 750", "list_price": 29.99, "status": "active", "created_at": "2024-01-04"},
			}),
		"store": table.New(
			[]string{"store_id", "name", "address_id"},
			[]records.Record{
				{"store_id": 1, "name": "Centro", "address_id": 6},
			}),
		"sales_order": table.New(
			[]string{"order_id", "customer_id", "channel_id", "store_id", "order_date", "billing_address_id", "shipping_address_id", "status", "currency_code", "subtotal", "tax_amount", "shipping_fee", "total_amount"},
			[]records.Record{
				{"order_id": 50, "customer_id": 3, "channel_id": 1, "store_id": nil, "order_date": "2024-01-10T13:45:00", "billing_address_id": 5, "shipping_address_id": 6, "status": "paid", "currency_code": "ARS", "subtotal": 100.0, "tax_amount": 21.0, "shipping_fee": 10.0, "total_amount": 131.0},
			}),
		"sales_order_item": table.New(
			[]string{"order_item_id", "order_id", "product_id", "quantity", "unit_price", "discount_amount", "line_total"},
			[]records.Record{
				{"order_item_id": 500, "order_id": 50, "product_id": 100, "quantity": 2, "unit_price": 25.99, "discount_amount": 0.0, "line_total": 51.98},
				{"order_item_id": 501, "order_id": 99, "product_id": nil, "quantity": 1, "unit_price": 10.0, "discount_amount": 0.0, "line_total": 10.0},
			}),
		"payment": table.New(
			[]string{"payment_id", "order_id", "method", "status", "amount", "paid_at", "transaction_ref"},
			[]records.Record{
				{"payment_id": 70, "order_id": 50, "method": "card", "status": "approved", "amount": 131.0, "paid_at": "2024-01-11T10:00:00", "transaction_ref": "TX1"},
			}),
		"shipment": table.New(
			[]string{"shipment_id", "order_id", "carrier", "shipped_at", "delivered_at", "tracking_number"},
			[]records.Record{
				{"shipment_id": 80, "order_id": 50, "carrier": "OCA", "shipped_at": "2024-02-01", "delivered_at": "2024-02-04", "tracking_number": "TRK1"},
				{"shipment_id": 81, "order_id": 50, "carrier": "OCA", "shipped_at": "2024-02-05", "delivered_at": nil, "tracking_number": "TRK2"},
			}),
		"web_session": table.New(
			[]string{"session_id", "customer_id", "started_at", "ended_at", "source", "device"},
			[]records.Record{
				{"session_id": 90, "customer_id": 3, "started_at": "2024-01-09T08:00:00", "ended_at": "2024-01-09T08:30:00", "source": "organic", "device": "mobile"},
			}),
		"nps_response": table.New(
			[]string{"nps_id", "customer_id", "channel_id", "responded_at", "score"},
			[]records.Record{
				{"nps_id": 60, "customer_id": 3, "channel_id": 2, "responded_at": "2024-03-05T12:00:00", "score": 9},
			}),
	}
}
