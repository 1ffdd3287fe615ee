package domain

import "time"

// Transaction represents one invoice line stored in ClickHouse
type Transaction struct {
	InvoiceNo   string    `ch:"invoice_no"`
	StockCode   string    `ch:"stock_code"`
	Description string    `ch:"description"`
	Quantity    int32     `ch:"quantity"`
	InvoiceDate time.Time `ch:"invoice_date"`
	UnitPrice   float64   `ch:"unit_price"`
	CustomerID  string    `ch:"customer_id"`
	Country     string    `ch:"country"`
	LoadedAt    time.Time `ch:"loaded_at"`
}

// TotalSum is the line revenue. Stored as a materialized column in
// ClickHouse; computed here for callers that work on unloaded rows.
func (t *Transaction) TotalSum() float64 {
	return float64(t.Quantity) * t.UnitPrice
}
