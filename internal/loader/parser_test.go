package loader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validRecord() []string {
	return []string{"536365", "85123A", "WHITE HANGING HEART T-LIGHT HOLDER", "6", "12/1/2010 8:26", "2.55", "17850", "United Kingdom"}
}

func TestCSVRowParser_Parse_Valid(t *testing.T) {
	parser := NewCSVRowParser("C")

	tx, err := parser.Parse(validRecord())

	assert.NoError(t, err)
	assert.Equal(t, "536365", tx.InvoiceNo)
	assert.Equal(t, "85123A", tx.StockCode)
	assert.Equal(t, int32(6), tx.Quantity)
	assert.Equal(t, 2.55, tx.UnitPrice)
	assert.Equal(t, "17850", tx.CustomerID)
	assert.Equal(t, "United Kingdom", tx.Country)
	assert.Equal(t, time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC), tx.InvoiceDate)
	assert.Equal(t, 15.30, tx.TotalSum())
}

func TestCSVRowParser_Parse_ISODate(t *testing.T) {
	parser := NewCSVRowParser("C")

	record := validRecord()
	record[colInvoiceDate] = "2010-12-01 08:26:00"

	tx, err := parser.Parse(record)

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC), tx.InvoiceDate)
}

func TestCSVRowParser_Parse_MissingCustomer(t *testing.T) {
	parser := NewCSVRowParser("C")

	record := validRecord()
	record[colCustomerID] = "  "

	tx, err := parser.Parse(record)

	assert.Nil(t, tx)
	assert.ErrorIs(t, err, ErrMissingCustomer)
}

func TestCSVRowParser_Parse_CancelledInvoice(t *testing.T) {
	parser := NewCSVRowParser("C")

	record := validRecord()
	record[colInvoiceNo] = "C536379"

	tx, err := parser.Parse(record)

	assert.Nil(t, tx)
	assert.ErrorIs(t, err, ErrCancelledInvoice)
}

func TestCSVRowParser_Parse_CancellationCheckBeforeCustomerCheck(t *testing.T) {
	parser := NewCSVRowParser("C")

	// A cancelled invoice without a customer id counts as cancelled:
	// cancellations are filtered before any per-customer rule.
	record := validRecord()
	record[colInvoiceNo] = "C536379"
	record[colCustomerID] = ""

	_, err := parser.Parse(record)

	assert.ErrorIs(t, err, ErrCancelledInvoice)
}

func TestCSVRowParser_Parse_FieldCountMismatch(t *testing.T) {
	parser := NewCSVRowParser("C")

	tx, err := parser.Parse([]string{"536365", "85123A"})

	assert.Nil(t, tx)
	assert.ErrorIs(t, err, ErrMalformedRow)
}

func TestCSVRowParser_Parse_BadQuantity(t *testing.T) {
	parser := NewCSVRowParser("C")

	record := validRecord()
	record[colQuantity] = "six"

	_, err := parser.Parse(record)

	assert.ErrorIs(t, err, ErrMalformedRow)
}

func TestCSVRowParser_Parse_BadDate(t *testing.T) {
	parser := NewCSVRowParser("C")

	record := validRecord()
	record[colInvoiceDate] = "yesterday"

	_, err := parser.Parse(record)

	assert.ErrorIs(t, err, ErrMalformedRow)
}

func TestCSVRowParser_Parse_NoCancelPrefixConfigured(t *testing.T) {
	parser := NewCSVRowParser("")

	record := validRecord()
	record[colInvoiceNo] = "C536379"

	tx, err := parser.Parse(record)

	assert.NoError(t, err)
	assert.Equal(t, "C536379", tx.InvoiceNo)
}
