package loader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iktorin-vi/customer-retention-analysis/internal/domain"
)

// Column order of the source file:
// InvoiceNo, StockCode, Description, Quantity, InvoiceDate, UnitPrice, CustomerID, Country
const (
	colInvoiceNo = iota
	colStockCode
	colDescription
	colQuantity
	colInvoiceDate
	colUnitPrice
	colCustomerID
	colCountry
	fieldCount
)

// Filter rules, not failures: rows hitting these are counted and dropped,
// the run continues.
var (
	ErrMissingCustomer  = errors.New("missing customer id")
	ErrCancelledInvoice = errors.New("cancelled invoice")
	ErrMalformedRow     = errors.New("malformed row")
)

// Timestamp layouts seen in retail exports. The first is the classic
// month/day export format without zero padding.
var dateLayouts = []string{
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// CSVRowParser implements RowParser for invoice-line CSV records
type CSVRowParser struct {
	cancelPrefix string
}

// NewCSVRowParser creates a parser that treats invoice numbers starting
// with cancelPrefix as cancellations
func NewCSVRowParser(cancelPrefix string) *CSVRowParser {
	return &CSVRowParser{cancelPrefix: cancelPrefix}
}

// Parse converts a CSV record into a Transaction, applying the filter
// rules: rows without a customer id and cancelled invoices are rejected
// before any derivation sees them.
func (p *CSVRowParser) Parse(record []string) (*domain.Transaction, error) {
	if len(record) != fieldCount {
		return nil, fmt.Errorf("%w: got %d fields, want %d", ErrMalformedRow, len(record), fieldCount)
	}

	invoiceNo := strings.TrimSpace(record[colInvoiceNo])
	if invoiceNo == "" {
		return nil, fmt.Errorf("%w: empty invoice number", ErrMalformedRow)
	}
	if p.cancelPrefix != "" && strings.HasPrefix(invoiceNo, p.cancelPrefix) {
		return nil, ErrCancelledInvoice
	}

	customerID := strings.TrimSpace(record[colCustomerID])
	if customerID == "" {
		return nil, ErrMissingCustomer
	}

	quantity, err := strconv.ParseInt(strings.TrimSpace(record[colQuantity]), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid quantity %q", ErrMalformedRow, record[colQuantity])
	}

	unitPrice, err := strconv.ParseFloat(strings.TrimSpace(record[colUnitPrice]), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid unit price %q", ErrMalformedRow, record[colUnitPrice])
	}

	invoiceDate, err := parseInvoiceDate(strings.TrimSpace(record[colInvoiceDate]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}

	return &domain.Transaction{
		InvoiceNo:   invoiceNo,
		StockCode:   strings.TrimSpace(record[colStockCode]),
		Description: strings.TrimSpace(record[colDescription]),
		Quantity:    int32(quantity),
		InvoiceDate: invoiceDate,
		UnitPrice:   unitPrice,
		CustomerID:  customerID,
		Country:     strings.TrimSpace(record[colCountry]),
	}, nil
}

func parseInvoiceDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid invoice date %q", value)
}
