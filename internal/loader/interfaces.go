package loader

import (
	"github.com/iktorin-vi/customer-retention-analysis/internal/domain"
)

// RowParser defines the interface for converting a raw CSV record into a transaction
type RowParser interface {
	Parse(record []string) (*domain.Transaction, error)
}
