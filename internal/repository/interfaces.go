package repository

import (
	"context"
	"time"

	"github.com/iktorin-vi/customer-retention-analysis/internal/domain"
)

// RetentionQuery represents retention matrix query parameters.
// A zero FromMonth/ToMonth leaves that bound open.
type RetentionQuery struct {
	MaxIndex  int
	FromMonth time.Time
	ToMonth   time.Time
}

// RetentionCell is one (cohort month, elapsed month) cell of the matrix.
// RetentionRate is nil when the cohort is empty.
type RetentionCell struct {
	CohortMonth     time.Time
	CohortIndex     uint16
	CohortSize      uint64
	ActiveCustomers uint64
	RetentionRate   *float64
}

// RepeatPurchaseResult summarizes customers with two or more invoices
type RepeatPurchaseResult struct {
	TotalCustomers  uint64
	RepeatCustomers uint64
	RepeatRate      *float64
}

// PurchaseTimingResult summarizes the day gap between a customer's first
// and second order, across all customers with at least two orders
type PurchaseTimingResult struct {
	MeasuredCustomers uint64
	MeanDays          *float64
	MedianDays        *float64
}

// ChurnResult summarizes customers inactive for more than ThresholdDays
// relative to the dataset's latest order date
type ChurnResult struct {
	TotalCustomers   uint64
	ChurnedCustomers uint64
	ThresholdDays    int
	ChurnRate        *float64
	ActiveRate       *float64
}

// CohortBuyerSplit splits one cohort into one-time and repeat buyers
type CohortBuyerSplit struct {
	CohortMonth   time.Time
	CohortSize    uint64
	OneTimeBuyers uint64
	RepeatBuyers  uint64
	OneTimeShare  *float64
}

// CohortRevenueRow reports acquisition and first-month revenue per cohort
type CohortRevenueRow struct {
	CohortMonth         time.Time
	NewCustomers        uint64
	FirstMonthRevenue   float64
	CumulativeCustomers uint64
}

// TransactionRepository defines the interface for transaction storage and
// cohort analytics operations
type TransactionRepository interface {
	// InsertBatch inserts a batch of transactions into the storage
	InsertBatch(ctx context.Context, transactions []*domain.Transaction) (int, error)

	// InitSchema initializes the database schema (creates tables if they don't exist)
	InitSchema(ctx context.Context) error

	// BuildCohorts recomputes the derived cohort table from the raw
	// transactions table. Idempotent: truncates and repopulates.
	BuildCohorts(ctx context.Context) error

	// TruncateTransactions clears the raw table before a full reload
	TruncateTransactions(ctx context.Context) error

	// Ping checks if the database connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error

	// RetentionMatrix returns the cohort retention matrix
	RetentionMatrix(ctx context.Context, query RetentionQuery) ([]RetentionCell, error)

	// RepeatPurchaseRate returns the share of customers with repeat purchases
	RepeatPurchaseRate(ctx context.Context) (*RepeatPurchaseResult, error)

	// TimeToSecondPurchase returns first-to-second purchase gap statistics
	TimeToSecondPurchase(ctx context.Context) (*PurchaseTimingResult, error)

	// ChurnRate returns the churn split for the given inactivity threshold
	ChurnRate(ctx context.Context, thresholdDays int) (*ChurnResult, error)

	// OneTimeBuyerShare returns the one-time vs repeat buyer split per cohort
	OneTimeBuyerShare(ctx context.Context) ([]CohortBuyerSplit, error)

	// CohortRevenue returns acquisition counts and first-month revenue per cohort
	CohortRevenue(ctx context.Context) ([]CohortRevenueRow, error)
}
