package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/iktorin-vi/customer-retention-analysis/internal/domain"
	"github.com/iktorin-vi/customer-retention-analysis/internal/repository"
)

// Repository implements TransactionRepository for ClickHouse
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a new ClickHouse repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
	}
}

// InitSchema creates the raw transactions table and the derived cohort table
func (r *Repository) InitSchema(ctx context.Context) error {
	transactionsDDL := `
	CREATE TABLE IF NOT EXISTS transactions (
		invoice_no   String,
		stock_code   String,
		description  String,
		quantity     Int32,
		invoice_date DateTime,
		unit_price   Float64,
		customer_id  String,
		country      LowCardinality(String),
		total_sum    Float64 MATERIALIZED quantity * unit_price,
		loaded_at    DateTime DEFAULT now()
	) ENGINE = MergeTree
	ORDER BY (customer_id, invoice_date, invoice_no)
	PARTITION BY toYYYYMM(invoice_date)
	SETTINGS index_granularity = 8192
	`

	cohortDDL := `
	CREATE TABLE IF NOT EXISTS cohort_transactions (
		invoice_no   String,
		customer_id  String,
		country      LowCardinality(String),
		invoice_date DateTime,
		quantity     Int32,
		unit_price   Float64,
		total_sum    Float64,
		order_month  Date,
		cohort_date  DateTime,
		cohort_month Date,
		cohort_index UInt16
	) ENGINE = MergeTree
	ORDER BY (cohort_month, cohort_index, customer_id)
	PARTITION BY toYYYYMM(cohort_month)
	SETTINGS index_granularity = 8192
	`

	if err := r.client.Conn().Exec(ctx, transactionsDDL); err != nil {
		return fmt.Errorf("failed to create transactions table: %w", err)
	}
	if err := r.client.Conn().Exec(ctx, cohortDDL); err != nil {
		return fmt.Errorf("failed to create cohort_transactions table: %w", err)
	}

	r.log.Info("ClickHouse schema initialized")
	return nil
}

// TruncateTransactions clears the raw table before a full reload
func (r *Repository) TruncateTransactions(ctx context.Context) error {
	if err := r.client.Conn().Exec(ctx, "TRUNCATE TABLE IF EXISTS transactions"); err != nil {
		return fmt.Errorf("failed to truncate transactions table: %w", err)
	}
	return nil
}

// InsertBatch inserts a batch of transactions into ClickHouse
func (r *Repository) InsertBatch(ctx context.Context, transactions []*domain.Transaction) (int, error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx,
		"INSERT INTO transactions (invoice_no, stock_code, description, quantity, invoice_date, unit_price, customer_id, country, loaded_at)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch: %w", err)
	}

	insertedCount := 0
	for _, tx := range transactions {
		loadedAt := tx.LoadedAt
		if loadedAt.IsZero() {
			loadedAt = time.Now()
		}

		err := batch.Append(
			tx.InvoiceNo,
			tx.StockCode,
			tx.Description,
			tx.Quantity,
			tx.InvoiceDate,
			tx.UnitPrice,
			tx.CustomerID,
			tx.Country,
			loadedAt,
		)

		if err != nil {
			return 0, fmt.Errorf("failed to append transaction to batch: %w", err)
		}
		insertedCount++
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("failed to send batch: %w", err)
	}

	return insertedCount, nil
}

// BuildCohorts truncates and repopulates the derived cohort table
func (r *Repository) BuildCohorts(ctx context.Context) error {
	start := time.Now()

	if err := r.client.Conn().Exec(ctx, "TRUNCATE TABLE IF EXISTS cohort_transactions"); err != nil {
		return fmt.Errorf("failed to truncate cohort_transactions: %w", err)
	}

	if err := r.client.Conn().Exec(ctx, queryBuildCohorts); err != nil {
		return fmt.Errorf("failed to build cohort_transactions: %w", err)
	}

	r.log.Info("Cohort derivation complete", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.client.Close()
}

// RetentionMatrix retrieves the cohort retention matrix
func (r *Repository) RetentionMatrix(ctx context.Context, query repository.RetentionQuery) ([]repository.RetentionCell, error) {
	rangeClause := ""
	args := []interface{}{query.MaxIndex}

	if !query.FromMonth.IsZero() {
		rangeClause += " AND ct.cohort_month >= ?"
		args = append(args, query.FromMonth)
	}
	if !query.ToMonth.IsZero() {
		rangeClause += " AND ct.cohort_month <= ?"
		args = append(args, query.ToMonth)
	}

	rows, err := r.client.Conn().Query(ctx, fmt.Sprintf(queryRetentionMatrix, rangeClause), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query retention matrix: %w", err)
	}
	defer r.closeRows(rows, "retention matrix")

	cells := []repository.RetentionCell{}
	for rows.Next() {
		var cell repository.RetentionCell
		if err := rows.Scan(
			&cell.CohortMonth,
			&cell.CohortIndex,
			&cell.CohortSize,
			&cell.ActiveCustomers,
			&cell.RetentionRate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan retention cell: %w", err)
		}
		cells = append(cells, cell)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating retention matrix rows: %w", err)
	}

	return cells, nil
}

// RepeatPurchaseRate retrieves the repeat purchase split
func (r *Repository) RepeatPurchaseRate(ctx context.Context) (*repository.RepeatPurchaseResult, error) {
	var result repository.RepeatPurchaseResult

	row := r.client.Conn().QueryRow(ctx, queryRepeatPurchaseRate)
	if err := row.Scan(&result.TotalCustomers, &result.RepeatCustomers, &result.RepeatRate); err != nil {
		return nil, fmt.Errorf("failed to query repeat purchase rate: %w", err)
	}

	return &result, nil
}

// TimeToSecondPurchase retrieves first-to-second purchase gap statistics
func (r *Repository) TimeToSecondPurchase(ctx context.Context) (*repository.PurchaseTimingResult, error) {
	var result repository.PurchaseTimingResult

	row := r.client.Conn().QueryRow(ctx, queryTimeToSecondPurchase)
	if err := row.Scan(&result.MeasuredCustomers, &result.MeanDays, &result.MedianDays); err != nil {
		return nil, fmt.Errorf("failed to query time to second purchase: %w", err)
	}

	return &result, nil
}

// ChurnRate retrieves the churn split for the given inactivity threshold
func (r *Repository) ChurnRate(ctx context.Context, thresholdDays int) (*repository.ChurnResult, error) {
	result := repository.ChurnResult{ThresholdDays: thresholdDays}

	row := r.client.Conn().QueryRow(ctx, queryChurnRate, thresholdDays, thresholdDays)
	if err := row.Scan(&result.TotalCustomers, &result.ChurnedCustomers, &result.ChurnRate); err != nil {
		return nil, fmt.Errorf("failed to query churn rate: %w", err)
	}

	if result.ChurnRate != nil {
		active := 100 - *result.ChurnRate
		result.ActiveRate = &active
	}

	return &result, nil
}

// OneTimeBuyerShare retrieves the one-time vs repeat buyer split per cohort
func (r *Repository) OneTimeBuyerShare(ctx context.Context) ([]repository.CohortBuyerSplit, error) {
	rows, err := r.client.Conn().Query(ctx, queryOneTimeBuyerShare)
	if err != nil {
		return nil, fmt.Errorf("failed to query one-time buyer share: %w", err)
	}
	defer r.closeRows(rows, "one-time buyer share")

	splits := []repository.CohortBuyerSplit{}
	for rows.Next() {
		var split repository.CohortBuyerSplit
		if err := rows.Scan(
			&split.CohortMonth,
			&split.CohortSize,
			&split.OneTimeBuyers,
			&split.RepeatBuyers,
			&split.OneTimeShare,
		); err != nil {
			return nil, fmt.Errorf("failed to scan buyer split row: %w", err)
		}
		splits = append(splits, split)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating buyer split rows: %w", err)
	}

	return splits, nil
}

// CohortRevenue retrieves acquisition counts and first-month revenue per cohort
func (r *Repository) CohortRevenue(ctx context.Context) ([]repository.CohortRevenueRow, error) {
	rows, err := r.client.Conn().Query(ctx, queryCohortRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to query cohort revenue: %w", err)
	}
	defer r.closeRows(rows, "cohort revenue")

	results := []repository.CohortRevenueRow{}
	for rows.Next() {
		var row repository.CohortRevenueRow
		if err := rows.Scan(
			&row.CohortMonth,
			&row.NewCustomers,
			&row.FirstMonthRevenue,
			&row.CumulativeCustomers,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cohort revenue row: %w", err)
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cohort revenue rows: %w", err)
	}

	return results, nil
}

func (r *Repository) closeRows(rows driver.Rows, label string) {
	if err := rows.Close(); err != nil {
		r.log.Error("Failed to close rows", zap.String("query", label), zap.Error(err))
	}
}
