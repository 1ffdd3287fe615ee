package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iktorin-vi/customer-retention-analysis/internal/dto"
	"github.com/iktorin-vi/customer-retention-analysis/internal/repository"
)

const (
	monthLayout = "2006-01"

	// DefaultMaxIndex caps the retention matrix width when the caller
	// does not ask for one.
	DefaultMaxIndex = 24

	// MaxIndexLimit is the hard cap on the matrix width.
	MaxIndexLimit = 120

	// DefaultChurnThresholdDays is the inactivity window that classifies
	// a customer as churned.
	DefaultChurnThresholdDays = 90
)

// AnalyticsService validates requests and shapes repository results for
// the dashboard
type AnalyticsService struct {
	repository repository.TransactionRepository
	log        *zap.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo repository.TransactionRepository, log *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		repository: repo,
		log:        log,
	}
}

// GetRetention validates the request and returns the retention matrix
func (s *AnalyticsService) GetRetention(ctx context.Context, req *dto.GetRetentionRequest) (*dto.GetRetentionResponse, error) {
	maxIndex := req.MaxIndex
	if maxIndex == 0 {
		maxIndex = DefaultMaxIndex
	}
	if maxIndex < 0 || maxIndex > MaxIndexLimit {
		return nil, fmt.Errorf("max_index must be between 0 and %d", MaxIndexLimit)
	}

	query := repository.RetentionQuery{MaxIndex: maxIndex}

	if req.From != "" {
		from, err := time.Parse(monthLayout, req.From)
		if err != nil {
			return nil, fmt.Errorf("invalid from month %q (want YYYY-MM)", req.From)
		}
		query.FromMonth = from
	}
	if req.To != "" {
		to, err := time.Parse(monthLayout, req.To)
		if err != nil {
			return nil, fmt.Errorf("invalid to month %q (want YYYY-MM)", req.To)
		}
		query.ToMonth = to
	}
	if !query.FromMonth.IsZero() && !query.ToMonth.IsZero() && query.FromMonth.After(query.ToMonth) {
		return nil, fmt.Errorf("from month must not be after to month")
	}

	s.log.Info("Querying retention matrix",
		zap.Int("max_index", maxIndex),
		zap.String("from", req.From),
		zap.String("to", req.To))

	cells, err := s.repository.RetentionMatrix(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get retention matrix: %w", err)
	}

	response := &dto.GetRetentionResponse{
		From:     req.From,
		To:       req.To,
		MaxIndex: maxIndex,
		Cells:    make([]dto.RetentionCellData, 0, len(cells)),
	}
	for _, cell := range cells {
		response.Cells = append(response.Cells, dto.RetentionCellData{
			CohortMonth:     cell.CohortMonth.Format(monthLayout),
			CohortIndex:     cell.CohortIndex,
			CohortSize:      cell.CohortSize,
			ActiveCustomers: cell.ActiveCustomers,
			RetentionRate:   cell.RetentionRate,
		})
	}

	return response, nil
}

// GetRepeatRate returns the repeat purchase rate
func (s *AnalyticsService) GetRepeatRate(ctx context.Context) (*dto.RepeatRateResponse, error) {
	result, err := s.repository.RepeatPurchaseRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get repeat purchase rate: %w", err)
	}

	return &dto.RepeatRateResponse{
		TotalCustomers:  result.TotalCustomers,
		RepeatCustomers: result.RepeatCustomers,
		RepeatRate:      result.RepeatRate,
	}, nil
}

// GetPurchaseTiming returns first-to-second purchase gap statistics
func (s *AnalyticsService) GetPurchaseTiming(ctx context.Context) (*dto.PurchaseTimingResponse, error) {
	result, err := s.repository.TimeToSecondPurchase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase timing: %w", err)
	}

	return &dto.PurchaseTimingResponse{
		MeasuredCustomers: result.MeasuredCustomers,
		MeanDays:          result.MeanDays,
		MedianDays:        result.MedianDays,
	}, nil
}

// GetChurn validates the threshold and returns the churn split
func (s *AnalyticsService) GetChurn(ctx context.Context, req *dto.GetChurnRequest) (*dto.ChurnResponse, error) {
	threshold := req.ThresholdDays
	if threshold == 0 {
		threshold = DefaultChurnThresholdDays
	}
	if threshold < 0 {
		return nil, fmt.Errorf("threshold_days must be positive")
	}

	s.log.Info("Querying churn rate", zap.Int("threshold_days", threshold))

	result, err := s.repository.ChurnRate(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to get churn rate: %w", err)
	}

	return &dto.ChurnResponse{
		ThresholdDays:    result.ThresholdDays,
		TotalCustomers:   result.TotalCustomers,
		ChurnedCustomers: result.ChurnedCustomers,
		ChurnRate:        result.ChurnRate,
		ActiveRate:       result.ActiveRate,
	}, nil
}

// GetOneTimeBuyers returns the per-cohort one-time vs repeat buyer split
func (s *AnalyticsService) GetOneTimeBuyers(ctx context.Context) (*dto.GetOneTimeBuyersResponse, error) {
	splits, err := s.repository.OneTimeBuyerShare(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get one-time buyer share: %w", err)
	}

	response := &dto.GetOneTimeBuyersResponse{
		Cohorts: make([]dto.CohortBuyerData, 0, len(splits)),
	}
	for _, split := range splits {
		response.Cohorts = append(response.Cohorts, dto.CohortBuyerData{
			CohortMonth:   split.CohortMonth.Format(monthLayout),
			CohortSize:    split.CohortSize,
			OneTimeBuyers: split.OneTimeBuyers,
			RepeatBuyers:  split.RepeatBuyers,
			OneTimeShare:  split.OneTimeShare,
		})
	}

	return response, nil
}

// GetCohortRevenue returns acquisition counts and first-month revenue per cohort
func (s *AnalyticsService) GetCohortRevenue(ctx context.Context) (*dto.GetCohortRevenueResponse, error) {
	rows, err := s.repository.CohortRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cohort revenue: %w", err)
	}

	response := &dto.GetCohortRevenueResponse{
		Cohorts: make([]dto.CohortRevenueData, 0, len(rows)),
	}
	for _, row := range rows {
		response.Cohorts = append(response.Cohorts, dto.CohortRevenueData{
			CohortMonth:         row.CohortMonth.Format(monthLayout),
			NewCustomers:        row.NewCustomers,
			FirstMonthRevenue:   row.FirstMonthRevenue,
			CumulativeCustomers: row.CumulativeCustomers,
		})
	}

	return response, nil
}
