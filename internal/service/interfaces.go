package service

import (
	"context"

	"github.com/iktorin-vi/customer-retention-analysis/internal/dto"
)

// AnalyticsServicer defines the interface for retention analytics operations
type AnalyticsServicer interface {
	GetRetention(ctx context.Context, req *dto.GetRetentionRequest) (*dto.GetRetentionResponse, error)
	GetRepeatRate(ctx context.Context) (*dto.RepeatRateResponse, error)
	GetPurchaseTiming(ctx context.Context) (*dto.PurchaseTimingResponse, error)
	GetChurn(ctx context.Context, req *dto.GetChurnRequest) (*dto.ChurnResponse, error)
	GetOneTimeBuyers(ctx context.Context) (*dto.GetOneTimeBuyersResponse, error)
	GetCohortRevenue(ctx context.Context) (*dto.GetCohortRevenueResponse, error)
}
