package reports

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iktorin-vi/customer-retention-analysis/internal/dto"
	"github.com/iktorin-vi/customer-retention-analysis/internal/service"
)

// Report names accepted by the runner
const (
	NameRetention      = "retention"
	NameRepeatRate     = "repeat_rate"
	NamePurchaseTiming = "purchase_timing"
	NameChurn          = "churn"
	NameOneTimeBuyers  = "one_time_buyers"
	NameRevenue        = "revenue"
)

// Names lists all report names in export order
var Names = []string{
	NameRetention,
	NameRepeatRate,
	NamePurchaseTiming,
	NameChurn,
	NameOneTimeBuyers,
	NameRevenue,
}

// Runner executes named analytics reports and exports them as JSON files
type Runner struct {
	analytics service.AnalyticsServicer
	outputDir string
	log       *zap.Logger
}

// NewRunner creates a new report runner writing into outputDir
func NewRunner(analytics service.AnalyticsServicer, outputDir string, log *zap.Logger) *Runner {
	return &Runner{
		analytics: analytics,
		outputDir: outputDir,
		log:       log,
	}
}

// Run executes one named report with default parameters and returns the
// path of the written file
func (r *Runner) Run(ctx context.Context, name string) (string, error) {
	var data interface{}
	var err error

	switch name {
	case NameRetention:
		data, err = r.analytics.GetRetention(ctx, &dto.GetRetentionRequest{})
	case NameRepeatRate:
		data, err = r.analytics.GetRepeatRate(ctx)
	case NamePurchaseTiming:
		data, err = r.analytics.GetPurchaseTiming(ctx)
	case NameChurn:
		data, err = r.analytics.GetChurn(ctx, &dto.GetChurnRequest{})
	case NameOneTimeBuyers:
		data, err = r.analytics.GetOneTimeBuyers(ctx)
	case NameRevenue:
		data, err = r.analytics.GetCohortRevenue(ctx)
	default:
		return "", fmt.Errorf("unknown report: %s", name)
	}

	if err != nil {
		return "", fmt.Errorf("failed to run report %s: %w", name, err)
	}

	filename := TimestampedFilename(r.outputDir, name)
	if err := ExportJSON(filename, data); err != nil {
		return "", err
	}

	r.log.Info("Report exported",
		zap.String("report", name),
		zap.String("file", filename))

	return filename, nil
}

// RunAll executes every report and returns the written file paths
func (r *Runner) RunAll(ctx context.Context) ([]string, error) {
	files := make([]string, 0, len(Names))
	for _, name := range Names {
		file, err := r.Run(ctx, name)
		if err != nil {
			return files, err
		}
		files = append(files, file)
	}
	return files, nil
}
