package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iktorin-vi/customer-retention-analysis/internal/config"
	"github.com/iktorin-vi/customer-retention-analysis/internal/logger"
	"github.com/iktorin-vi/customer-retention-analysis/internal/repository/clickhouse"
)

var rootCmd = &cobra.Command{
	Use:           "cohortctl",
	Short:         "Batch tooling for the customer retention analytics store",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(reportCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// runContext bundles everything a subcommand needs against the store
type runContext struct {
	cfg  *config.Config
	log  *zap.Logger
	repo *clickhouse.Repository
}

// setup loads config, builds the logger, and connects to ClickHouse.
// The returned cleanup closes the connection and flushes the logger.
func setup(ctx context.Context) (*runContext, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, fmt.Errorf("failed to create ClickHouse client: %w", err)
	}

	repo := clickhouse.NewRepository(client, log)

	cleanup := func() {
		if err := repo.Close(); err != nil {
			log.Error("Failed to close repository", zap.Error(err))
		}
		_ = log.Sync()
	}

	return &runContext{cfg: cfg, log: log, repo: repo}, cleanup, nil
}
