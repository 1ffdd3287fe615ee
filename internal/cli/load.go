package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iktorin-vi/customer-retention-analysis/internal/loader"
)

var loadCmd = &cobra.Command{
	Use:   "load <csv-file>",
	Short: "Load a transaction CSV into ClickHouse and derive cohort labels",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rc, cleanup, err := setup(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := rc.repo.InitSchema(ctx); err != nil {
			return err
		}

		truncate, _ := cmd.Flags().GetBool("truncate")
		if truncate {
			rc.log.Info("Truncating transactions before reload")
			if err := rc.repo.TruncateTransactions(ctx); err != nil {
				return err
			}
		}

		l := loader.New(rc.cfg.Loader, rc.repo, rc.log)
		snapshot, err := l.Run(ctx, args[0])
		if err != nil {
			return err
		}

		skipDerive, _ := cmd.Flags().GetBool("skip-derive")
		if skipDerive {
			rc.log.Info("Skipping cohort derivation as requested",
				zap.String("run_id", snapshot.RunID))
			return nil
		}

		return rc.repo.BuildCohorts(ctx)
	},
}

func init() {
	loadCmd.Flags().Bool("truncate", true, "clear the transactions table before loading")
	loadCmd.Flags().Bool("skip-derive", false, "load only, without rebuilding the cohort table")
}
