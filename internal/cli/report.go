package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iktorin-vi/customer-retention-analysis/internal/reports"
	"github.com/iktorin-vi/customer-retention-analysis/internal/service"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run analytics reports and export them as JSON files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		name, _ := cmd.Flags().GetString("name")
		output, _ := cmd.Flags().GetString("output")

		rc, cleanup, err := setup(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if output == "" {
			output = rc.cfg.Report.OutputDir
		}

		analytics := service.NewAnalyticsService(rc.repo, rc.log)
		runner := reports.NewRunner(analytics, output, rc.log)

		if name == "all" {
			files, err := runner.RunAll(ctx)
			for _, file := range files {
				fmt.Println("exported:", file)
			}
			return err
		}

		file, err := runner.Run(ctx, name)
		if err != nil {
			return err
		}
		fmt.Println("exported:", file)
		return nil
	},
}

func init() {
	reportCmd.Flags().String("name", "all",
		fmt.Sprintf("report to run (%s or all)", strings.Join(reports.Names, ", ")))
	reportCmd.Flags().String("output", "", "output directory (default from config)")
}
