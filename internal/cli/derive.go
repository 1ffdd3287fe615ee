package cli

import (
	"github.com/spf13/cobra"
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Rebuild the derived cohort table from the raw transactions",
	Args:  cobra.NoArgs,
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

		return rc.repo.BuildCohorts(ctx)
	},
}
