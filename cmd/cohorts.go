package cmd

import (
	"github.com/gigaton-io/gigaton/core"
	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/spf13/cobra"
)

// cohortsCmd resolves cohort membership across the ensemble.
var cohortsCmd = &cobra.Command{
	Use:   "cohorts [dataset-path]",
	Short: "Show which scenarios fall into each configured cohort.",
	Long: `Resolve every configured cohort against the scenario metadata and list the
resulting memberships.

Cohorts group scenarios by category label, and a scenario may belong to
several cohorts at once. Use this to:
- Verify category labels map to the cohorts you expect
- Find scenarios that join no cohort at all
- Check cohort sizes before trusting their summary statistics
- Document the grouping behind a published report

Empty cohorts are listed with a warning; they render as "-" in the
summary report.

Examples:
  # List cohort memberships
  gigaton cohorts data/ensemble.csv --metadata data/meta.csv

  # Full rosters in machine-readable form
  gigaton cohorts data/ensemble.csv --metadata data/meta.csv --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGigatonCohorts(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run cohorts listing", err)
		}
	},
}
