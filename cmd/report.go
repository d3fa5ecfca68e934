package cmd

import (
	"github.com/gigaton-io/gigaton/core"
	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd builds the full cohort summary report.
var reportCmd = &cobra.Command{
	Use:   "report [dataset-path]",
	Short: "Show the cohort summary table across all configured indicators.",
	Long: `Build the full summary report: every configured variable and indicator,
aggregated over every scenario cohort.

Each row is one indicator for one variable - a value at a reference year, an
annual rate of change over a year pair, or the year of net zero. Each column
is one cohort of scenarios grouped by their category labels. Helps you:
- Compare emission pathways across climate categories at a glance
- See when each class of scenarios reaches net zero
- Spot cohorts whose spread is too wide to act on
- Produce publication-ready summary statistics in one pass

Cells show the median with interquartile range for well-populated cohorts,
the observed range for small ones, and "-" where no scenario contributes.

Examples:
  # Summarize the World region with the configured report shape
  gigaton report data/ensemble.csv --metadata data/meta.csv

  # Narrow the report to one region at higher precision
  gigaton report data/ensemble.csv --region "OECD90+EU" --precision 2

  # Export the summary for downstream tooling
  gigaton report data/ensemble.csv --output csv --output-file summary.csv

  # Keep a history of report runs in a local SQLite archive
  gigaton report data/ensemble.csv --archive-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGigatonReport(rootCtx, cfg, archiveManager); err != nil {
			contract.LogFatal("Cannot run report", err)
		}
	},
}
