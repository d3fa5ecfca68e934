package cmd

import (
	"github.com/gigaton-io/gigaton/core"
	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD input validation.
var checkCmd = &cobra.Command{
	Use:   "check [dataset-path]",
	Short: "Validate dataset and metadata against the report shape (fails build on violations)",
	Long: `Load the dataset and metadata, validate them against the configured report
shape, and exit non-zero on fatal violations.

Designed for CI/CD integration - catches broken inputs before a report is
published. No summary table is produced; the command only checks that one
could be built.

Fatal violations (exit code 1):
- A configured variable matches no rows in the selected region
- A variable's unit has no configured conversion to the target unit

Warnings (reported, exit code 0):
- A reference year no scenario observes
- A scenario without metadata, which joins no cohort
- A cohort no scenario matches

Use cases:
- Data pipeline gates - block publishing on broken ensembles
- Pre-release validation - confirm new vintages keep the report shape
- Metadata audits - find scenarios that silently drop out of cohorts

Examples:
  # Validate inputs before building the report
  gigaton check data/ensemble.csv --metadata data/meta.csv

  # Validate a regional subset
  gigaton check data/ensemble.csv --region "ASIA"

  # Gate a pipeline on a custom config
  gigaton check data/ensemble.csv --config ci/.gigaton.yaml`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Validation is done in ExecuteGigatonCheck
		if err := core.ExecuteGigatonCheck(rootCtx, cfg); err != nil {
			contract.LogFatal("Input check failed", err)
		}
	},
}
