package cmd

import (
	"github.com/gigaton-io/gigaton/core"
	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/spf13/cobra"
)

// changesCmd lists per-scenario annual rates of change.
var changesCmd = &cobra.Command{
	Use:   "changes [dataset-path]",
	Short: "Show per-scenario annual rates of change over the configured year pairs.",
	Long: `List one variable's annual rate of change over each configured year pair,
scenario by scenario.

The rate is the endpoint difference divided by the number of years between
them, so a decade from 10 to 0 reads as -1.0 per year. Use this to:
- Rank scenarios by how fast they cut emissions
- Compare near-term against long-term decarbonization speed
- Find pathways that backload their reductions
- Trace which scenarios drive a cohort's change statistics

Pairs with a missing endpoint show an empty cell; the rate is undefined
there, not zero.

Examples:
  # Rates of change for the default variable
  gigaton changes data/ensemble.csv --metadata data/meta.csv

  # Pick a specific configured variable
  gigaton changes data/ensemble.csv --variable "Net CO2 emissions"

  # Feed the full listing into a spreadsheet
  gigaton changes data/ensemble.csv --limit 1000 --output xlsx --output-file changes.xlsx`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGigatonChanges(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run changes listing", err)
		}
	},
}
