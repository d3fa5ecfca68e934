package cmd

import (
	"github.com/gigaton-io/gigaton/core"
	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/spf13/cobra"
)

// snapshotCmd lists per-scenario values at the configured reference years.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot [dataset-path]",
	Short: "Show per-scenario values at the configured reference years.",
	Long: `List one variable's value at each configured reference year, scenario by
scenario.

Where the summary report aggregates cohorts, this command keeps individual
scenarios visible. Use this to:
- Inspect the raw values behind a summary cell
- Compare individual pathways at fixed points in time
- Find scenarios missing data at a reference year
- Sanity-check unit conversions against the source dataset

Scenarios without an observation at a reference year show an empty cell
rather than an interpolated or zero value.

Examples:
  # Snapshot the default variable at the configured reference years
  gigaton snapshot data/ensemble.csv --metadata data/meta.csv

  # Pick a specific configured variable
  gigaton snapshot data/ensemble.csv --variable "Kyoto gases"

  # Widen the listing beyond the default result limit
  gigaton snapshot data/ensemble.csv --limit 100 --output csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGigatonSnapshot(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run snapshot listing", err)
		}
	},
}
