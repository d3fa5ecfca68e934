package cmd

import (
	"github.com/gigaton-io/gigaton/core"
	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/spf13/cobra"
)

// netzeroCmd lists per-scenario years of net zero.
var netzeroCmd = &cobra.Command{
	Use:   "netzero [dataset-path]",
	Short: "Show the year each scenario reaches net zero, earliest first.",
	Long: `List the year each scenario's pathway first drops below the configured
threshold, interpolated between observed years.

The crossing is interpolated linearly between the last value above the
threshold and the first below it, then reported as the first full year at
the new level. Scenarios that never drop below the threshold report
"never". Use this to:
- Rank pathways by ambition at a glance
- Separate early, mid-century and late net-zero scenarios
- Spot scenarios that never reach net zero under a given threshold
- Stress-test the ranking under alternative thresholds

Examples:
  # Net-zero years against the configured threshold
  gigaton netzero data/ensemble.csv --metadata data/meta.csv

  # Rank against a stricter threshold
  gigaton netzero data/ensemble.csv --threshold -1.5

  # Check a different configured variable
  gigaton netzero data/ensemble.csv --variable "Kyoto gases"

  # Plain labels for terminals without color support
  gigaton netzero data/ensemble.csv --color no`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGigatonNetZero(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run netzero listing", err)
		}
	},
}
