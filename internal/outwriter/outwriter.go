// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"
	"golang.org/x/term"
)

// LogReportHeader prints a concise, 2-line header for each report phase.
// It stays silent when a machine-readable format streams to stdout, so the
// emitted CSV or JSON remains parseable.
func LogReportHeader(cfg *contract.Config) {
	if cfg.Output != schema.TextOut && cfg.OutputFile == "" {
		return
	}

	datasetName := filepath.Base(cfg.DatasetPath)
	if datasetName == "" || datasetName == "." {
		datasetName = "dataset"
	}

	// Line 1: The dataset summary (file and region)
	fmt.Printf("🔎 Dataset: %s (Region: %s)\n", datasetName, cfg.Region)

	// Line 2: The report shape being computed
	fmt.Printf("📐 Shape: %d variables, %d cohorts, threshold %g\n",
		len(cfg.Variables), len(cfg.Cohorts), cfg.Threshold)
}

// getMaxTableLabelWidth calculates the maximum width for variable labels in
// table output based on terminal width and the number of cohort columns.
func getMaxTableLabelWidth(cfg *contract.Config, cohortColumns int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 120 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the indicator column with table formatting
	baseWidth := 15

	// Each cohort column renders up to "median [q1, q3]" plus separators
	baseWidth += 24 * cohortColumns

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 10

	// Calculate available space for the variable label
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable label width
		return 15
	}
	if available > 50 {
		// Maximum label width to prevent overly long rows
		return 50
	}
	return available
}
