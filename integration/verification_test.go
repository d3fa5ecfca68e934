//go:build basic

package integration

import (
	"encoding/csv"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verificationCSV holds pathways whose indicator values are simple enough to
// verify by hand: one early crossing, one late, one that touches zero exactly
// at a sample year, one that never crosses and one with a gap in the middle.
const verificationCSV = `Model,Scenario,Region,Variable,Unit,2020,2030,2040,2050
TESTMODEL,EarlyCross,World,Emissions|CO2,Gt CO2/yr,10,-10,-20,-30
TESTMODEL,MidCross,World,Emissions|CO2,Gt CO2/yr,40,20,5,-2
TESTMODEL,ExactHold,World,Emissions|CO2,Gt CO2/yr,30,10,0,-6
TESTMODEL,NeverCross,World,Emissions|CO2,Gt CO2/yr,45,44,43,42
TESTMODEL,GapCross,World,Emissions|CO2,Gt CO2/yr,30,NA,NA,-30
`

// verificationYAML is the minimal report shape for the verification runs.
const verificationYAML = `region: World
threshold: 0
reference-years: [2030]
year-pairs:
  - "2020-2030"
  - "2030-2050"
variables:
  - name: Net CO2 emissions
    source: Emissions|CO2
    unit: Gt CO2/yr
    net-zero: true
`

// writeVerificationFixture writes the hand-checked dataset and config into a
// fresh directory and returns its path.
func writeVerificationFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"ensemble.csv":  verificationCSV,
		".gigaton.yaml": verificationYAML,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// runVerificationCommand runs the binary in dir and fails the test on error.
func runVerificationCommand(t *testing.T, gigatonPath, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command(gigatonPath, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "command failed: %s\nOutput: %s", cmd.String(), string(output))
}

// readCSVFile reads all records of a CSV file produced by a verification run.
func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

// TestNetZeroVerification runs gigaton netzero and verifies the interpolated
// crossing year of every scenario against values computed by hand.
func TestNetZeroVerification(t *testing.T) {
	gigatonPath := getGigatonBinary()
	dir := writeVerificationFixture(t)

	outFile := filepath.Join(dir, "netzero.csv")
	runVerificationCommand(t, gigatonPath, dir, "netzero", "ensemble.csv",
		"--archive-backend", "none", "--output", "csv", "--output-file", outFile)

	// Columns: rank, model, scenario, category, year, label, crossed
	records := readCSVFile(t, outFile)
	require.Greater(t, len(records), 1)
	years := make(map[string]string)
	for _, record := range records[1:] {
		require.Len(t, record, 7)
		years[record[2]] = record[4]
	}

	// EarlyCross:  10 -> -10 over 2020-2030, slope -2, crossing offset 5
	// MidCross:    5 -> -2 over 2040-2050, slope -0.7, offset floor(5/0.7) = 7
	// ExactHold:   0 at 2040 holds the threshold, first year below is 2041
	// GapCross:    30 -> -30 over 2020-2050 with 2030/2040 missing, offset 15
	expected := map[string]string{
		"EarlyCross": "2026",
		"MidCross":   "2048",
		"ExactHold":  "2041",
		"NeverCross": "never",
		"GapCross":   "2036",
	}
	for scenario, year := range expected {
		t.Run(scenario, func(t *testing.T) {
			got, ok := years[scenario]
			require.True(t, ok, "scenario %s missing from listing", scenario)
			assert.Equal(t, year, got, "net-zero year mismatch for %s", scenario)
		})
	}
}

// TestChangesVerification runs gigaton changes and verifies the annual rates
// against values computed by hand.
func TestChangesVerification(t *testing.T) {
	gigatonPath := getGigatonBinary()
	dir := writeVerificationFixture(t)

	outFile := filepath.Join(dir, "changes.csv")
	runVerificationCommand(t, gigatonPath, dir, "changes", "ensemble.csv",
		"--archive-backend", "none", "--output", "csv", "--output-file", outFile)

	// Columns: model, scenario, category, 2020-2030, 2030-2050
	records := readCSVFile(t, outFile)
	require.Greater(t, len(records), 1)
	require.Equal(t, []string{"model", "scenario", "category", "2020-2030", "2030-2050"}, records[0])
	rates := make(map[string][]string)
	for _, record := range records[1:] {
		require.Len(t, record, 5)
		rates[record[1]] = []string{record[3], record[4]}
	}

	// Rates are endpoint difference over year count; pairs touching the
	// missing 2030 value of GapCross stay undefined.
	expected := map[string][]string{
		"EarlyCross": {"-2.0", "-1.0"},
		"MidCross":   {"-2.0", "-1.1"},
		"ExactHold":  {"-2.0", "-0.8"},
		"NeverCross": {"-0.1", "-0.1"},
		"GapCross":   {"-", "-"},
	}
	for scenario, want := range expected {
		t.Run(scenario, func(t *testing.T) {
			got, ok := rates[scenario]
			require.True(t, ok, "scenario %s missing from listing", scenario)
			assert.Equal(t, want, got, "annual change mismatch for %s", scenario)
		})
	}
}
