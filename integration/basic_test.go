//go:build basic

package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGigatonReportBasic runs the full summary report end to end without an
// archive backend.
func TestGigatonReportBasic(t *testing.T) {
	dir := writeEnsembleFixture(t)

	// Plain table to stdout
	err := runGigatonCommand(t, dir, "report", "ensemble.csv", "--metadata", "meta.csv", "--archive-backend", "none")
	require.NoError(t, err)

	// CSV export to file
	outFile := filepath.Join(dir, "summary.csv")
	err = runGigatonCommand(t, dir, "report", "ensemble.csv", "--metadata", "meta.csv", "--archive-backend", "none",
		"--output", "csv", "--output-file", outFile)
	require.NoError(t, err)

	info, err := os.Stat(outFile)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

// TestGigatonListingsBasic runs every single-variable listing command.
func TestGigatonListingsBasic(t *testing.T) {
	dir := writeEnsembleFixture(t)

	for _, command := range []string{"netzero", "changes", "snapshot", "cohorts"} {
		t.Run(command, func(t *testing.T) {
			err := runGigatonCommand(t, dir, command, "ensemble.csv", "--metadata", "meta.csv", "--archive-backend", "none")
			require.NoError(t, err)
		})
	}
}

// TestGigatonCheckBasic validates the fixture inputs against the report shape.
func TestGigatonCheckBasic(t *testing.T) {
	dir := writeEnsembleFixture(t)

	err := runGigatonCommand(t, dir, "check", "ensemble.csv", "--metadata", "meta.csv", "--archive-backend", "none")
	require.NoError(t, err)
}

// TestGigatonSQLiteArchiveBasic runs a report against a SQLite archive and
// inspects it through the archive subcommands.
func TestGigatonSQLiteArchiveBasic(t *testing.T) {
	dir := writeEnsembleFixture(t)
	dbPath := filepath.Join(dir, "archive.db")

	err := runGigatonCommand(t, dir, "report", "ensemble.csv", "--metadata", "meta.csv",
		"--archive-backend", "sqlite", "--archive-db-connect", dbPath)
	require.NoError(t, err)

	err = runGigatonCommand(t, dir, "archive", "status",
		"--archive-backend", "sqlite", "--archive-db-connect", dbPath)
	require.NoError(t, err)

	exportFile := filepath.Join(dir, "export")
	err = runGigatonCommand(t, dir, "archive", "export",
		"--archive-backend", "sqlite", "--archive-db-connect", dbPath, "--output-file", exportFile)
	require.NoError(t, err)

	// The export writes one Parquet file per archived dataset
	for _, suffix := range []string{".report_runs.parquet", ".summary_cells.parquet"} {
		info, err := os.Stat(exportFile + suffix)
		require.NoError(t, err)
		require.Greater(t, info.Size(), int64(0))
	}
}
