package archive

import (
	"errors"
	"fmt"

	"github.com/gigaton-io/gigaton/internal/parquet"
)

// ExecuteArchiveExport performs the actual export of archived report data to Parquet files.
func ExecuteArchiveExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the report store
	store := Manager.GetReportStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get archive status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no archived report data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total report runs: %d\n", status.TotalRuns)
	fmt.Printf("Total cell records: %d\n", status.TableSizes[summaryCellsTable])

	// Retrieve all report runs
	reportRuns, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve report runs: %w", err)
	}

	// Retrieve all summary cells
	summaryCells, err := store.GetAllCells()
	if err != nil {
		return fmt.Errorf("failed to retrieve summary cells: %w", err)
	}

	// Convert to Parquet format
	parquetReportRuns := parquet.ConvertReportRunRecords(reportRuns)
	parquetSummaryCells := parquet.ConvertSummaryCellRecords(summaryCells)

	// Write report runs to Parquet
	reportRunsFile := outputFile + ".report_runs.parquet"
	if err := parquet.WriteReportRunsParquet(parquetReportRuns, reportRunsFile); err != nil {
		return fmt.Errorf("failed to write report runs: %w", err)
	}
	fmt.Printf("Exported %d report runs to: %s\n", len(parquetReportRuns), reportRunsFile)

	// Write summary cells to Parquet
	summaryCellsFile := outputFile + ".summary_cells.parquet"
	if err := parquet.WriteSummaryCellsParquet(parquetSummaryCells, summaryCellsFile); err != nil {
		return fmt.Errorf("failed to write summary cells: %w", err)
	}
	fmt.Printf("Exported %d summary cell records to: %s\n", len(parquetSummaryCells), summaryCellsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
