package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSnapshotResults outputs the per-scenario reference-year listing, dispatching based on the output format configured.
func WriteSnapshotResults(results []schema.SnapshotResult, series *schema.SeriesTable, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeSnapshotJSONResults(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSnapshotCSVResults(results, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.XLSXOut:
		if err := requireOutputFile(cfg, "xlsx"); err != nil {
			return err
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGridXLSX(w, "Snapshot", snapshotGrid(results, cfg))
		}, "Wrote XLSX")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSnapshotTable(results, series, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeSnapshotTable generates and writes the human-readable table.
func writeSnapshotTable(results []schema.SnapshotResult, series *schema.SeriesTable, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	out := tablewriter.NewWriter(writer)
	headers := []string{"Model", "Scenario", "Category"}
	for _, year := range cfg.ReferenceYears {
		headers = append(headers, strconv.Itoa(year))
	}
	out.Header(headers)
	out.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range results {
		row := []string{r.Model, r.Scenario, r.Category}
		for _, year := range cfg.ReferenceYears {
			row = append(row, renderSnapshotCell(r, year, cfg.Precision))
		}
		data = append(data, row)
	}

	if err := out.Bulk(data); err != nil {
		return err
	}
	if err := out.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing snapshots for %d scenarios of %s (%s)\n",
		len(results), series.Variable, series.Unit); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Listing completed in %v.\n", duration); err != nil {
		return err
	}
	return nil
}

// renderSnapshotCell formats one reference-year value, or the placeholder
// when the year was not observed in the series.
func renderSnapshotCell(r schema.SnapshotResult, year int, precision int) string {
	value, ok := r.Values[year]
	if !ok {
		return schema.PlaceholderCell
	}
	return schema.FormatIndicatorValue(value, precision)
}

// snapshotGrid renders the listing as a plain string grid, header row first.
func snapshotGrid(results []schema.SnapshotResult, cfg *contract.Config) [][]string {
	header := []string{"model", "scenario", "category"}
	for _, year := range cfg.ReferenceYears {
		header = append(header, strconv.Itoa(year))
	}
	grid := [][]string{header}
	for _, r := range results {
		row := []string{r.Model, r.Scenario, r.Category}
		for _, year := range cfg.ReferenceYears {
			row = append(row, renderSnapshotCell(r, year, cfg.Precision))
		}
		grid = append(grid, row)
	}
	return grid
}

// writeSnapshotCSVResults handles opening the file and calling the CSV writer.
func writeSnapshotCSVResults(results []schema.SnapshotResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		for _, rec := range snapshotGrid(results, cfg) {
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote CSV")
}

// writeSnapshotJSONResults handles opening the file and calling the JSON writer.
func writeSnapshotJSONResults(results []schema.SnapshotResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, results)
	}, "Wrote JSON")
}
