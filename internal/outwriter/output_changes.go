package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteChangeResults outputs the per-scenario annual change listing, dispatching based on the output format configured.
func WriteChangeResults(results []schema.ChangeResult, series *schema.SeriesTable, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeChangeJSONResults(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeChangeCSVResults(results, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.XLSXOut:
		if err := requireOutputFile(cfg, "xlsx"); err != nil {
			return err
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGridXLSX(w, "Annual change", changeGrid(results, cfg))
		}, "Wrote XLSX")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeChangeTable(results, series, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeChangeTable generates and writes the human-readable table.
func writeChangeTable(results []schema.ChangeResult, series *schema.SeriesTable, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	out := tablewriter.NewWriter(writer)
	headers := []string{"Model", "Scenario", "Category"}
	for _, pair := range cfg.YearPairs {
		headers = append(headers, pair.String())
	}
	out.Header(headers)
	out.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range results {
		row := []string{r.Model, r.Scenario, r.Category}
		for _, pair := range cfg.YearPairs {
			row = append(row, renderRateCell(r, pair, cfg.Precision))
		}
		data = append(data, row)
	}

	if err := out.Bulk(data); err != nil {
		return err
	}
	if err := out.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing annual change for %d scenarios of %s (%s)\n",
		len(results), series.Variable, series.Unit); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Listing completed in %v.\n", duration); err != nil {
		return err
	}
	return nil
}

// renderRateCell formats one year-pair rate, or the placeholder when an
// endpoint was missing and the rate is undefined.
func renderRateCell(r schema.ChangeResult, pair contract.YearPair, precision int) string {
	rate, ok := r.Rates[pair.String()]
	if !ok {
		return schema.PlaceholderCell
	}
	return schema.FormatIndicatorValue(rate, precision)
}

// changeGrid renders the listing as a plain string grid, header row first.
func changeGrid(results []schema.ChangeResult, cfg *contract.Config) [][]string {
	header := []string{"model", "scenario", "category"}
	for _, pair := range cfg.YearPairs {
		header = append(header, pair.String())
	}
	grid := [][]string{header}
	for _, r := range results {
		row := []string{r.Model, r.Scenario, r.Category}
		for _, pair := range cfg.YearPairs {
			row = append(row, renderRateCell(r, pair, cfg.Precision))
		}
		grid = append(grid, row)
	}
	return grid
}

// writeChangeCSVResults handles opening the file and calling the CSV writer.
func writeChangeCSVResults(results []schema.ChangeResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		for _, rec := range changeGrid(results, cfg) {
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote CSV")
}

// writeChangeJSONResults handles opening the file and calling the JSON writer.
func writeChangeJSONResults(results []schema.ChangeResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, results)
	}, "Wrote JSON")
}
