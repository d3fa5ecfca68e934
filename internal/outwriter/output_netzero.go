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

// WriteNetZeroResults outputs the per-scenario net-zero listing, dispatching based on the output format configured.
func WriteNetZeroResults(results []schema.NetZeroResult, series *schema.SeriesTable, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeNetZeroJSONResults(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeNetZeroCSVResults(results, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.XLSXOut:
		if err := requireOutputFile(cfg, "xlsx"); err != nil {
			return err
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGridXLSX(w, "Net zero", netZeroGrid(results))
		}, "Wrote XLSX")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeNetZeroTable(results, series, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeNetZeroTable generates and writes the human-readable table.
func writeNetZeroTable(results []schema.NetZeroResult, series *schema.SeriesTable, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	out := tablewriter.NewWriter(writer)
	out.Header([]string{"Rank", "Model", "Scenario", "Category", "Year", "Label"})
	out.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, r := range results {
		label := contract.GetPlainLabel(r.Year)
		if cfg.UseColors {
			label = contract.GetColorLabel(r.Year)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.Model,
			r.Scenario,
			r.Category,
			schema.FormatNetZeroYear(r.Year),
			label,
		})
	}

	if err := out.Bulk(data); err != nil {
		return err
	}
	if err := out.Render(); err != nil {
		return err
	}
	crossed := 0
	for _, r := range results {
		if r.Crossed {
			crossed++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d scenarios for %s (%s); %d cross the threshold\n",
		len(results), series.Variable, series.Unit, crossed); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Listing completed in %v.\n", duration); err != nil {
		return err
	}
	return nil
}

// netZeroGrid renders the listing as a plain string grid, header row first.
func netZeroGrid(results []schema.NetZeroResult) [][]string {
	grid := [][]string{{"rank", "model", "scenario", "category", "year", "label", "crossed"}}
	for i, r := range results {
		grid = append(grid, []string{
			strconv.Itoa(i + 1),
			r.Model,
			r.Scenario,
			r.Category,
			schema.FormatNetZeroYear(r.Year),
			contract.GetPlainLabel(r.Year),
			strconv.FormatBool(r.Crossed),
		})
	}
	return grid
}

// writeNetZeroCSVResults handles opening the file and calling the CSV writer.
func writeNetZeroCSVResults(results []schema.NetZeroResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		for _, rec := range netZeroGrid(results) {
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote CSV")
}

// writeNetZeroJSONResults handles opening the file and calling the JSON writer.
func writeNetZeroJSONResults(results []schema.NetZeroResult, cfg *contract.Config) error {
	// Prepare the data structure for JSON with rank, rendered year and label added
	type JSONNetZeroResult struct {
		Rank  int    `json:"rank"`
		Year  string `json:"year"`
		Label string `json:"label"`
		schema.NetZeroResult
	}

	output := make([]JSONNetZeroResult, len(results))
	for i, r := range results {
		output[i] = JSONNetZeroResult{
			Rank:          i + 1,
			Year:          schema.FormatNetZeroYear(r.Year),
			Label:         contract.GetPlainLabel(r.Year),
			NetZeroResult: r,
		}
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, output)
	}, "Wrote JSON")
}
