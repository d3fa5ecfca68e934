package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSummaryResults outputs the cohort report, dispatching based on the output format configured.
func WriteSummaryResults(result *schema.SummaryTable, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeSummaryJSONResults(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSummaryCSVResults(result, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.XLSXOut:
		if err := writeSummaryXLSXResults(result, cfg); err != nil {
			return fmt.Errorf("error writing XLSX output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTable(result, cfg, duration, w)
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	writeWarnings(result.Warnings)
	return nil
}

// writeWarnings surfaces report warnings on stderr, away from the data.
func writeWarnings(warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(os.Stderr, "⚠️  %s\n", warning)
	}
}

// writeSummaryTable generates and writes the human-readable report table.
func writeSummaryTable(result *schema.SummaryTable, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	out := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Variable", "Indicator"}
	headers = append(headers, result.Cohorts...)
	out.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	out.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	labelWidth := getMaxTableLabelWidth(cfg, len(result.Cohorts))
	var data [][]string
	for _, row := range result.Rows {
		cells := []string{
			contract.TruncateLabel(row.Header, labelWidth), // Variable
			row.SubHeader, // Indicator
		}
		for _, cohort := range result.Cohorts {
			cells = append(cells, row.RenderCell(cohort, cfg.Precision))
		}
		data = append(data, cells)
	}

	// 4. Render the table
	if err := out.Bulk(data); err != nil {
		return err
	}
	if err := out.Render(); err != nil {
		return err
	}
	// Compute summary stats
	if _, err := fmt.Fprintf(writer, "Summarized %d indicator rows across %d cohorts (%d populated cells)\n",
		result.RowCount(), len(result.Cohorts), result.CellCount()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Report completed in %v with %d workers.\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeSummaryCSVResults handles opening the file and calling the CSV writer.
func writeSummaryCSVResults(result *schema.SummaryTable, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForSummary(csvWriter, result, cfg.Precision)
	}, "Wrote CSV")
}

// writeCSVResultsForSummary writes the report in CSV format, one record per
// indicator row with one rendered column per cohort.
func writeCSVResultsForSummary(w *csv.Writer, result *schema.SummaryTable, precision int) error {
	header := []string{"variable", "indicator", "kind"}
	header = append(header, result.Cohorts...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range result.Rows {
		rec := []string{row.Header, row.SubHeader, string(row.Kind)}
		for _, cohort := range result.Cohorts {
			rec = append(rec, row.RenderCell(cohort, precision))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// JSONCellSummary is the JSON shape of one cohort cell. Statistics are
// rendered as strings so never-crossing years survive the encoding.
type JSONCellSummary struct {
	Count    int    `json:"count"`
	Min      string `json:"min"`
	Max      string `json:"max"`
	Median   string `json:"median"`
	Q1       string `json:"q1"`
	Q3       string `json:"q3"`
	Rendered string `json:"rendered"`
}

// JSONSummaryRow is the JSON shape of one report row.
type JSONSummaryRow struct {
	Variable  string                     `json:"variable"`
	Indicator string                     `json:"indicator"`
	Kind      schema.IndicatorKind       `json:"kind"`
	Cells     map[string]JSONCellSummary `json:"cells"`
}

// JSONSummaryReport is the JSON envelope for the whole report.
type JSONSummaryReport struct {
	Cohorts  []string         `json:"cohorts"`
	Rows     []JSONSummaryRow `json:"rows"`
	Warnings []string         `json:"warnings,omitempty"`
}

// writeSummaryJSONResults handles opening the file and calling the JSON writer.
func writeSummaryJSONResults(result *schema.SummaryTable, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForSummary(w, result, cfg.Precision)
	}, "Wrote JSON")
}

// writeJSONResultsForSummary writes the report in JSON format.
func writeJSONResultsForSummary(w io.Writer, result *schema.SummaryTable, precision int) error {
	rows := make([]JSONSummaryRow, 0, len(result.Rows))
	for _, row := range result.Rows {
		cells := make(map[string]JSONCellSummary, len(row.Cells))
		for _, cohort := range result.Cohorts {
			summary, ok := row.Cell(cohort)
			if !ok {
				continue // absent cohort cells stay absent in JSON too
			}
			cells[cohort] = JSONCellSummary{
				Count:    summary.Count,
				Min:      schema.FormatIndicatorValue(summary.Min, precision),
				Max:      schema.FormatIndicatorValue(summary.Max, precision),
				Median:   schema.FormatIndicatorValue(summary.Median, precision),
				Q1:       schema.FormatIndicatorValue(summary.Q1, precision),
				Q3:       schema.FormatIndicatorValue(summary.Q3, precision),
				Rendered: summary.Render(precision),
			}
		}
		rows = append(rows, JSONSummaryRow{
			Variable:  row.Header,
			Indicator: row.SubHeader,
			Kind:      row.Kind,
			Cells:     cells,
		})
	}
	return writeJSON(w, JSONSummaryReport{
		Cohorts:  result.Cohorts,
		Rows:     rows,
		Warnings: result.Warnings,
	})
}

// writeSummaryXLSXResults writes the report grid to a workbook. A file path
// is required because a workbook cannot stream to stdout.
func writeSummaryXLSXResults(result *schema.SummaryTable, cfg *contract.Config) error {
	if err := requireOutputFile(cfg, "xlsx"); err != nil {
		return err
	}

	grid := [][]string{append([]string{"Variable", "Indicator", "Kind"}, result.Cohorts...)}
	for _, row := range result.Rows {
		cells := []string{row.Header, row.SubHeader, string(row.Kind)}
		for _, cohort := range result.Cohorts {
			cells = append(cells, row.RenderCell(cohort, cfg.Precision))
		}
		grid = append(grid, cells)
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeGridXLSX(w, "Report", grid)
	}, "Wrote XLSX")
}
