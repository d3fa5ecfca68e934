package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCohortResults outputs the resolved cohort memberships, dispatching based on the output format configured.
func WriteCohortResults(results []schema.CohortResult, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeCohortJSONResults(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCohortCSVResults(results, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.XLSXOut:
		if err := requireOutputFile(cfg, "xlsx"); err != nil {
			return err
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGridXLSX(w, "Cohorts", cohortGrid(results))
		}, "Wrote XLSX")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCohortTable(results, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeCohortTable generates and writes the human-readable table.
func writeCohortTable(results []schema.CohortResult, duration time.Duration, writer io.Writer) error {
	out := tablewriter.NewWriter(writer)
	out.Header([]string{"Cohort", "Scenarios", "Categories", "Members"})
	out.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, r := range results {
		data = append(data, []string{
			r.Name,
			strconv.Itoa(r.Count),
			strings.Join(r.Categories, ", "),
			schema.FormatMembers(r.Members, schema.MaxMembersShown),
		})
	}

	if err := out.Bulk(data); err != nil {
		return err
	}
	if err := out.Render(); err != nil {
		return err
	}
	memberships := 0
	for _, r := range results {
		memberships += r.Count
	}
	if _, err := fmt.Fprintf(writer, "Resolved %d cohorts covering %d scenario memberships\n",
		len(results), memberships); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Listing completed in %v.\n", duration); err != nil {
		return err
	}
	return nil
}

// cohortGrid renders the listing as a plain string grid, header row first.
// Machine-readable output always carries the full roster.
func cohortGrid(results []schema.CohortResult) [][]string {
	grid := [][]string{{"cohort", "count", "categories", "members"}}
	for _, r := range results {
		grid = append(grid, []string{
			r.Name,
			strconv.Itoa(r.Count),
			strings.Join(r.Categories, ", "),
			schema.FormatMembers(r.Members, 0),
		})
	}
	return grid
}

// writeCohortCSVResults handles opening the file and calling the CSV writer.
func writeCohortCSVResults(results []schema.CohortResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		for _, rec := range cohortGrid(results) {
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote CSV")
}

// writeCohortJSONResults handles opening the file and calling the JSON writer.
func writeCohortJSONResults(results []schema.CohortResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, results)
	}, "Wrote JSON")
}
