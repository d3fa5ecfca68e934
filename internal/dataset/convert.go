package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"
)

// Fixed column names recognized in file headers. Matching is
// case-insensitive; unknown non-year columns are ignored.
const (
	modelColumn    = "model"
	scenarioColumn = "scenario"
	regionColumn   = "region"
	variableColumn = "variable"
	unitColumn     = "unit"
	categoryColumn = "category"
)

// datasetLayout maps recognized header names to column positions.
type datasetLayout struct {
	model    int
	scenario int
	region   int
	variable int
	unit     int
	years    map[int]int // calendar year -> column index
}

// rawRow is one dataset row before variable selection and unit conversion.
type rawRow struct {
	key      schema.ScenarioKey
	region   string
	variable string
	unit     string
	values   map[int]float64
}

// parseDatasetRecords turns raw records into typed rows. The first record is
// the header; blank records are skipped.
func parseDatasetRecords(records [][]string) ([]rawRow, error) {
	if len(records) == 0 {
		return nil, errors.New("file is empty")
	}
	layout, err := parseDatasetLayout(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]rawRow, 0, len(records)-1)
	for i, record := range records[1:] {
		row, err := parseDatasetRow(layout, record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if row == nil {
			continue
		}
		rows = append(rows, *row)
	}
	return rows, nil
}

// parseDatasetLayout resolves the column positions from the header record.
// Year columns are any header that parses as a positive integer.
func parseDatasetLayout(header []string) (*datasetLayout, error) {
	layout := &datasetLayout{
		model:    -1,
		scenario: -1,
		region:   -1,
		variable: -1,
		unit:     -1,
		years:    make(map[int]int),
	}

	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case modelColumn:
			layout.model = i
		case scenarioColumn:
			layout.scenario = i
		case regionColumn:
			layout.region = i
		case variableColumn:
			layout.variable = i
		case unitColumn:
			layout.unit = i
		default:
			if year, err := strconv.Atoi(name); err == nil && year > 0 {
				layout.years[year] = i
			}
		}
	}

	for _, col := range []struct {
		name  string
		index int
	}{
		{modelColumn, layout.model},
		{scenarioColumn, layout.scenario},
		{regionColumn, layout.region},
		{variableColumn, layout.variable},
		{unitColumn, layout.unit},
	} {
		if col.index < 0 {
			return nil, fmt.Errorf("header is missing the %q column", col.name)
		}
	}
	if len(layout.years) == 0 {
		return nil, errors.New("header has no year columns")
	}
	return layout, nil
}

// parseDatasetRow parses one data record. Returns (nil, nil) for blank rows.
func parseDatasetRow(layout *datasetLayout, record []string) (*rawRow, error) {
	if isBlankRecord(record) {
		return nil, nil
	}

	row := &rawRow{
		key: schema.ScenarioKey{
			Model:    cellAt(record, layout.model),
			Scenario: cellAt(record, layout.scenario),
		},
		region:   cellAt(record, layout.region),
		variable: cellAt(record, layout.variable),
		unit:     cellAt(record, layout.unit),
		values:   make(map[int]float64, len(layout.years)),
	}
	if row.key.Model == "" || row.key.Scenario == "" {
		return nil, errors.New("model and scenario cannot be empty")
	}
	if row.variable == "" {
		return nil, errors.New("variable cannot be empty")
	}

	for year, col := range layout.years {
		value, present, err := parseValueCell(cellAt(record, col))
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}
		if present {
			row.values[year] = value
		}
	}
	return row, nil
}

// parseValueCell parses one year cell. Blank cells and the NA sentinels are
// missing values; anything else must parse as a finite number.
func parseValueCell(s string) (float64, bool, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, false, nil
	}
	switch strings.ToUpper(trimmed) {
	case "NA", "N/A":
		return 0, false, nil
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", contract.ErrNonNumericValue, s)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false, fmt.Errorf("%w: %q", contract.ErrNonNumericValue, s)
	}
	return value, true, nil
}

// parseMetadataRecords turns raw metadata records into the joined table.
// Columns beyond model, scenario and category are kept as attributes.
func parseMetadataRecords(records [][]string) (*schema.Metadata, error) {
	meta := schema.NewMetadata()
	if len(records) == 0 {
		return nil, errors.New("file is empty")
	}

	model, scenario, category := -1, -1, -1
	extras := make(map[string]int)
	for i, name := range records[0] {
		trimmed := strings.TrimSpace(name)
		switch strings.ToLower(trimmed) {
		case modelColumn:
			model = i
		case scenarioColumn:
			scenario = i
		case categoryColumn:
			category = i
		default:
			if trimmed != "" {
				extras[trimmed] = i
			}
		}
	}
	if model < 0 || scenario < 0 || category < 0 {
		return nil, fmt.Errorf("header needs %q, %q and %q columns", modelColumn, scenarioColumn, categoryColumn)
	}

	for i, record := range records[1:] {
		if isBlankRecord(record) {
			continue
		}
		key := schema.ScenarioKey{
			Model:    cellAt(record, model),
			Scenario: cellAt(record, scenario),
		}
		if key.Model == "" || key.Scenario == "" {
			return nil, fmt.Errorf("row %d: model and scenario cannot be empty", i+2)
		}
		meta.Categories[key] = cellAt(record, category)

		for name, col := range extras {
			value := cellAt(record, col)
			if value == "" {
				continue
			}
			if meta.Attributes[key] == nil {
				meta.Attributes[key] = make(map[string]string)
			}
			meta.Attributes[key][name] = value
		}
	}
	return meta, nil
}

// buildEnsemble applies region filtering, renames, excludes and unit
// conversion, producing one series table per configured variable. A variable
// whose rows carry an unconvertible unit is skipped, not fatal; the report
// carries on without it.
func buildEnsemble(cfg *contract.Config, rows []rawRow, meta *schema.Metadata) (*schema.Ensemble, error) {
	bySource := groupRowsBySource(cfg, rows)

	ensemble := &schema.Ensemble{
		Tables:   make([]*schema.SeriesTable, 0, len(cfg.Variables)),
		Metadata: meta,
	}
	for _, spec := range cfg.Variables {
		table, err := buildSeriesTable(cfg, spec, bySource[spec.Source])
		if err != nil {
			if errors.Is(err, contract.ErrMissingUnitConversion) {
				ensemble.Skipped = append(ensemble.Skipped, schema.SkippedVariable{
					Variable: spec.Name,
					Reason:   err.Error(),
				})
				continue
			}
			return nil, err
		}
		ensemble.Tables = append(ensemble.Tables, table)
	}
	return ensemble, nil
}

// groupRowsBySource filters rows down to the configured region, drops
// excluded scenarios, applies the rename map and groups by source variable.
func groupRowsBySource(cfg *contract.Config, rows []rawRow) map[string][]rawRow {
	bySource := make(map[string][]rawRow)
	for _, row := range rows {
		if !strings.EqualFold(row.region, cfg.Region) {
			continue
		}
		if contract.ShouldIgnore(row.key.String(), cfg.Excludes) {
			continue
		}
		name := row.variable
		if renamed, ok := cfg.Renames[name]; ok {
			name = renamed
		}
		bySource[name] = append(bySource[name], row)
	}
	return bySource
}

// buildSeriesTable converts one variable's rows into the target unit. The
// same scenario may appear across several rows; later values win per year.
func buildSeriesTable(cfg *contract.Config, spec contract.VariableSpec, rows []rawRow) (*schema.SeriesTable, error) {
	table := schema.NewSeriesTable(spec.Name, spec.Unit)
	for _, row := range rows {
		factor, err := cfg.ConversionFactor(row.unit, spec.Unit)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", spec.Name, err)
		}
		series := table.Rows[row.key]
		if series == nil {
			series = make(schema.Series, len(row.values))
			table.Rows[row.key] = series
		}
		for year, value := range row.values {
			series[year] = value * factor
		}
	}
	return table, nil
}

// cellAt returns the trimmed cell at index, or "" past the record's end.
// XLSX readers drop trailing empty cells, so short records are routine.
func cellAt(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

// isBlankRecord reports whether every cell in the record is blank.
func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
