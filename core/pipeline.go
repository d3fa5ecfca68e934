package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"
)

// NetZeroRowLabel is the sub-header of the year-of-net-zero row.
const NetZeroRowLabel = "Net zero"

// cellAdd is one indicator value bound for the accumulator.
type cellAdd struct {
	cohort    string
	header    string
	subHeader string
	kind      schema.IndicatorKind
	value     float64
}

// rowReg is one row registration bound for the accumulator.
type rowReg struct {
	header    string
	subHeader string
	kind      schema.IndicatorKind
}

// variableBlock is everything one worker produced for a single variable.
// Each block owns a disjoint set of rows; blocks merge in configured
// variable order, so the report is identical regardless of worker count.
type variableBlock struct {
	index    int
	rows     []rowReg
	adds     []cellAdd
	warnings []string
}

// BuildReport computes the full cohort report from a loaded ensemble:
// every configured variable's indicator rows, aggregated per cohort and
// finalized into a deterministic summary table.
func BuildReport(ctx context.Context, cfg *contract.Config, ensemble *schema.Ensemble) (*schema.SummaryTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	acc := NewAccumulator(cfg.CohortNames())
	for _, skipped := range ensemble.Skipped {
		acc.Warn(fmt.Sprintf("variable %q skipped: %s", skipped.Variable, skipped.Reason))
	}
	for _, cohort := range cohortMemberships(cfg, ensemble) {
		if cohort.Count == 0 {
			acc.Warn(fmt.Sprintf("cohort %q matched no scenarios", cohort.Name))
		}
	}

	for _, block := range computeVariableBlocks(cfg, ensemble) {
		for _, row := range block.rows {
			if err := acc.RegisterRow(row.header, row.subHeader, row.kind); err != nil {
				return nil, err
			}
		}
		for _, warning := range block.warnings {
			acc.Warn(warning)
		}
		for _, add := range block.adds {
			if err := acc.Add(add.cohort, add.header, add.subHeader, add.kind, add.value); err != nil {
				return nil, err
			}
		}
	}
	return acc.Finalize()
}

// computeVariableBlocks processes all variables in parallel using a worker
// pool. Variables are independent, so workers share nothing; the collected
// blocks are reordered by variable index before the merge.
func computeVariableBlocks(cfg *contract.Config, ensemble *schema.Ensemble) []variableBlock {
	tables := ensemble.Tables
	if len(tables) == 0 {
		return nil
	}

	jobCh := make(chan int, len(tables))
	blockCh := make(chan variableBlock, len(tables))
	var wg sync.WaitGroup

	// Start worker pool
	for range cfg.Workers {
		wg.Go(func() {
			for idx := range jobCh {
				table := tables[idx]
				spec, _ := cfg.FindVariable(table.Variable)
				block := computeVariableBlock(cfg, spec, table, ensemble.Metadata)
				block.index = idx
				blockCh <- block
			}
		})
	}

	for i := range tables {
		jobCh <- i
	}
	close(jobCh)

	wg.Wait()
	close(blockCh)

	blocks := make([]variableBlock, len(tables))
	for block := range blockCh {
		blocks[block.index] = block
	}
	return blocks
}

// computeVariableBlock computes one variable's indicator rows across all of
// its scenarios. Row order within a block: snapshots in reference-year
// order, annual changes in year-pair order, then the net-zero row.
func computeVariableBlock(cfg *contract.Config, spec contract.VariableSpec, table *schema.SeriesTable, meta *schema.Metadata) variableBlock {
	var block variableBlock

	for _, year := range cfg.ReferenceYears {
		block.rows = append(block.rows, rowReg{spec.Name, strconv.Itoa(year), schema.SnapshotKind})
	}
	for _, pair := range cfg.YearPairs {
		block.rows = append(block.rows, rowReg{spec.Name, pair.String(), schema.ChangeKind})
	}
	if spec.NetZero {
		block.rows = append(block.rows, rowReg{spec.Name, NetZeroRowLabel, schema.NetZeroKind})
	}

	for _, key := range table.Scenarios() {
		category, ok := meta.Category(key)
		if !ok {
			continue // no metadata, no cohort membership
		}
		cohorts := matchingCohorts(cfg, category)
		if len(cohorts) == 0 {
			continue
		}
		series := table.Rows[key]

		for _, year := range cfg.ReferenceYears {
			if value, ok := Snapshot(series, year); ok {
				block.addAll(cohorts, spec.Name, strconv.Itoa(year), schema.SnapshotKind, value)
			}
		}
		for _, pair := range cfg.YearPairs {
			if value, ok := AnnualChange(series, pair); ok {
				block.addAll(cohorts, spec.Name, pair.String(), schema.ChangeKind, value)
			}
		}
		if spec.NetZero {
			year, err := NetZeroYear(series, cfg.Threshold)
			if err != nil {
				block.warnings = append(block.warnings, fmt.Sprintf("net zero %q for %s: %v", spec.Name, key, err))
				continue
			}
			block.addAll(cohorts, spec.Name, NetZeroRowLabel, schema.NetZeroKind, year)
		}
	}
	return block
}

// addAll fans one value out to every cohort the scenario belongs to.
func (b *variableBlock) addAll(cohorts []string, header, subHeader string, kind schema.IndicatorKind, value float64) {
	for _, cohort := range cohorts {
		b.adds = append(b.adds, cellAdd{
			cohort:    cohort,
			header:    header,
			subHeader: subHeader,
			kind:      kind,
			value:     value,
		})
	}
}

// matchingCohorts returns the cohort names whose category filters accept
// the given label, in configured order.
func matchingCohorts(cfg *contract.Config, category string) []string {
	var names []string
	for _, spec := range cfg.Cohorts {
		if spec.Matches(category) {
			names = append(names, spec.Name)
		}
	}
	return names
}

// cohortMemberships resolves every cohort's scenario membership across the
// whole ensemble, in configured cohort order.
func cohortMemberships(cfg *contract.Config, ensemble *schema.Ensemble) []schema.CohortResult {
	scenarios := ensemble.Scenarios()
	results := make([]schema.CohortResult, 0, len(cfg.Cohorts))
	for _, spec := range cfg.Cohorts {
		result := schema.CohortResult{
			Name:       spec.Name,
			Categories: append([]string(nil), spec.Categories...),
		}
		for _, key := range scenarios {
			if category, ok := ensemble.Metadata.Category(key); ok && spec.Matches(category) {
				result.Members = append(result.Members, key)
			}
		}
		result.Count = len(result.Members)
		results = append(results, result)
	}
	return results
}

// activeTable picks the series table for the single-variable commands:
// the --variable flag when set, the first configured variable otherwise.
func activeTable(cfg *contract.Config, ensemble *schema.Ensemble) (*schema.SeriesTable, error) {
	name := cfg.ActiveVariable
	if name == "" {
		if len(cfg.Variables) == 0 {
			return nil, errors.New("no variables configured")
		}
		name = cfg.Variables[0].Name
	}

	table, ok := ensemble.Table(name)
	if !ok {
		for _, skipped := range ensemble.Skipped {
			if skipped.Variable == name {
				return nil, fmt.Errorf("variable %q was skipped at load: %s", name, skipped.Reason)
			}
		}
		return nil, fmt.Errorf("variable %q is not in the loaded ensemble", name)
	}
	return table, nil
}

// buildNetZeroResults computes the per-scenario net-zero table for one
// variable. Scenarios with an undefined interpolation are skipped with a
// warning instead of failing the whole listing.
func buildNetZeroResults(cfg *contract.Config, table *schema.SeriesTable, meta *schema.Metadata) []schema.NetZeroResult {
	results := make([]schema.NetZeroResult, 0, len(table.Rows))
	for _, key := range table.Scenarios() {
		category, _ := meta.Category(key)
		year, err := NetZeroYear(table.Rows[key], cfg.Threshold)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s", key), err)
			continue
		}
		results = append(results, schema.NetZeroResult{
			Model:    key.Model,
			Scenario: key.Scenario,
			Category: category,
			Year:     year,
			Crossed:  !math.IsInf(year, 1),
		})
	}
	return results
}

// buildChangeResults computes the per-scenario annual change table for one
// variable. A missing endpoint leaves that pair's rate absent, never zero.
func buildChangeResults(cfg *contract.Config, table *schema.SeriesTable, meta *schema.Metadata) []schema.ChangeResult {
	results := make([]schema.ChangeResult, 0, len(table.Rows))
	for _, key := range table.Scenarios() {
		category, _ := meta.Category(key)
		result := schema.ChangeResult{
			Model:    key.Model,
			Scenario: key.Scenario,
			Category: category,
			Rates:    make(map[string]float64, len(cfg.YearPairs)),
		}
		for _, pair := range cfg.YearPairs {
			if rate, ok := AnnualChange(table.Rows[key], pair); ok {
				result.Rates[pair.String()] = rate
			}
		}
		results = append(results, result)
	}
	return results
}

// buildSnapshotResults computes the per-scenario reference-year table for
// one variable.
func buildSnapshotResults(cfg *contract.Config, table *schema.SeriesTable, meta *schema.Metadata) []schema.SnapshotResult {
	results := make([]schema.SnapshotResult, 0, len(table.Rows))
	for _, key := range table.Scenarios() {
		category, _ := meta.Category(key)
		result := schema.SnapshotResult{
			Model:    key.Model,
			Scenario: key.Scenario,
			Category: category,
			Values:   make(map[int]float64, len(cfg.ReferenceYears)),
		}
		for _, year := range cfg.ReferenceYears {
			if value, ok := Snapshot(table.Rows[key], year); ok {
				result.Values[year] = value
			}
		}
		results = append(results, result)
	}
	return results
}
