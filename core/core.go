// Package core has core logic for indicators, aggregation and ranking.
package core

import (
	"context"
	"time"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/internal/dataset"
	"github.com/gigaton-io/gigaton/internal/outwriter"
	"github.com/gigaton-io/gigaton/schema"
)

// ExecutorFunc defines the function signature for executing different report modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// loadEnsemble loads the configured dataset, printing the report header first
// unless the context suppresses it.
func loadEnsemble(ctx context.Context, cfg *contract.Config) (*schema.Ensemble, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogReportHeader(cfg)
	}
	loader := dataset.NewFileLoader()
	return loader.LoadEnsemble(ctx, cfg)
}

// ExecuteGigatonReport runs the full cohort report and prints the summary table.
// It serves as the main entry point for the 'report' mode.
func ExecuteGigatonReport(ctx context.Context, cfg *contract.Config, mgr contract.ArchiveManager) error {
	start := time.Now()
	ensemble, err := loadEnsemble(ctx, cfg)
	if err != nil {
		return err
	}
	table, err := BuildReport(ctx, cfg, ensemble)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	if err := outwriter.WriteSummaryResults(table, cfg, duration); err != nil {
		return err
	}
	recordReportRun(cfg, mgr, start, ensemble, table)
	return nil
}

// recordReportRun archives a finished report when a store is configured.
// Failures only warn: the report already printed, archival is best effort.
func recordReportRun(cfg *contract.Config, mgr contract.ArchiveManager, start time.Time, ensemble *schema.Ensemble, table *schema.SummaryTable) {
	if mgr == nil {
		return
	}
	store := mgr.GetReportStore()
	if store == nil {
		return
	}
	runID, err := store.BeginRun(start, cfg.DatasetPath, archiveParams(cfg))
	if err != nil {
		contract.LogWarn("Cannot begin archive run", err)
		return
	}
	end := time.Now()
	if err := store.RecordCells(runID, end, table, cfg.Precision); err != nil {
		contract.LogWarn("Cannot archive report cells", err)
		return
	}
	if err := store.EndRun(runID, end, len(ensemble.Scenarios()), len(ensemble.Tables), len(cfg.Cohorts)); err != nil {
		contract.LogWarn("Cannot finish archive run", err)
	}
}

// archiveParams flattens the report shape into the parameter map stored
// alongside an archive run.
func archiveParams(cfg *contract.Config) map[string]any {
	pairs := make([]string, 0, len(cfg.YearPairs))
	for _, pair := range cfg.YearPairs {
		pairs = append(pairs, pair.String())
	}
	variables := make([]string, 0, len(cfg.Variables))
	for _, spec := range cfg.Variables {
		variables = append(variables, spec.Name)
	}
	return map[string]any{
		"region":          cfg.Region,
		"threshold":       cfg.Threshold,
		"precision":       cfg.Precision,
		"reference_years": cfg.ReferenceYears,
		"year_pairs":      pairs,
		"variables":       variables,
		"cohorts":         cfg.CohortNames(),
	}
}

// ExecuteGigatonNetZero lists per-scenario net-zero years for one variable,
// earliest crossing first. It serves as the main entry point for the
// 'netzero' mode.
func ExecuteGigatonNetZero(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	ensemble, err := loadEnsemble(ctx, cfg)
	if err != nil {
		return err
	}
	table, err := activeTable(cfg, ensemble)
	if err != nil {
		return err
	}
	results := buildNetZeroResults(cfg, table, ensemble.Metadata)
	ranked := LimitRows(RankNetZero(results), cfg.ResultLimit)
	duration := time.Since(start)
	return outwriter.WriteNetZeroResults(ranked, table, cfg, duration)
}

// ExecuteGigatonChanges lists per-scenario annual rates of change for one
// variable. It serves as the main entry point for the 'changes' mode.
func ExecuteGigatonChanges(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	ensemble, err := loadEnsemble(ctx, cfg)
	if err != nil {
		return err
	}
	table, err := activeTable(cfg, ensemble)
	if err != nil {
		return err
	}
	results := LimitRows(buildChangeResults(cfg, table, ensemble.Metadata), cfg.ResultLimit)
	duration := time.Since(start)
	return outwriter.WriteChangeResults(results, table, cfg, duration)
}

// ExecuteGigatonSnapshot lists per-scenario reference-year values for one
// variable. It serves as the main entry point for the 'snapshot' mode.
func ExecuteGigatonSnapshot(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	ensemble, err := loadEnsemble(ctx, cfg)
	if err != nil {
		return err
	}
	table, err := activeTable(cfg, ensemble)
	if err != nil {
		return err
	}
	results := LimitRows(buildSnapshotResults(cfg, table, ensemble.Metadata), cfg.ResultLimit)
	duration := time.Since(start)
	return outwriter.WriteSnapshotResults(results, table, cfg, duration)
}

// ExecuteGigatonCohorts resolves every cohort's scenario membership across
// the whole ensemble. It serves as the main entry point for the 'cohorts'
// mode.
func ExecuteGigatonCohorts(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	ensemble, err := loadEnsemble(ctx, cfg)
	if err != nil {
		return err
	}
	results := cohortMemberships(cfg, ensemble)
	duration := time.Since(start)
	return outwriter.WriteCohortResults(results, cfg, duration)
}
