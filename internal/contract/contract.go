// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/gigaton-io/gigaton/schema"
)

// EnsembleLoader defines the operations for loading scenario inputs.
// This allows the core pipeline to be tested without real spreadsheet files.
type EnsembleLoader interface {
	// LoadEnsemble reads the scenario dataset and the metadata table, applies
	// variable renames, the region filter, scenario excludes, and unit
	// conversion, and returns one series table per configured variable.
	LoadEnsemble(ctx context.Context, cfg *Config) (*schema.Ensemble, error)
}

// ArchiveManager defines the interface for reaching the run archive store.
// This allows the archive layer to be mocked for testing.
type ArchiveManager interface {
	GetReportStore() ArchiveStore
}

// ArchiveStore defines the interface for recording report runs and their
// finalized summary cells.
type ArchiveStore interface {
	// BeginRun creates a new report run and returns its unique ID
	BeginRun(startTime time.Time, datasetPath string, configParams map[string]any) (int64, error)

	// EndRun updates the report run with completion data
	EndRun(runID int64, endTime time.Time, scenarios, variables, cohorts int) error

	// RecordCells stores the finalized summary cells for a run
	RecordCells(runID int64, recordTime time.Time, table *schema.SummaryTable, precision int) error

	// GetStatus returns status information about the archive store
	GetStatus() (schema.ArchiveStatus, error)

	// GetAllRuns returns every recorded report run
	GetAllRuns() ([]schema.ReportRunRecord, error)

	// GetAllCells returns every recorded summary cell
	GetAllCells() ([]schema.SummaryCellRecord, error)

	// Close closes the underlying connection
	Close() error
}
