package archive

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"
)

// MockArchiveManager is a mock implementation of ArchiveManager for testing.
type MockArchiveManager struct {
	mock.Mock
}

var _ contract.ArchiveManager = &MockArchiveManager{} // Compile-time check

// GetReportStore implements the ArchiveManager interface.
func (m *MockArchiveManager) GetReportStore() contract.ArchiveStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ArchiveStore)
	return store
}

// MockArchiveStore is a mock implementation of ArchiveStore for testing.
type MockArchiveStore struct {
	mock.Mock
}

var _ contract.ArchiveStore = &MockArchiveStore{} // Compile-time check

// BeginRun implements the ArchiveStore interface.
func (m *MockArchiveStore) BeginRun(startTime time.Time, datasetPath string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, datasetPath, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the ArchiveStore interface.
func (m *MockArchiveStore) EndRun(runID int64, endTime time.Time, scenarios, variables, cohorts int) error {
	args := m.Called(runID, endTime, scenarios, variables, cohorts)
	return args.Error(0)
}

// RecordCells implements the ArchiveStore interface.
func (m *MockArchiveStore) RecordCells(runID int64, recordTime time.Time, table *schema.SummaryTable, precision int) error {
	args := m.Called(runID, recordTime, table, precision)
	return args.Error(0)
}

// GetStatus implements the ArchiveStore interface.
func (m *MockArchiveStore) GetStatus() (schema.ArchiveStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.ArchiveStatus), args.Error(1)
}

// GetAllRuns implements the ArchiveStore interface.
func (m *MockArchiveStore) GetAllRuns() ([]schema.ReportRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.ReportRunRecord)
	return runs, args.Error(1)
}

// GetAllCells implements the ArchiveStore interface.
func (m *MockArchiveStore) GetAllCells() ([]schema.SummaryCellRecord, error) {
	args := m.Called()
	cells, _ := args.Get(0).([]schema.SummaryCellRecord)
	return cells, args.Error(1)
}

// Close implements the ArchiveStore interface.
func (m *MockArchiveStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
