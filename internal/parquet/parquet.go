// Package parquet provides data structures and functions for exporting archived
// report data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/gigaton-io/gigaton/schema"
	"github.com/parquet-go/parquet-go"
)

// ReportRun represents a single report run with metadata.
// This struct maps to the gigaton_report_runs database table.
type ReportRun struct {
	// RunID is the unique identifier for this report run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the report began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the report completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the report run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// DatasetPath is the scenario dataset the report was built from
	DatasetPath string `parquet:"dataset_path,snappy"`

	// ScenarioCount is the number of scenarios loaded for this run
	ScenarioCount int32 `parquet:"scenario_count,snappy"`

	// VariableCount is the number of variables reported in this run
	VariableCount int32 `parquet:"variable_count,snappy"`

	// CohortCount is the number of cohorts summarized in this run
	CohortCount int32 `parquet:"cohort_count,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// SummaryCell represents one summarized cohort statistic from a report run.
// This struct maps to the gigaton_summary_cells database table.
type SummaryCell struct {
	// RunID references the parent report run
	RunID int64 `parquet:"run_id,snappy"`

	// RecordTime is when this cell was archived (stored as TIMESTAMP with nanosecond precision)
	RecordTime time.Time `parquet:"record_time,snappy"`

	// Cohort is the scenario cohort this cell summarizes
	Cohort string `parquet:"cohort,snappy"`

	// Header is the variable the cell belongs to
	Header string `parquet:"header,snappy"`

	// SubHeader is the indicator column, such as a reference year or a year pair
	SubHeader string `parquet:"sub_header,snappy"`

	// ValueCount is the number of scenario values behind the cell
	ValueCount int32 `parquet:"value_count,snappy"`

	// MinValue is the smallest value in the cell (nullable when non-finite)
	MinValue *float64 `parquet:"min_value,optional,snappy"`

	// MaxValue is the largest value in the cell (nullable when non-finite)
	MaxValue *float64 `parquet:"max_value,optional,snappy"`

	// MedianValue is the cell median (nullable when non-finite)
	MedianValue *float64 `parquet:"median_value,optional,snappy"`

	// Q1Value is the lower quartile (nullable when non-finite)
	Q1Value *float64 `parquet:"q1_value,optional,snappy"`

	// Q3Value is the upper quartile (nullable when non-finite)
	Q3Value *float64 `parquet:"q3_value,optional,snappy"`

	// Formatted is the rendered cell text as it appeared in the report
	Formatted string `parquet:"formatted,snappy"`
}

// WriteReportRunsParquet writes a slice of ReportRun structs to a Parquet file.
func WriteReportRunsParquet(data []ReportRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ReportRun struct tags
	writer := parquet.NewGenericWriter[ReportRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteSummaryCellsParquet writes a slice of SummaryCell structs to a Parquet file.
func WriteSummaryCellsParquet(data []SummaryCell, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the SummaryCell struct tags
	writer := parquet.NewGenericWriter[SummaryCell](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchReportRuns generates sample ReportRun data for demonstration.
func MockFetchReportRuns() []ReportRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := startTime1.Add(90 * time.Second)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"region":"World","threshold":"0","precision":"1"}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := startTime2.Add(45 * time.Second)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"region":"World","threshold":"0.1","precision":"2"}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []ReportRun{
		{
			RunID:         1,
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			DatasetPath:   "data/ensemble_world.csv",
			ScenarioCount: 97,
			VariableCount: 3,
			CohortCount:   4,
			ConfigParams:  &configParams1,
		},
		{
			RunID:         2,
			StartTime:     startTime2,
			EndTime:       &endTime2,
			RunDurationMs: &durationMs2,
			DatasetPath:   "data/ensemble_world.csv",
			ScenarioCount: 52,
			VariableCount: 2,
			CohortCount:   3,
			ConfigParams:  &configParams2,
		},
		{
			RunID:         3,
			StartTime:     startTime3,
			EndTime:       nil, // Still running - nullable field
			RunDurationMs: nil, // Not yet calculated - nullable field
			DatasetPath:   "data/ensemble_regional.csv",
			ScenarioCount: 0,
			VariableCount: 0,
			CohortCount:   0,
			ConfigParams:  nil, // No config stored - nullable field
		},
	}
}

// MockFetchSummaryCells generates sample SummaryCell data for demonstration.
func MockFetchSummaryCells() []SummaryCell {
	now := time.Now()
	min1, max1 := -12.5, 8.3
	median1, q11, q31 := -2.4, -6.1, 1.9

	min2, median2, q12, q32 := 2041.0, 2052.5, 2047.0, 2061.0

	min3, max3 := 0.1, 0.9
	median3, q13, q33 := 0.4, 0.2, 0.7

	return []SummaryCell{
		{
			RunID:       1,
			RecordTime:  now.Add(-1 * time.Hour),
			Cohort:      "Below 1.5C",
			Header:      "Net CO2 emissions",
			SubHeader:   "2030",
			ValueCount:  42,
			MinValue:    &min1,
			MaxValue:    &max1,
			MedianValue: &median1,
			Q1Value:     &q11,
			Q3Value:     &q31,
			Formatted:   "-2.4 [-6.1, 1.9]",
		},
		{
			RunID:       1,
			RecordTime:  now.Add(-1 * time.Hour),
			Cohort:      "Below 1.5C",
			Header:      "Net CO2 emissions",
			SubHeader:   "Net zero",
			ValueCount:  42,
			MinValue:    &min2,
			MaxValue:    nil, // Some scenarios never cross - nullable field
			MedianValue: &median2,
			Q1Value:     &q12,
			Q3Value:     &q32,
			Formatted:   "2052.5 [2047.0, 2061.0]",
		},
		{
			RunID:       2,
			RecordTime:  now.Add(-23 * time.Hour),
			Cohort:      "Lower 2C",
			Header:      "Kyoto gases",
			SubHeader:   "2020-2050",
			ValueCount:  5,
			MinValue:    &min3,
			MaxValue:    &max3,
			MedianValue: &median3,
			Q1Value:     &q13,
			Q3Value:     &q33,
			Formatted:   "[0.1, 0.9]", // Small cohorts render a range only

		},
	}
}

// ConvertReportRunRecords converts schema.ReportRunRecord to ReportRun for Parquet export.
func ConvertReportRunRecords(records []schema.ReportRunRecord) []ReportRun {
	result := make([]ReportRun, len(records))
	for i, record := range records {
		result[i] = ReportRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			DatasetPath:   record.DatasetPath,
			ScenarioCount: record.ScenarioCount,
			VariableCount: record.VariableCount,
			CohortCount:   record.CohortCount,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertSummaryCellRecords converts schema.SummaryCellRecord to SummaryCell for Parquet export.
func ConvertSummaryCellRecords(records []schema.SummaryCellRecord) []SummaryCell {
	result := make([]SummaryCell, len(records))
	for i, record := range records {
		result[i] = SummaryCell{
			RunID:       record.RunID,
			RecordTime:  record.RecordTime,
			Cohort:      record.Cohort,
			Header:      record.Header,
			SubHeader:   record.SubHeader,
			ValueCount:  record.ValueCount,
			MinValue:    record.MinValue,
			MaxValue:    record.MaxValue,
			MedianValue: record.MedianValue,
			Q1Value:     record.Q1Value,
			Q3Value:     record.Q3Value,
			Formatted:   record.Formatted,
		}
	}
	return result
}
