package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
)

// readCSVRecords reads every record from a CSV file. Rows may have ragged
// lengths; exporters commonly trim trailing blank cells.
func readCSVRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse CSV %q: %w", path, err)
	}
	return records, nil
}
