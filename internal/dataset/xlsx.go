package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// preferredSheetName is the workbook sheet tried before falling back to the
// first sheet. IAMC exports commonly name the payload sheet "data".
const preferredSheetName = "data"

// readXLSXRecords reads every row from the data sheet of an XLSX workbook.
func readXLSXRecords(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheet, err := pickDataSheet(f)
	if err != nil {
		return nil, fmt.Errorf("workbook %q: %w", path, err)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q in %q: %w", sheet, path, err)
	}
	return rows, nil
}

// pickDataSheet selects the sheet holding the table: a preferred name when
// present, otherwise the first sheet in the workbook.
func pickDataSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	for _, name := range sheets {
		if strings.EqualFold(name, preferredSheetName) {
			return name, nil
		}
	}
	return sheets[0], nil
}
