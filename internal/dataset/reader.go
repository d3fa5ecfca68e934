// Package dataset loads wide-format scenario tables and scenario metadata
// from CSV or XLSX files into the in-memory ensemble used by the report.
package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"
)

// FileLoader implements the EnsembleLoader interface by reading the dataset
// and metadata files from the local filesystem.
type FileLoader struct{}

var _ contract.EnsembleLoader = &FileLoader{} // Compile-time check

// NewFileLoader creates a new instance of the file-based ensemble loader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// LoadEnsemble implements the EnsembleLoader interface. It reads the dataset
// and optional metadata file, then applies the region filter, variable
// renames, scenario excludes and unit conversions from the config.
func (l *FileLoader) LoadEnsemble(ctx context.Context, cfg *contract.Config) (*schema.Ensemble, error) {
	records, err := readRecords(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	rows, err := parseDatasetRecords(records)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", cfg.DatasetPath, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	meta := schema.NewMetadata()
	if cfg.MetadataPath != "" {
		metaRecords, err := readRecords(cfg.MetadataPath)
		if err != nil {
			return nil, err
		}
		meta, err = parseMetadataRecords(metaRecords)
		if err != nil {
			return nil, fmt.Errorf("metadata %q: %w", cfg.MetadataPath, err)
		}
	}

	ensemble, err := buildEnsemble(cfg, rows, meta)
	if err != nil {
		return nil, err
	}
	ensemble.DatasetPath = cfg.DatasetPath
	ensemble.MetadataPath = cfg.MetadataPath
	return ensemble, nil
}

// readRecords dispatches on the file extension and returns the raw rows.
func readRecords(path string) ([][]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return readCSVRecords(path)
	case ".xlsx":
		return readXLSXRecords(path)
	default:
		return nil, fmt.Errorf("unsupported file format %q for %q. use .csv or .xlsx", ext, path)
	}
}
