// Package archive persists finished report runs to a relational store.
package archive

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/gigaton-io/gigaton/internal/contract"
	"github.com/gigaton-io/gigaton/schema"
)

// ArchiveStoreManager manages the report ArchiveStore instance.
type ArchiveStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	report       contract.ArchiveStore
}

var _ contract.ArchiveManager = &ArchiveStoreManager{} // Compile-time check

// GetReportStore returns the report ArchiveStore.
func (mgr *ArchiveStoreManager) GetReportStore() contract.ArchiveStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.report
}

// Global Manager instance for main logic.
var (
	Manager   = &ArchiveStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for archive storage.
func GetDBFilePath() string {
	return contract.GetArchiveDBFilePath()
}

// InitArchive initializes the global archive manager.
// backend and connStr can be empty to disable report archival.
func InitArchive(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		var reportStore contract.ArchiveStore
		if backend != "" {
			var err error
			reportStore, err = NewArchiveStore(backend, connStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize report archive: %w", err)
				return
			}
		}

		// Assign to global manager
		Manager.report = reportStore
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseArchive should be called on application shutdown.
func CloseArchive() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.report != nil {
			_ = Manager.report.Close()
		}
	})
}

// ClearArchive clears archived report data for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the archive tables.
// For NoneBackend, it does nothing.
func ClearArchive(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		tables := []string{reportRunsTable, summaryCellsTable}
		for _, table := range tables {
			if err := clearSQLTable("mysql", connStr, table); err != nil {
				return err
			}
		}
		return nil

	case schema.PostgreSQLBackend:
		tables := []string{reportRunsTable, summaryCellsTable}
		for _, table := range tables {
			if err := clearSQLTable("pgx", connStr, table); err != nil {
				return err
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported archive backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
