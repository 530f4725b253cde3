package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/cyclesync/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// NewTestFileDB opens a migrated database file under t.TempDir. Unlike the
// in-memory store its pool hands out more than one connection, so tests can
// observe what other connections see while a transaction is open.
func NewTestFileDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "cyclesync.db"))
	if err != nil {
		t.Fatalf("failed to create test database file: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}
