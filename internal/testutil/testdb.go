package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/samplan/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory database that lives for the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
