package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/stretchr/testify/require"
)

// Store is a migrated in-memory database plus the unit of work over it.
type Store struct {
	DB  *sql.DB
	UoW *db.SQLiteUnitOfWork
}

// NewStore opens a fresh store that is closed when t finishes. Stores are
// private to one test, so tests can run in parallel.
func NewStore(t testing.TB) Store {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening in-memory store")
	t.Cleanup(func() { _ = database.Close() })
	return Store{DB: database, UoW: db.NewSQLiteUnitOfWork(database)}
}

// NewTestDB is NewStore for tests that only need the connection.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	return NewStore(t).DB
}
