// Package testutil provides a real, file-backed database for tests that need
// the engine's own behavior (constraints, transactions) rather than sqlmock.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"warehouse-be/internal/config"
	"warehouse-be/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// NewDB opens a SQLite database in t.TempDir() with the schema initialized.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "warehouse.db"),
	}

	database, err := db.NewDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.InitializeSchema(context.Background(), database))
	return database
}
