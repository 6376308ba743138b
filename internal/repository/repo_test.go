package repository

import (
	"path/filepath"
	"testing"

	"dominionstats/internal/database"
)

// newTestDB opens a fresh SQLite database with the schema applied
func newTestDB(t *testing.T) (*database.DB, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "games.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, dbPath
}
