package database

import (
	"path/filepath"
	"strings"
	"testing"

	"dominionstats/internal/config"
)

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test_integration.db")

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"games", "known_cards", "migrations"} {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		if err := db.QueryRow(query, table).Scan(&name); err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}
}

// TestRunMigrationsIdempotent runs the schema setup repeatedly, including
// across a reopen of the same file.
func TestRunMigrationsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test_idempotent.db")

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := db.RunMigrations(); err != nil {
			t.Fatalf("RunMigrations() call %d error = %v", i+1, err)
		}
	}
	db.Close()

	db, err = Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count); err != nil {
		t.Fatalf("Failed to count migrations: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 recorded migrations, got %d", count)
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := Initialize(filepath.Join(t.TempDir(), "test_transactions.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	err = db.WithTx(func(tx *Tx) error {
		_, err := tx.ExecReturningID("INSERT INTO known_cards (card_name) VALUES (?)", "Village")
		return err
	})
	if err != nil {
		t.Fatalf("Committed transaction failed: %v", err)
	}

	errBoom := errTest("boom")
	err = db.WithTx(func(tx *Tx) error {
		if _, err := tx.Exec("INSERT INTO known_cards (card_name) VALUES (?)", "Smithy"); err != nil {
			return err
		}
		return errBoom
	})
	if err != errBoom {
		t.Fatalf("WithTx() error = %v, want %v", err, errBoom)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM known_cards").Scan(&count); err != nil {
		t.Fatalf("Failed to count cards: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 card after rollback, got %d", count)
	}
}

func TestInitializeWithConfigPureSQLite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := &config.Config{
		DatabaseType: "sqlite-pure",
		DatabasePath: filepath.Join(t.TempDir(), "pure.db"),
	}

	db, err := InitializeWithConfig(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	id, err := db.ExecReturningID("INSERT INTO known_cards (card_name) VALUES (?)", "Market")
	if err != nil {
		t.Fatalf("ExecReturningID() error = %v", err)
	}
	if id != 1 {
		t.Errorf("ExecReturningID() = %d, want 1", id)
	}
}

func TestInitializeWithConfigUnsupportedType(t *testing.T) {
	_, err := InitializeWithConfig(&config.Config{DatabaseType: "oracle"})
	if err == nil {
		t.Fatal("expected error for unsupported database type")
	}
}

func TestInitializeWithConfigRequiresURL(t *testing.T) {
	for _, dbType := range []string{"postgres", "mysql"} {
		t.Run(dbType, func(t *testing.T) {
			_, err := InitializeWithConfig(&config.Config{DatabaseType: dbType})
			if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
				t.Fatalf("InitializeWithConfig() error = %v, want DATABASE_URL error", err)
			}
		})
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
