package database

import (
	"strings"
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "sqlite3"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if !result {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "sqlite"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestDialectPureSQLite(t *testing.T) {
	dialect := NewPureSQLiteDialect()

	if got := dialect.DriverName(); got != "sqlite" {
		t.Errorf("DriverName() = %v, want sqlite", got)
	}
	if got := dialect.MigrationsSubdir(); got != "sqlite" {
		t.Errorf("MigrationsSubdir() = %v, want sqlite", got)
	}
	if got := dialect.DSN(DialectConfig{Path: "games.db"}); got != "games.db" {
		t.Errorf("DSN() = %v, want games.db", got)
	}
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "postgres"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if result {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "postgres"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "mysql"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if !result {
			t.Error("SupportsLastInsertId() should return true for MySQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "mysql"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM games WHERE id = ?",
			expected: "SELECT * FROM games WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM games WHERE id = ?",
			expected: "SELECT * FROM games WHERE id = $1",
		},
		{
			name:     "PostgreSQL single insert placeholder",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO known_cards (card_name) VALUES (?)",
			expected: "INSERT INTO known_cards (card_name) VALUES ($1)",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "SELECT id FROM games WHERE date >= ? AND date <= ?",
			expected: "SELECT id FROM games WHERE date >= $1 AND date <= $2",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "SELECT COUNT(*) FROM known_cards WHERE card_name = ?",
			expected: "SELECT COUNT(*) FROM known_cards WHERE card_name = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestServerDialectsUseURL(t *testing.T) {
	config := DialectConfig{Path: "games.db", URL: "postgres://localhost/dominion"}
	for _, dialect := range []Dialect{NewPostgresDialect(), NewMySQLDialect()} {
		if got := dialect.DSN(config); got != config.URL {
			t.Errorf("%s DSN() = %q, want %q", dialect.DriverName(), got, config.URL)
		}
	}
	if got := NewSQLiteDialect().DSN(config); got != config.Path {
		t.Errorf("sqlite DSN() = %q, want %q", got, config.Path)
	}
}

func TestCreateMigrationsTableQuery(t *testing.T) {
	tests := []struct {
		dialect Dialect
		want    string
	}{
		{NewSQLiteDialect(), "id INTEGER PRIMARY KEY AUTOINCREMENT"},
		{NewPostgresDialect(), "id BIGSERIAL PRIMARY KEY"},
		{NewMySQLDialect(), "filename VARCHAR(255) UNIQUE NOT NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.DriverName(), func(t *testing.T) {
			query := tt.dialect.CreateMigrationsTableQuery()
			if !strings.Contains(query, "CREATE TABLE IF NOT EXISTS migrations") {
				t.Errorf("query does not create the migrations table: %s", query)
			}
			if !strings.Contains(query, tt.want) {
				t.Errorf("query missing %q: %s", tt.want, query)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	content := `-- leading comment
CREATE TABLE a (id INTEGER);

-- another comment
CREATE TABLE b (id INTEGER);
`
	got := splitStatements(content)
	want := []string{"CREATE TABLE a (id INTEGER)", "CREATE TABLE b (id INTEGER)"}

	if len(got) != len(want) {
		t.Fatalf("splitStatements() returned %d statements, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("statement %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEmbeddedMigrationsPerDialect(t *testing.T) {
	for _, dialect := range []Dialect{NewSQLiteDialect(), NewPostgresDialect(), NewMySQLDialect()} {
		t.Run(dialect.MigrationsSubdir(), func(t *testing.T) {
			entries, err := migrationFiles.ReadDir("migrations/" + dialect.MigrationsSubdir())
			if err != nil {
				t.Fatalf("ReadDir() error = %v", err)
			}
			if len(entries) != 2 {
				t.Errorf("expected 2 migration files, got %d", len(entries))
			}
		})
	}
}
