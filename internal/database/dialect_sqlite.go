package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// SQLiteDialect implements Dialect for SQLite. Both drivers read and write
// the same files; the pure Go one builds with CGO_ENABLED=0.
type SQLiteDialect struct {
	driver string
}

// NewSQLiteDialect returns the dialect for the cgo driver
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{driver: "sqlite3"}
}

// NewPureSQLiteDialect returns the dialect for the pure Go driver
func NewPureSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{driver: "sqlite"}
}

func (d *SQLiteDialect) DriverName() string {
	return d.driver
}

func (d *SQLiteDialect) DSN(config DialectConfig) string {
	return config.Path
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	return query
}

func (d *SQLiteDialect) SupportsLastInsertId() bool {
	return true
}

// ConfigureConnection limits the pool to one connection, which is the only
// writer SQLite allows at a time, and turns on WAL and foreign keys.
func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.Exec(pragma); err != nil {
			return err
		}
	}
	return nil
}

func (d *SQLiteDialect) MigrationsSubdir() string {
	return "sqlite"
}

func (d *SQLiteDialect) CreateMigrationsTableQuery() string {
	return migrationsTableQuery("INTEGER PRIMARY KEY AUTOINCREMENT", "TEXT", "DATETIME DEFAULT CURRENT_TIMESTAMP")
}
