package database

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Dialect defines the interface for database-specific operations
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (e.g., ? to $1 for postgres)
	RewriteQuery(query string) string

	// SupportsLastInsertId returns true if the driver supports LastInsertId()
	SupportsLastInsertId() bool

	// ConfigureConnection applies any database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the subdirectory name for migrations (e.g., "sqlite", "postgres")
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL to create the migrations tracking table
	CreateMigrationsTableQuery() string
}

// DialectConfig holds configuration for database connection
type DialectConfig struct {
	// For SQLite
	Path string

	// For PostgreSQL/MySQL
	URL string
}

// placeholderRegexp matches ? placeholders
var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(match string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

// migrationsTableQuery builds the migrations bookkeeping table from the
// column types of one dialect.
func migrationsTableQuery(idColumn, filenameType, executedAtColumn string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS migrations (
	id %s,
	filename %s UNIQUE NOT NULL,
	executed_at %s
)`, idColumn, filenameType, executedAtColumn)
}

// serverDialect holds what PostgreSQL and MySQL share: the connection
// string is DATABASE_URL and one local user needs only a small pool.
type serverDialect struct{}

func (serverDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (serverDialect) configurePool(db *sql.DB) {
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)
}
