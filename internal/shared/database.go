package shared

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// NewDatabase opens a connection to a SQLite database at the specified path.
// The path can be ":memory:" for an in-memory database.
// Foreign keys are enforced on every pooled connection, transactions take the write lock at BEGIN,
// and writers wait up to busyTimeoutMS for the file lock.
// Returns an open database connection or an error if connection fails.
func NewDatabase(path string, busyTimeoutMS int) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dsn(path, busyTimeoutMS))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// ConfigureDatabase sets connection pool settings for the database.
// Zero values leave the driver defaults in place.
func ConfigureDatabase(db *sql.DB, maxOpenConns, maxIdleConns int) {
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
}

// dsn builds the driver connection string.
//
// Transactions begin IMMEDIATE: the write lock is taken at BEGIN, where the busy timeout applies.
func dsn(path string, busyTimeoutMS int) string {
	params := []string{"_foreign_keys=on", "_txlock=immediate"}
	if busyTimeoutMS > 0 {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", busyTimeoutMS))
	}
	return path + "?" + strings.Join(params, "&")
}
