package db

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

//go:embed schema.sql
var schema string

// Supported drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DB wraps the database connection and serves as a string key/value backend
type DB struct {
	*sqlx.DB
}

// New opens a database connection and initializes the schema.
// For sqlite3 the dsn is a file path; its directory is created if missing.
func New(driver, dsn string) (*DB, error) {
	if driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, errors.Wrap(err, "db: create data dir")
		}
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "db: open %s", driver)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "db: init schema")
	}

	return &DB{db}, nil
}

// Get retrieves the value stored under key. ok is false if the key is absent.
func (db *DB) Get(key string) (value string, ok bool, err error) {
	err = db.DB.Get(&value, db.Rebind("SELECT value FROM kv WHERE key = ?"), key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "db: get %q", key)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (db *DB) Set(key, value string) error {
	_, err := db.Exec(db.Rebind(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`), key, value)
	return errors.Wrapf(err, "db: set %q", key)
}

// Delete removes key. Deleting a missing key is not an error.
func (db *DB) Delete(key string) error {
	_, err := db.Exec(db.Rebind("DELETE FROM kv WHERE key = ?"), key)
	return errors.Wrapf(err, "db: delete %q", key)
}
