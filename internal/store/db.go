// Package store records analysis runs in a SQLite database so past
// results stay comparable across invocations.
package store

import (
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// Store provides SQLite persistence for run history.
type Store struct {
	db *sql.DB
}

// New opens or creates the database at dbPath and ensures the schema
// exists. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening run database")
	}

	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "enabling foreign keys")
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
