// Package store persists reference snapshots, saved selections and cached
// embeddings in a sqlite database.
package store

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating database directory")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initializing schema")
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			root_id TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			entry_count INTEGER NOT NULL,
			entries BLOB NOT NULL
		);

		CREATE INDEX IF NOT EXISTS snapshots_root ON snapshots (root_id, created_at);

		CREATE TABLE IF NOT EXISTS selections (
			root_id TEXT PRIMARY KEY,
			entity_ids TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS embeddings (
			model TEXT NOT NULL,
			text TEXT NOT NULL,
			vector BLOB NOT NULL,
			PRIMARY KEY (model, text)
		);
	`)

	return errors.Wrap(err, "creating tables")
}
