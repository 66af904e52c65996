package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// DefaultKey is the storage key under which the inventory document is
// kept when the caller does not pick its own.
const DefaultKey = "inventory"

// SQLiteStore persists the document as a single row in a SQLite
// database. The upsert replaces the row in one statement, so saves are
// atomic.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

// NewSQLiteStore returns a SQLite-backed document store for the given
// storage key. The documents table must already exist (db.EnsureSchema).
func NewSQLiteStore(db *sql.DB, key string) *SQLiteStore {
	if key == "" {
		key = DefaultKey
	}
	return &SQLiteStore{db: db, key: key}
}

// Load reads the document row. A missing row is not an error and yields
// an empty document.
func (s *SQLiteStore) Load(ctx context.Context) (*Document, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE key = ?`, s.key,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return &Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading document %q: %w", s.key, err)
	}
	return decodeDocument(raw)
}

// Save overwrites the document row.
func (s *SQLiteStore) Save(ctx context.Context, doc *Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (key, version, data) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET version = excluded.version,
		     data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		s.key, Version, data,
	)
	if err != nil {
		return fmt.Errorf("saving document %q: %w", s.key, err)
	}
	return nil
}
