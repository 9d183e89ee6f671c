// Package sqlite keeps documents in a SQLite table.
//
// Each row carries a BLAKE2b-256 checksum of its body. Saving a body identical
// to the stored one leaves the row, its revision and its timestamp unchanged.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/blake2b"

	"github.com/hengadev/cfgx/store"
)

const schema = `
	CREATE TABLE IF NOT EXISTS documents (
		name TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		checksum TEXT NOT NULL,
		revision INTEGER NOT NULL DEFAULT 1,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
`

// Info describes a stored document without its body.
type Info struct {
	Name      string
	Checksum  string
	Revision  int
	UpdatedAt time.Time
}

// Store is a document store backed by a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and prepares its schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at '%s': %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database connection test failed for '%s': %w", path, err)
	}

	s, err := New(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database, creating the documents table if needed.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to create documents schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Checksum returns the hex BLAKE2b-256 digest used to detect unchanged bodies.
func Checksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document '%s': %w", name, err)
	}
	return body, nil
}

func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (name, body, checksum) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			checksum = excluded.checksum,
			revision = documents.revision + 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE documents.checksum <> excluded.checksum
	`, name, data, Checksum(data))
	if err != nil {
		return fmt.Errorf("failed to save document '%s': %w", name, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete document '%s': %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete document '%s': %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	return nil
}

// Stat returns the metadata of one document.
func (s *Store) Stat(ctx context.Context, name string) (Info, error) {
	if err := store.ValidateName(name); err != nil {
		return Info{}, err
	}
	info := Info{Name: name}
	err := s.db.QueryRowContext(ctx,
		`SELECT checksum, revision, updated_at FROM documents WHERE name = ?`, name,
	).Scan(&info.Checksum, &info.Revision, &info.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	if err != nil {
		return Info{}, fmt.Errorf("failed to stat document '%s': %w", name, err)
	}
	return info, nil
}

// List returns the metadata of every document, ordered by name.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, checksum, revision, updated_at FROM documents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var out []Info
	for rows.Next() {
		var info Info
		if err := rows.Scan(&info.Name, &info.Checksum, &info.Revision, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

var _ store.Store = (*Store)(nil)
