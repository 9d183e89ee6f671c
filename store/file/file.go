// Package file keeps documents as YAML files under a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hengadev/cfgx/store"
)

// Extension is appended to every document name.
const Extension = ".yaml"

// Store stores each document in <dir>/<name>.yaml.
type Store struct {
	dir string
}

// New returns a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create store directory '%s': %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the file that holds name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, filepath.FromSlash(name)+Extension)
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document '%s': %w", name, err)
	}
	return data, nil
}

// Save writes data to a temporary file and renames it over the document, so
// readers never observe a partial write.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for document '%s': %w", name, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".cfgx-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for document '%s': %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write document '%s': %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write document '%s': %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace document '%s': %w", name, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to delete document '%s': %w", name, err)
	}
	return nil
}
