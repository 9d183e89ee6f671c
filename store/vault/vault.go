// Package vault keeps documents in a HashiCorp Vault KV v2 secrets engine.
//
// Each document is one secret whose "document" key holds the YAML body. Vault
// keeps previous versions; Delete removes the secret with its whole history.
package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/vault/api"

	"github.com/hengadev/cfgx/store"
)

// ErrUnavailable reports that Vault could not be configured or reached.
var ErrUnavailable = errors.New("vault unavailable")

const (
	DefaultMount  = "secret"
	DefaultPrefix = "cfgx/"
	documentKey   = "document"
)

// Logical is the subset of the Vault logical API the store uses. *api.Logical
// satisfies it.
type Logical interface {
	ReadWithContext(ctx context.Context, path string) (*api.Secret, error)
	WriteWithContext(ctx context.Context, path string, data map[string]interface{}) (*api.Secret, error)
	DeleteWithContext(ctx context.Context, path string) (*api.Secret, error)
}

// Config selects where documents live inside Vault.
type Config struct {
	// Mount is the KV v2 mount path. Defaults to "secret".
	Mount string
	// Prefix is prepended to every document name. Defaults to "cfgx/".
	Prefix string
}

// Store is a document store on a KV v2 engine.
type Store struct {
	logical Logical
	mount   string
	prefix  string
}

// New creates a store with a client configured from the environment.
//
// The KV v2 engine must be enabled before use:
//
//	vault secrets enable -path=secret kv-v2
func New(cfg Config) (*Store, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	return NewWithLogical(client.Logical(), cfg), nil
}

// NewWithLogical creates a store on top of an existing logical client.
func NewWithLogical(logical Logical, cfg Config) *Store {
	if cfg.Mount == "" {
		cfg.Mount = DefaultMount
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	return &Store{
		logical: logical,
		mount:   strings.Trim(cfg.Mount, "/"),
		prefix:  cfg.Prefix,
	}
}

// DataPath returns the KV v2 data path of name, e.g. "secret/data/cfgx/app".
func (s *Store) DataPath(name string) string {
	return s.mount + "/data/" + s.prefix + name
}

func (s *Store) metadataPath(name string) string {
	return s.mount + "/metadata/" + s.prefix + name
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}
	secret, err := s.logical.ReadWithContext(ctx, s.DataPath(name))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read document '%s': %w", ErrUnavailable, name, err)
	}
	body, ok, err := document(secret)
	if err != nil {
		return nil, fmt.Errorf("document '%s': %w", name, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	return body, nil
}

func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	payload := map[string]interface{}{
		"data": map[string]interface{}{
			documentKey: string(data),
		},
	}
	if _, err := s.logical.WriteWithContext(ctx, s.DataPath(name), payload); err != nil {
		return fmt.Errorf("%w: failed to write document '%s': %w", ErrUnavailable, name, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.Load(ctx, name); err != nil {
		return err
	}
	if _, err := s.logical.DeleteWithContext(ctx, s.metadataPath(name)); err != nil {
		return fmt.Errorf("%w: failed to delete document '%s': %w", ErrUnavailable, name, err)
	}
	return nil
}

// document extracts the body from a KV v2 read. A missing secret, or one whose
// latest version is deleted, reports ok == false.
func document(secret *api.Secret) ([]byte, bool, error) {
	if secret == nil || secret.Data == nil {
		return nil, false, nil
	}
	raw, present := secret.Data["data"]
	if !present || raw == nil {
		return nil, false, nil
	}
	data, ok := raw.(map[string]interface{})
	if !ok {
		return nil, false, fmt.Errorf("invalid KV v2 secret format")
	}
	body, ok := data[documentKey].(string)
	if !ok {
		return nil, false, fmt.Errorf("secret has no %q string value", documentKey)
	}
	return []byte(body), true, nil
}

var _ store.Store = (*Store)(nil)
