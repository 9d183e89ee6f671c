// Package store defines where serialized documents are kept.
//
// A document is the YAML rendering of one node tree, addressed by name. Names
// are slash-separated paths such as "services/api"; each backend maps them to
// its own key space.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrInvalidName = errors.New("invalid document name")
)

// Store reads and writes documents by name.
type Store interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}

// ValidateName checks that name is a relative slash-separated path made of
// letters, digits, '.', '_' and '-', without empty or dot-only segments.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	for _, segment := range strings.Split(name, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
		for _, r := range segment {
			if !validRune(r) {
				return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, r)
			}
		}
	}
	return nil
}

func validRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	}
	return false
}
