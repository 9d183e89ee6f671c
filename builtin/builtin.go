// Package builtin provides handlers for common value types that have no
// exported fields to walk.
//
//	time.Time      {time: "2024-05-01T10:00:00Z"}
//	time.Duration  {duration: "1h30m0s"}
//	uuid.UUID      {uuid: "6ba7b810-9dad-11d1-80b4-00c04fd430c8"}
package builtin

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/hengadev/cfgx/node"
	"github.com/hengadev/cfgx/registry"
)

const (
	TimeKey     = "time"
	DurationKey = "duration"
	UUIDKey     = "uuid"
)

type entry struct {
	typ      reflect.Type
	register func(*registry.Registry) error
}

var entries = []entry{
	{reflect.TypeFor[time.Time](), func(r *registry.Registry) error {
		return registry.Register(r, serializeTime, deserializeTime)
	}},
	{reflect.TypeFor[time.Duration](), func(r *registry.Registry) error {
		return registry.Register(r, serializeDuration, deserializeDuration)
	}},
	{reflect.TypeFor[uuid.UUID](), func(r *registry.Registry) error {
		return registry.Register(r, serializeUUID, deserializeUUID)
	}},
}

// Register adds the built-in handlers to r, replacing any existing handler for
// the same types.
func Register(r *registry.Registry) error {
	for _, e := range entries {
		if err := e.register(r); err != nil {
			return fmt.Errorf("register %s handler: %w", e.typ, err)
		}
	}
	return nil
}

// RegisterMissing adds the built-in handlers for the types r does not resolve
// yet, leaving handlers the caller registered in place.
func RegisterMissing(r *registry.Registry) error {
	for _, e := range entries {
		if _, ok := r.Resolve(e.typ); ok {
			continue
		}
		if err := e.register(r); err != nil {
			return fmt.Errorf("register %s handler: %w", e.typ, err)
		}
	}
	return nil
}

func serializeTime(t time.Time) (*node.Mapping, error) {
	return node.NewMapping(1).Set(TimeKey, node.String(t.Format(time.RFC3339Nano))), nil
}

func deserializeTime(m *node.Mapping) (time.Time, error) {
	s, err := stringField(m, TimeKey)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

func serializeDuration(d time.Duration) (*node.Mapping, error) {
	return node.NewMapping(1).Set(DurationKey, node.String(d.String())), nil
}

func deserializeDuration(m *node.Mapping) (time.Duration, error) {
	s, err := stringField(m, DurationKey)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return d, nil
}

func serializeUUID(id uuid.UUID) (*node.Mapping, error) {
	return node.NewMapping(1).Set(UUIDKey, node.String(id.String())), nil
}

func deserializeUUID(m *node.Mapping) (uuid.UUID, error) {
	s, err := stringField(m, UUIDKey)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse uuid %q: %w", s, err)
	}
	return id, nil
}

func stringField(m *node.Mapping, key string) (string, error) {
	s, ok := m.GetString(key)
	if !ok {
		return "", fmt.Errorf("missing string key %q", key)
	}
	return s, nil
}
