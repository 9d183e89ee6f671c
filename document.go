package cfgx

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hengadev/cfgx/store"
	"github.com/hengadev/cfgx/yamlnode"
)

// Marshal serializes v and encodes the tree as a YAML document.
func (e *Engine) Marshal(v any) ([]byte, error) {
	var data []byte
	err := e.observe(context.Background(), OperationSerialize, reflect.TypeOf(v), func() error {
		var err error
		data, err = e.marshal(v)
		return err
	})
	return data, err
}

func (e *Engine) marshal(v any) ([]byte, error) {
	n, err := e.serialize(v)
	if err != nil {
		return nil, err
	}
	return yamlnode.Marshal(n)
}

// Unmarshal parses a YAML document and deserializes it into target.
func (e *Engine) Unmarshal(data []byte, target any) error {
	return e.observe(context.Background(), OperationDeserialize, targetType(target), func() error {
		return e.unmarshal(data, target)
	})
}

func (e *Engine) unmarshal(data []byte, target any) error {
	if err := invalidTarget(target); err != nil {
		return err
	}
	n, err := yamlnode.Unmarshal(data)
	if err != nil {
		return err
	}
	return e.deserializer.Into(n, target)
}

// Save serializes v and writes it to s as the YAML document name.
func (e *Engine) Save(ctx context.Context, s store.Store, name string, v any) error {
	return e.observe(ctx, OperationSave, reflect.TypeOf(v), func() error {
		data, err := e.marshal(v)
		if err != nil {
			return err
		}
		if err := s.Save(ctx, name, data); err != nil {
			return fmt.Errorf("save document %q: %w", name, err)
		}
		return nil
	})
}

// Load reads the YAML document name from s and deserializes it into target.
// A missing document fails with store.ErrNotFound and leaves target unchanged.
func (e *Engine) Load(ctx context.Context, s store.Store, name string, target any) error {
	return e.observe(ctx, OperationLoad, targetType(target), func() error {
		if err := invalidTarget(target); err != nil {
			return err
		}
		data, err := s.Load(ctx, name)
		if err != nil {
			return fmt.Errorf("load document %q: %w", name, err)
		}
		if err := e.unmarshal(data, target); err != nil {
			return fmt.Errorf("decode document %q: %w", name, err)
		}
		return nil
	})
}
