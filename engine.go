package cfgx

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"

	"github.com/hengadev/cfgx/builtin"
	"github.com/hengadev/cfgx/internal/cfgxerr"
	"github.com/hengadev/cfgx/internal/codec"
	"github.com/hengadev/cfgx/internal/config"
	"github.com/hengadev/cfgx/internal/typetag"
	"github.com/hengadev/cfgx/node"
	"github.com/hengadev/cfgx/registry"
)

// Engine converts Go values to node trees and back. It is safe for concurrent
// use once built; handlers and type tags may be registered at any time.
type Engine struct {
	registry     *registry.Registry
	tags         *typetag.Table
	serializer   *codec.Serializer
	deserializer *codec.Deserializer

	maxDepth     int
	detectCycles bool

	logger  *zap.Logger
	hook    ObservabilityHook
	metrics MetricsCollector
}

// New builds an engine. Without options it uses a private registry holding the
// built-in handlers, a depth limit of 20 and no cycle detection.
func New(options ...Option) (*Engine, error) {
	cfg := config.DefaultConfig()
	if err := config.ApplyOptions(cfg, options); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: configuration validation failed: %w", ErrInvalidConfiguration, err)
	}
	cfg.Finalize()

	if cfg.BuiltinHandlers {
		if err := builtin.RegisterMissing(cfg.Registry); err != nil {
			return nil, fmt.Errorf("failed to register built-in handlers: %w", err)
		}
	}

	tags := typetag.New()
	opts := codec.Options{
		Registry:     cfg.Registry,
		Tags:         tags,
		MaxDepth:     cfg.MaxDepth,
		DetectCycles: cfg.DetectCycles,
	}
	e := &Engine{
		registry:     cfg.Registry,
		tags:         tags,
		serializer:   codec.NewSerializer(opts),
		deserializer: codec.NewDeserializer(opts),
		maxDepth:     cfg.MaxDepth,
		detectCycles: cfg.DetectCycles,
		logger:       cfg.Logger,
		hook:         cfg.ObservabilityHook,
		metrics:      cfg.MetricsCollector,
	}
	e.logger.Debug("engine created",
		zap.Int("maxDepth", cfg.MaxDepth),
		zap.Bool("detectCycles", cfg.DetectCycles),
		zap.Int("handlers", cfg.Registry.Len()))
	return e, nil
}

// MaxDepth returns the configured recursion limit.
func (e *Engine) MaxDepth() int { return e.maxDepth }

// Registry returns the handler registry the engine resolves against.
func (e *Engine) Registry() *registry.Registry { return e.registry }

// Metrics returns the collector operations are recorded to.
func (e *Engine) Metrics() MetricsCollector { return e.metrics }

// Logger returns the engine's logger.
func (e *Engine) Logger() *zap.Logger { return e.logger }

// Serialize converts v into a node tree. A nil v yields a null node.
func (e *Engine) Serialize(v any) (node.Node, error) {
	var out node.Node
	err := e.observe(context.Background(), OperationSerialize, reflect.TypeOf(v), func() error {
		var err error
		out, err = e.serialize(v)
		return err
	})
	return out, err
}

func (e *Engine) serialize(v any) (node.Node, error) {
	return e.serializer.Serialize(reflect.ValueOf(v))
}

// Deserialize rebuilds the value target points to from n. target must be a
// non-nil pointer. On failure target is left unchanged.
func (e *Engine) Deserialize(n node.Node, target any) error {
	return e.observe(context.Background(), OperationDeserialize, targetType(target), func() error {
		return e.deserializer.Into(n, target)
	})
}

// DeserializeAs builds a new T from n.
func DeserializeAs[T any](e *Engine, n node.Node) (T, error) {
	var out T
	if err := e.Deserialize(n, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// RegisterHandler stores typed serialize/deserialize functions for T. When T
// is an interface type the functions serve every implementation of T that has
// no exact handler. A later registration for the same T replaces this one.
func RegisterHandler[T any](e *Engine, ser func(T) (*node.Mapping, error), de func(*node.Mapping) (T, error)) error {
	if err := registry.Register(e.registry, ser, de); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	e.logger.Debug("handler registered", zap.Stringer("type", reflect.TypeFor[T]()))
	return nil
}

// UnregisterHandler removes the handler registered for exactly t and reports
// whether there was one.
func (e *Engine) UnregisterHandler(t reflect.Type) bool {
	return e.registry.Unregister(t)
}

// RegisterTypeTag binds tag to the dynamic type of sample, so list elements of
// that type are written as tag and tag is read back as that type. Types without
// an explicit tag are written under their package path and name.
func (e *Engine) RegisterTypeTag(tag string, sample any) error {
	t := reflect.TypeOf(sample)
	if t == nil {
		return fmt.Errorf("%w: type tag %q needs a non-nil sample", ErrInvalidConfiguration, tag)
	}
	if err := e.tags.Register(tag, t); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return nil
}

// observe runs fn between the start and completion notifications of operation.
func (e *Engine) observe(ctx context.Context, operation string, t reflect.Type, fn func() error) error {
	metadata := map[string]any{"type": typeName(t)}
	start := time.Now()
	e.hook.OnProcessStart(ctx, operation, metadata)

	err := fn()
	if err != nil {
		e.hook.OnError(ctx, operation, err, metadata)
	}
	e.hook.OnProcessComplete(ctx, operation, time.Since(start), err, metadata)
	return err
}

func targetType(target any) reflect.Type {
	t := reflect.TypeOf(target)
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}

// invalidTarget reports whether target cannot receive a decoded value.
func invalidTarget(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return cfgxerr.NewInvalidTargetError(target)
	}
	return nil
}
