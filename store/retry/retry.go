// Package retry wraps a document store so transient backend failures are
// retried with exponential backoff. Missing documents and invalid names are
// reported immediately.
package retry

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/hengadev/cfgx/internal/reliability"
	"github.com/hengadev/cfgx/store"
)

// Policy configures attempts and delays.
type Policy = reliability.Policy

// DefaultPolicy tries three times, starting with a 100ms delay.
func DefaultPolicy() Policy { return reliability.DefaultPolicy() }

// Store retries the operations of the store it wraps.
type Store struct {
	next   store.Store
	exec   *reliability.Executor
	logger *zap.Logger
}

// New wraps next. A nil logger discards retry notices.
func New(next store.Store, policy Policy, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy.Retryable == nil {
		policy.Retryable = Transient
	}
	return &Store{next: next, exec: reliability.NewExecutor(policy), logger: logger}
}

// Transient reports whether err may go away on a later attempt.
func Transient(err error) bool {
	return !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrInvalidName)
}

func (s *Store) run(ctx context.Context, op, name string, fn func(context.Context) error) error {
	exec := *s.exec
	exec.OnRetry(func(attempt int, delay time.Duration, err error) {
		s.logger.Warn("retrying document store operation",
			zap.String("operation", op),
			zap.String("document", name),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
	})
	return exec.Execute(ctx, fn)
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.run(ctx, "load", name, func(ctx context.Context) error {
		var err error
		data, err = s.next.Load(ctx, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	return s.run(ctx, "save", name, func(ctx context.Context) error {
		return s.next.Save(ctx, name, data)
	})
}

func (s *Store) Delete(ctx context.Context, name string) error {
	return s.run(ctx, "delete", name, func(ctx context.Context) error {
		return s.next.Delete(ctx, name)
	})
}

var _ store.Store = (*Store)(nil)
