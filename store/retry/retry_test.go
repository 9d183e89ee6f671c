package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hengadev/cfgx/store"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Load(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, name string, data []byte) error {
	return m.Called(ctx, name, data).Error(0)
}

func (m *mockStore) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

var errUnavailable = errors.New("service unavailable")

func fastPolicy() Policy {
	return Policy{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestStore_RetriesTransientFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	next := &mockStore{}
	next.On("Load", mock.Anything, "app").Return(nil, errUnavailable).Once()
	next.On("Load", mock.Anything, "app").Return([]byte("name: app\n"), nil).Once()

	s := New(next, fastPolicy(), zap.New(core))
	data, err := s.Load(context.Background(), "app")
	require.NoError(t, err)
	assert.Equal(t, "name: app\n", string(data))
	next.AssertNumberOfCalls(t, "Load", 2)

	entries := logs.FilterMessage("retrying document store operation").AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, "app", entries[0].ContextMap()["document"])
}

func TestStore_NotFoundIsNotRetried(t *testing.T) {
	next := &mockStore{}
	next.On("Delete", mock.Anything, "gone").Return(store.ErrNotFound)

	err := New(next, fastPolicy(), nil).Delete(context.Background(), "gone")
	assert.ErrorIs(t, err, store.ErrNotFound)
	next.AssertNumberOfCalls(t, "Delete", 1)
}

func TestStore_GivesUp(t *testing.T) {
	next := &mockStore{}
	next.On("Save", mock.Anything, "app", []byte("a: 1\n")).Return(errUnavailable)

	err := New(next, fastPolicy(), nil).Save(context.Background(), "app", []byte("a: 1\n"))
	assert.ErrorIs(t, err, errUnavailable)
	next.AssertNumberOfCalls(t, "Save", 3)
}

func TestTransient(t *testing.T) {
	assert.True(t, Transient(errUnavailable))
	assert.False(t, Transient(store.ErrNotFound))
	assert.False(t, Transient(store.ErrInvalidName))
}
