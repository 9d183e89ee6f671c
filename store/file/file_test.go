package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hengadev/cfgx/store"
)

func TestStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "services/api", []byte("port: 8080\n")))
	assert.FileExists(t, filepath.Join(dir, "services", "api.yaml"))

	data, err := s.Load(ctx, "services/api")
	require.NoError(t, err)
	assert.Equal(t, "port: 8080\n", string(data))

	require.NoError(t, s.Save(ctx, "services/api", []byte("port: 9090\n")))
	data, err = s.Load(ctx, "services/api")
	require.NoError(t, err)
	assert.Equal(t, "port: 9090\n", string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "services"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")

	require.NoError(t, s.Delete(ctx, "services/api"))
	_, err = s.Load(ctx, "services/api")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "services/api"), store.ErrNotFound)
}

func TestStore_RejectsInvalidNames(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	err = s.Save(context.Background(), "../outside", []byte("x"))
	assert.ErrorIs(t, err, store.ErrInvalidName)
}

func TestStore_CancelledContext(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Save(ctx, "app", []byte("x")), context.Canceled)
}

func TestNew_RequiresDirectory(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
