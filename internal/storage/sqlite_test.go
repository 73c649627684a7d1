package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvu/taskpad/internal/storage"
)

func newAdapter(t *testing.T) *storage.SQLiteAdapter {
	t.Helper()

	a, err := storage.NewSQLiteAdapter(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestSaveLoadRoundTrip(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	value := []byte(`[{"id":"a","title":"Buy milk"}]`)
	require.NoError(t, a.Save(ctx, storage.KeyTasks, value))

	got, err := a.Load(ctx, storage.KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestLoadMissingKey(t *testing.T) {
	a := newAdapter(t)

	_, err := a.Load(context.Background(), storage.KeyTheme)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSaveReplacesExistingValue(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, storage.KeySort, []byte("date")))
	require.NoError(t, a.Save(ctx, storage.KeySort, []byte("alphabetical")))

	got, err := a.Load(ctx, storage.KeySort)
	require.NoError(t, err)
	assert.Equal(t, []byte("alphabetical"), got)
}

func TestKeysAreIndependent(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, storage.KeyTheme, []byte("dark")))

	_, err := a.Load(ctx, storage.KeyTasks)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	got, err := a.Load(ctx, storage.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, []byte("dark"), got)
}

func TestReopenPersistsOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	ctx := context.Background()

	a, err := storage.NewSQLiteAdapter(path)
	require.NoError(t, err)
	require.NoError(t, a.Save(ctx, storage.KeyTasks, []byte(`[]`)))
	require.NoError(t, a.Close())

	b, err := storage.NewSQLiteAdapter(path)
	require.NoError(t, err)
	defer b.Close()

	got, err := b.Load(ctx, storage.KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestMemoryAdapterContract(t *testing.T) {
	m := storage.NewMemoryAdapter()
	ctx := context.Background()

	_, err := m.Load(ctx, storage.KeyTasks)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, m.Save(ctx, storage.KeyTasks, []byte("x")))
	got, err := m.Load(ctx, storage.KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got)

	// Mutating the returned slice must not affect the stored value.
	got[0] = 'y'
	again, err := m.Load(ctx, storage.KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), again)
}
