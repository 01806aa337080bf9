package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, RecordProfile, []byte(`{"name":"Andriy"}`)))

	data, err := s.Load(ctx, RecordProfile)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Andriy"}`, string(data))
}

func TestFileStore_LoadMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	data, err := s.Load(context.Background(), RecordHistory)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, RecordHistory, []byte(`{"v":1}`)))
	require.NoError(t, s.Save(ctx, RecordHistory, []byte(`{"v":2}`)))

	data, err := s.Load(ctx, RecordHistory)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(data))
}

func TestFileStore_Delete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, RecordProfile, []byte(`{}`)))
	require.NoError(t, s.Delete(ctx, RecordProfile))

	data, err := s.Load(ctx, RecordProfile)
	require.NoError(t, err)
	assert.Nil(t, data)

	// Deleting again is not an error.
	require.NoError(t, s.Delete(ctx, RecordProfile))
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), RecordProfile, []byte(`{}`)))

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestNewFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
