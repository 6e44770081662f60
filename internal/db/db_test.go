package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(DriverSQLite, filepath.Join(t.TempDir(), "nested", "dues.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestGetMissingKey(t *testing.T) {
	database := newTestDB(t)

	value, ok, err := database.Get("courses")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSetOverwrites(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.Set("userName", "Alex"))
	require.NoError(t, database.Set("userName", "Sam"))

	value, ok, err := database.Get("userName")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Sam", value)
}

func TestDeleteIsIdempotent(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.Set("isAuth", "true"))
	require.NoError(t, database.Delete("isAuth"))
	require.NoError(t, database.Delete("isAuth"))

	_, ok, err := database.Get("isAuth")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dues.db")

	first, err := New(DriverSQLite, path)
	require.NoError(t, err)
	require.NoError(t, first.Set("theme", "dark"))
	require.NoError(t, first.Close())

	second, err := New(DriverSQLite, path)
	require.NoError(t, err)
	defer second.Close()

	value, ok, err := second.Get("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", value)
}
