// ABOUTME: Tests for opening the slot database on disk
// ABOUTME: Checks nested directory creation, WAL journaling and reopening an existing file
package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotTables(t *testing.T, path string) []string {
	t.Helper()
	conn, err := OpenDatabase(path)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	rows, err := conn.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestOpenDatabaseCreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revenueos", "data", "revenueos.db")

	conn, err := OpenDatabase(path)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	var mode string
	require.NoError(t, conn.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.Equal(t, 1, conn.Stats().MaxOpenConnections)
}

func TestOpenDatabaseTwiceKeepsSlotTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revenueos.db")

	assert.Equal(t, []string{"kv_slots", "slot_history"}, slotTables(t, path))
	assert.Equal(t, []string{"kv_slots", "slot_history"}, slotTables(t, path))
}

func TestOpenDatabaseUnwritableDir(t *testing.T) {
	_, err := OpenDatabase("/proc/revenueos/revenueos.db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create database directory")
}
