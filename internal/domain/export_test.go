package domain

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 4, 5, 6, 7, 0, time.Local)
}

func TestUniqueExportPath(t *testing.T) {
	got := UniqueExportPath("/tmp/out", "passwords", fixedClock())
	assert.Equal(t, filepath.Join("/tmp/out", "passwords_03042026_050607.txt"), got)
}

func TestExportAllWritesDecryptedSnapshot(t *testing.T) {
	vault, _, _ := newTestVault(t)
	require.NoError(t, vault.AddOrUpdate("a.com", "alice", "Secret123!"))
	require.NoError(t, vault.AddOrUpdate("b.com", "bob", "Hunter2@x"))

	dir := t.TempDir()
	exporter := NewExporter(vault, WithExportClock(fixedClock))

	path, err := exporter.ExportAll(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "passwords_03042026_050607.txt"), path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]Credential
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string]Credential{
		"a.com": {Username: "alice", Password: "Secret123!"},
		"b.com": {Username: "bob", Password: "Hunter2@x"},
	}, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestExportAllNeverOverwrites(t *testing.T) {
	vault, _, _ := newTestVault(t)
	require.NoError(t, vault.AddOrUpdate("a.com", "alice", "Secret123!"))

	dir := t.TempDir()
	exporter := NewExporter(vault, WithExportClock(fixedClock))

	first, err := exporter.ExportAll(dir)
	require.NoError(t, err)
	second, err := exporter.ExportAll(dir)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, filepath.Join(dir, "passwords_03042026_050607_2.txt"), second)
}

func TestExportAllEmptyVault(t *testing.T) {
	vault, _, _ := newTestVault(t)
	path, err := NewExporter(vault).ExportAll(t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestExportAllFailures(t *testing.T) {
	t.Run("unwritable destination", func(t *testing.T) {
		vault, _, _ := newTestVault(t)
		_, err := NewExporter(vault).ExportAll(filepath.Join(t.TempDir(), "missing"))
		require.ErrorIs(t, err, ErrExport)
		require.ErrorIs(t, err, ErrStorage)
	})

	t.Run("listing fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credentials.json")
		require.NoError(t, NewVaultStore(path, &staticKeys{key: testKey("old")}).AddOrUpdate("a.com", "alice", "pa"))
		vault := NewVaultStore(path, &staticKeys{key: testKey("new")})

		dir := t.TempDir()
		_, err := NewExporter(vault).ExportAll(dir)
		require.ErrorIs(t, err, ErrExport)
		require.ErrorIs(t, err, ErrDecryption)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("empty destination", func(t *testing.T) {
		vault, _, _ := newTestVault(t)
		_, err := NewExporter(vault).ExportAll("")
		require.ErrorIs(t, err, ErrExport)
		require.ErrorIs(t, err, ErrValidation)
	})
}
