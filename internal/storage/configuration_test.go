package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/groid/internal/storage"
)

func TestOpenStoreSelectsBackend(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()

	memoryStore, memoryError := storage.OpenStore(storage.Configuration{Backend: "Memory"})
	require.NoError(testInstance, memoryError)
	require.IsType(testInstance, &storage.MemoryStore{}, memoryStore)

	fileStore, fileError := storage.OpenStore(storage.Configuration{Backend: "file", Path: filepath.Join(temporaryDirectory, "prefs.yaml")})
	require.NoError(testInstance, fileError)
	require.IsType(testInstance, &storage.FileStore{}, fileStore)

	sqliteStore, sqliteError := storage.OpenStore(storage.Configuration{Backend: " sqlite ", Path: filepath.Join(temporaryDirectory, "prefs.db"), QuotaBytes: 64})
	require.NoError(testInstance, sqliteError)
	require.IsType(testInstance, &storage.SQLiteStore{}, sqliteStore)
	closer, closable := sqliteStore.(storage.Closer)
	require.True(testInstance, closable)
	require.NoError(testInstance, closer.Close())

	_, unknownError := storage.OpenStore(storage.Configuration{Backend: "redis"})
	require.ErrorIs(testInstance, unknownError, storage.ErrUnknownBackend)
	require.Contains(testInstance, unknownError.Error(), "redis")
}

func TestStorageDefaultConfigurationValues(testInstance *testing.T) {
	require.Equal(testInstance, map[string]any{
		"storage.backend":     "file",
		"storage.path":        "groid-prefs.yaml",
		"storage.quota_bytes": 0,
	}, storage.DefaultConfigurationValues("storage"))
	require.Equal(testInstance, []string{"file", "sqlite", "memory"}, storage.Backends())
}
