package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/groid/internal/storage"
)

type storeFactory func(testInstance *testing.T, quotaBytes int64) storage.KeyValueStore

func storeFactories() map[string]storeFactory {
	return map[string]storeFactory{
		"Memory": func(testInstance *testing.T, quotaBytes int64) storage.KeyValueStore {
			return storage.NewMemoryStore(quotaBytes)
		},
		"File": func(testInstance *testing.T, quotaBytes int64) storage.KeyValueStore {
			fileStore, creationError := storage.NewFileStore(filepath.Join(testInstance.TempDir(), "nested", "prefs.yaml"), quotaBytes)
			require.NoError(testInstance, creationError)
			return fileStore
		},
		"SQLite": func(testInstance *testing.T, quotaBytes int64) storage.KeyValueStore {
			sqliteStore, openError := storage.OpenSQLiteStore(filepath.Join(testInstance.TempDir(), "prefs.db"), quotaBytes)
			require.NoError(testInstance, openError)
			testInstance.Cleanup(func() {
				require.NoError(testInstance, sqliteStore.Close())
			})
			return sqliteStore
		},
	}
}

func TestKeyValueStorePrimitives(testInstance *testing.T) {
	for backendName, factory := range storeFactories() {
		testInstance.Run(backendName, func(testInstance *testing.T) {
			store := factory(testInstance, 0)

			_, exists, getError := store.GetItem("missing")
			require.NoError(testInstance, getError)
			require.False(testInstance, exists)

			require.NoError(testInstance, store.SetItem("beta", "2"))
			require.NoError(testInstance, store.SetItem("alpha", "1"))
			require.NoError(testInstance, store.SetItem("beta", "two"))

			value, exists, getError := store.GetItem("beta")
			require.NoError(testInstance, getError)
			require.True(testInstance, exists)
			require.Equal(testInstance, "two", value)

			entryCount, lengthError := store.Length()
			require.NoError(testInstance, lengthError)
			require.Equal(testInstance, 2, entryCount)

			enumeratedKeys := map[string]bool{}
			for keyIndex := 0; keyIndex < entryCount; keyIndex++ {
				key, keyExists, keyError := store.Key(keyIndex)
				require.NoError(testInstance, keyError)
				require.True(testInstance, keyExists)
				enumeratedKeys[key] = true
			}
			require.Equal(testInstance, map[string]bool{"alpha": true, "beta": true}, enumeratedKeys)

			_, outOfRange, keyError := store.Key(entryCount)
			require.NoError(testInstance, keyError)
			require.False(testInstance, outOfRange)
			_, negativeIndex, negativeError := store.Key(-1)
			require.NoError(testInstance, negativeError)
			require.False(testInstance, negativeIndex)

			require.NoError(testInstance, store.RemoveItem("beta"))
			require.NoError(testInstance, store.RemoveItem("beta"))
			_, exists, getError = store.GetItem("beta")
			require.NoError(testInstance, getError)
			require.False(testInstance, exists)

			require.NoError(testInstance, store.Clear())
			entryCount, lengthError = store.Length()
			require.NoError(testInstance, lengthError)
			require.Zero(testInstance, entryCount)
		})
	}
}

func TestKeyValueStoreQuota(testInstance *testing.T) {
	for backendName, factory := range storeFactories() {
		testInstance.Run(backendName, func(testInstance *testing.T) {
			store := factory(testInstance, 10)

			require.NoError(testInstance, store.SetItem("key", "value"))
			require.ErrorIs(testInstance, store.SetItem("other", "x"), storage.ErrQuotaExceeded)
			require.NoError(testInstance, store.SetItem("key", "valuexx"))
			require.ErrorIs(testInstance, store.SetItem("key", "valuexxx"), storage.ErrQuotaExceeded)

			value, _, getError := store.GetItem("key")
			require.NoError(testInstance, getError)
			require.Equal(testInstance, "valuexx", value)

			require.NoError(testInstance, store.RemoveItem("key"))
			require.NoError(testInstance, store.SetItem("other", "x"))
		})
	}
}

func TestInsertionOrderedBackends(testInstance *testing.T) {
	factories := storeFactories()
	for _, backendName := range []string{"Memory", "SQLite"} {
		testInstance.Run(backendName, func(testInstance *testing.T) {
			store := factories[backendName](testInstance, 0)
			for _, key := range []string{"zulu", "alpha", "mike"} {
				require.NoError(testInstance, store.SetItem(key, key))
			}
			require.NoError(testInstance, store.SetItem("zulu", "updated"))

			accessor, accessorError := storage.NewTypedAccessor(store)
			require.NoError(testInstance, accessorError)
			keys, keysError := accessor.Keys()
			require.NoError(testInstance, keysError)
			require.Equal(testInstance, []string{"zulu", "alpha", "mike"}, keys)
		})
	}
}
