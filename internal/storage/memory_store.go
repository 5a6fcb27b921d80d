package storage

import "sync"

// MemoryStore keeps entries in memory and enumerates keys in insertion order.
type MemoryStore struct {
	mutex       sync.RWMutex
	quota       storageQuota
	orderedKeys []string
	values      map[string]string
	sizeBytes   int64
}

// NewMemoryStore constructs an empty store. A positive quotaBytes bounds the combined key and value length.
func NewMemoryStore(quotaBytes int64) *MemoryStore {
	return &MemoryStore{
		quota:  storageQuota{limitBytes: quotaBytes},
		values: make(map[string]string),
	}
}

// GetItem implements KeyValueStore.
func (store *MemoryStore) GetItem(key string) (string, bool, error) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	value, exists := store.values[key]
	return value, exists, nil
}

// SetItem implements KeyValueStore.
func (store *MemoryStore) SetItem(key string, value string) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	previousValue, previousExists := store.values[key]
	if !store.quota.permits(store.sizeBytes, key, previousValue, previousExists, value) {
		return ErrQuotaExceeded
	}

	if previousExists {
		store.sizeBytes -= entrySize(key, previousValue)
	} else {
		store.orderedKeys = append(store.orderedKeys, key)
	}
	store.values[key] = value
	store.sizeBytes += entrySize(key, value)
	return nil
}

// RemoveItem implements KeyValueStore.
func (store *MemoryStore) RemoveItem(key string) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	previousValue, previousExists := store.values[key]
	if !previousExists {
		return nil
	}
	delete(store.values, key)
	store.sizeBytes -= entrySize(key, previousValue)
	for keyIndex, orderedKey := range store.orderedKeys {
		if orderedKey == key {
			store.orderedKeys = append(store.orderedKeys[:keyIndex], store.orderedKeys[keyIndex+1:]...)
			break
		}
	}
	return nil
}

// Clear implements KeyValueStore.
func (store *MemoryStore) Clear() error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.orderedKeys = nil
	store.values = make(map[string]string)
	store.sizeBytes = 0
	return nil
}

// Key implements KeyValueStore.
func (store *MemoryStore) Key(index int) (string, bool, error) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	if index < 0 || index >= len(store.orderedKeys) {
		return "", false, nil
	}
	return store.orderedKeys[index], true, nil
}

// Length implements KeyValueStore.
func (store *MemoryStore) Length() (int, error) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	return len(store.orderedKeys), nil
}
