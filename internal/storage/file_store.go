package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

const (
	fileStoreDirectoryPermissionsConstant   = 0o755
	fileStorePathRequiredMessageConstant    = "file store path is required"
	fileStoreReadErrorTemplateConstant      = "failed to read store file %s: %w"
	fileStoreDecodeErrorTemplateConstant    = "failed to decode store file %s: %w"
	fileStoreEncodeErrorTemplateConstant    = "failed to encode store file %s: %w"
	fileStoreWriteErrorTemplateConstant     = "failed to write store file %s: %w"
	fileStoreDirectoryErrorTemplateConstant = "failed to create store directory %s: %w"
)

// ErrFileStorePathRequired indicates that NewFileStore received an empty path.
var ErrFileStorePathRequired = errors.New(fileStorePathRequiredMessageConstant)

// FileStore persists entries as a YAML mapping, replacing the file atomically on every write.
// The file is re-read on every operation so that edits made by other processes are observed.
// Keys are enumerated in lexicographic order.
type FileStore struct {
	mutex    sync.Mutex
	filePath string
	quota    storageQuota
}

// NewFileStore constructs a store backed by filePath. The file is created on first write.
func NewFileStore(filePath string, quotaBytes int64) (*FileStore, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return nil, ErrFileStorePathRequired
	}
	return &FileStore{filePath: trimmedPath, quota: storageQuota{limitBytes: quotaBytes}}, nil
}

// Path returns the backing file path.
func (store *FileStore) Path() string {
	return store.filePath
}

// GetItem implements KeyValueStore.
func (store *FileStore) GetItem(key string) (string, bool, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	entries, loadError := store.load()
	if loadError != nil {
		return "", false, loadError
	}
	value, exists := entries[key]
	return value, exists, nil
}

// SetItem implements KeyValueStore.
func (store *FileStore) SetItem(key string, value string) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	entries, loadError := store.load()
	if loadError != nil {
		return loadError
	}

	previousValue, previousExists := entries[key]
	if !store.quota.permits(totalSize(entries), key, previousValue, previousExists, value) {
		return ErrQuotaExceeded
	}

	entries[key] = value
	return store.persist(entries)
}

// RemoveItem implements KeyValueStore.
func (store *FileStore) RemoveItem(key string) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	entries, loadError := store.load()
	if loadError != nil {
		return loadError
	}
	if _, exists := entries[key]; !exists {
		return nil
	}
	delete(entries, key)
	return store.persist(entries)
}

// Clear implements KeyValueStore.
func (store *FileStore) Clear() error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.persist(map[string]string{})
}

// Key implements KeyValueStore.
func (store *FileStore) Key(index int) (string, bool, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	entries, loadError := store.load()
	if loadError != nil {
		return "", false, loadError
	}
	sortedKeys := sortedEntryKeys(entries)
	if index < 0 || index >= len(sortedKeys) {
		return "", false, nil
	}
	return sortedKeys[index], true, nil
}

// Length implements KeyValueStore.
func (store *FileStore) Length() (int, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	entries, loadError := store.load()
	if loadError != nil {
		return 0, loadError
	}
	return len(entries), nil
}

func (store *FileStore) load() (map[string]string, error) {
	content, readError := os.ReadFile(store.filePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf(fileStoreReadErrorTemplateConstant, store.filePath, readError)
	}

	entries := map[string]string{}
	if decodeError := yaml.Unmarshal(content, &entries); decodeError != nil {
		return nil, fmt.Errorf(fileStoreDecodeErrorTemplateConstant, store.filePath, decodeError)
	}
	if entries == nil {
		entries = map[string]string{}
	}
	return entries, nil
}

func (store *FileStore) persist(entries map[string]string) error {
	content, encodeError := yaml.Marshal(entries)
	if encodeError != nil {
		return fmt.Errorf(fileStoreEncodeErrorTemplateConstant, store.filePath, encodeError)
	}

	directoryPath := filepath.Dir(store.filePath)
	if directoryError := os.MkdirAll(directoryPath, fileStoreDirectoryPermissionsConstant); directoryError != nil {
		return fmt.Errorf(fileStoreDirectoryErrorTemplateConstant, directoryPath, directoryError)
	}

	if writeError := atomic.WriteFile(store.filePath, bytes.NewReader(content)); writeError != nil {
		return fmt.Errorf(fileStoreWriteErrorTemplateConstant, store.filePath, writeError)
	}
	return nil
}

func sortedEntryKeys(entries map[string]string) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func totalSize(entries map[string]string) int64 {
	var size int64
	for key, value := range entries {
		size += entrySize(key, value)
	}
	return size
}
