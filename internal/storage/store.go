package storage

// KeyValueStore exposes string-only storage primitives.
type KeyValueStore interface {
	// GetItem returns the value stored under key and whether it exists.
	GetItem(key string) (string, bool, error)
	// SetItem stores value under key, creating or replacing the entry.
	SetItem(key string, value string) error
	// RemoveItem deletes key; removing an absent key is not an error.
	RemoveItem(key string) error
	// Clear removes every entry.
	Clear() error
	// Key returns the name of the entry at index, or false when index is out of range.
	Key(index int) (string, bool, error)
	// Length reports the number of stored entries.
	Length() (int, error)
}

// Closer is implemented by stores holding external resources.
type Closer interface {
	Close() error
}
