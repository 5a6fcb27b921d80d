// Package storage layers typed accessors over string-only key-value stores.
//
// KeyValueStore describes the host capability (get, set, remove, clear, key
// enumeration, length). MemoryStore, FileStore, and SQLiteStore implement it;
// TypedAccessor coerces strings to numbers, booleans, and JSON documents and
// wraps read failures in StoreAccessError.
package storage
