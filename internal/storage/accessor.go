package storage

import (
	"encoding/json"
	"strconv"
)

const booleanTrueLiteralConstant = "true"

// TypedAccessor reads and writes typed values through a KeyValueStore.
// Read failures from the store surface as *StoreAccessError; write failures propagate unchanged.
type TypedAccessor struct {
	store KeyValueStore
}

// NewTypedAccessor wraps store.
func NewTypedAccessor(store KeyValueStore) (*TypedAccessor, error) {
	if store == nil {
		return nil, ErrStoreNotConfigured
	}
	return &TypedAccessor{store: store}, nil
}

// Store exposes the wrapped store.
func (accessor *TypedAccessor) Store() KeyValueStore {
	return accessor.store
}

// GetString returns the stored text or defaultValue when the key is absent.
func (accessor *TypedAccessor) GetString(key string, defaultValue string) (string, error) {
	storedValue, exists, readError := accessor.read(key)
	if readError != nil || !exists {
		return defaultValue, readError
	}
	return storedValue, nil
}

// GetNumber returns the stored value coerced by ParseNumber or defaultValue when the key is absent.
func (accessor *TypedAccessor) GetNumber(key string, defaultValue float64) (float64, error) {
	storedValue, exists, readError := accessor.read(key)
	if readError != nil || !exists {
		return defaultValue, readError
	}
	return ParseNumber(storedValue), nil
}

// GetInteger returns the stored number truncated toward zero.
// Absent keys, values that are not finite numbers and values outside the int64 range yield defaultValue.
func (accessor *TypedAccessor) GetInteger(key string, defaultValue int64) (int64, error) {
	storedValue, exists, readError := accessor.read(key)
	if readError != nil || !exists {
		return defaultValue, readError
	}
	integerValue, fits := TruncateInteger(ParseNumber(storedValue))
	if !fits {
		return defaultValue, nil
	}
	return integerValue, nil
}

// GetBoolean reports whether the stored text is exactly "true"; absent keys yield defaultValue.
func (accessor *TypedAccessor) GetBoolean(key string, defaultValue bool) (bool, error) {
	storedValue, exists, readError := accessor.read(key)
	if readError != nil || !exists {
		return defaultValue, readError
	}
	return storedValue == booleanTrueLiteralConstant, nil
}

// SetString stores text verbatim.
func (accessor *TypedAccessor) SetString(key string, value string) error {
	return accessor.store.SetItem(key, value)
}

// SetNumber stores the textual form produced by FormatNumber.
func (accessor *TypedAccessor) SetNumber(key string, value float64) error {
	return accessor.store.SetItem(key, FormatNumber(value))
}

// SetInteger stores the decimal form of value.
func (accessor *TypedAccessor) SetInteger(key string, value int64) error {
	return accessor.store.SetItem(key, strconv.FormatInt(value, 10))
}

// SetBoolean stores "true" or "false".
func (accessor *TypedAccessor) SetBoolean(key string, value bool) error {
	return accessor.store.SetItem(key, strconv.FormatBool(value))
}

// Remove deletes key.
func (accessor *TypedAccessor) Remove(key string) error {
	return accessor.store.RemoveItem(key)
}

// Clear deletes every entry.
func (accessor *TypedAccessor) Clear() error {
	return accessor.store.Clear()
}

// Key returns the key at index.
func (accessor *TypedAccessor) Key(index int) (string, bool, error) {
	return accessor.store.Key(index)
}

// Length reports the number of entries.
func (accessor *TypedAccessor) Length() (int, error) {
	return accessor.store.Length()
}

// Keys lists every key in store enumeration order.
func (accessor *TypedAccessor) Keys() ([]string, error) {
	entryCount, lengthError := accessor.store.Length()
	if lengthError != nil {
		return nil, newStoreAccessError(lengthError)
	}

	keys := make([]string, 0, entryCount)
	for keyIndex := 0; keyIndex < entryCount; keyIndex++ {
		key, exists, keyError := accessor.store.Key(keyIndex)
		if keyError != nil {
			return nil, newStoreAccessError(keyError)
		}
		if !exists {
			break
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (accessor *TypedAccessor) read(key string) (string, bool, error) {
	storedValue, exists, readError := accessor.store.GetItem(key)
	if readError != nil {
		return "", false, newStoreAccessError(readError)
	}
	return storedValue, exists, nil
}

// GetJSON decodes the JSON document stored under key into T, returning defaultValue when the key is absent.
// Decode failures are returned as the encoding/json error without wrapping.
func GetJSON[T any](accessor *TypedAccessor, key string, defaultValue T) (T, error) {
	storedValue, exists, readError := accessor.read(key)
	if readError != nil || !exists {
		return defaultValue, readError
	}

	var decodedValue T
	if decodeError := json.Unmarshal([]byte(storedValue), &decodedValue); decodeError != nil {
		return defaultValue, decodeError
	}
	return decodedValue, nil
}

// SetJSON stores value encoded as JSON.
func SetJSON[T any](accessor *TypedAccessor, key string, value T) error {
	encodedValue, encodeError := json.Marshal(value)
	if encodeError != nil {
		return encodeError
	}
	return accessor.store.SetItem(key, string(encodedValue))
}
