package storage_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/groid/internal/storage"
)

type failingStore struct {
	readFailure  error
	writeFailure error
}

func (store failingStore) GetItem(string) (string, bool, error) { return "", false, store.readFailure }
func (store failingStore) SetItem(string, string) error { return store.writeFailure }
func (store failingStore) RemoveItem(string) error { return store.writeFailure }
func (store failingStore) Clear() error { return store.writeFailure }
func (store failingStore) Key(int) (string, bool, error) { return "", false, store.readFailure }
func (store failingStore) Length() (int, error) { return 0, store.readFailure }

type preferenceDocument struct {
	Theme string   `json:"theme"`
	Tags  []string `json:"tags"`
}

func newMemoryAccessor(testInstance *testing.T, entries map[string]string) *storage.TypedAccessor {
	testInstance.Helper()
	store := storage.NewMemoryStore(0)
	for key, value := range entries {
		require.NoError(testInstance, store.SetItem(key, value))
	}
	accessor, accessorError := storage.NewTypedAccessor(store)
	require.NoError(testInstance, accessorError)
	return accessor
}

func TestTypedAccessorGetString(testInstance *testing.T) {
	accessor := newMemoryAccessor(testInstance, map[string]string{"name": "groid", "empty": ""})

	value, readError := accessor.GetString("name", "fallback")
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "groid", value)

	value, readError = accessor.GetString("empty", "fallback")
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "", value)

	value, readError = accessor.GetString("absent", "fallback")
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "fallback", value)
}

func TestTypedAccessorGetNumber(testInstance *testing.T) {
	accessor := newMemoryAccessor(testInstance, map[string]string{
		"decimal":  "3.5",
		"spaced":   "  42  ",
		"empty":    "",
		"hex":      "0x1F",
		"garbage":  "12px",
		"infinity": "-Infinity",
	})

	testCases := []struct {
		key           string
		expectedValue float64
	}{
		{key: "decimal", expectedValue: 3.5},
		{key: "spaced", expectedValue: 42},
		{key: "empty", expectedValue: 0},
		{key: "hex", expectedValue: 31},
		{key: "infinity", expectedValue: math.Inf(-1)},
		{key: "absent", expectedValue: 9},
	}
	for _, testCase := range testCases {
		value, readError := accessor.GetNumber(testCase.key, 9)
		require.NoError(testInstance, readError)
		require.Equal(testInstance, testCase.expectedValue, value, testCase.key)
	}

	garbageValue, readError := accessor.GetNumber("garbage", 9)
	require.NoError(testInstance, readError)
	require.True(testInstance, math.IsNaN(garbageValue))
}

func TestTypedAccessorGetInteger(testInstance *testing.T) {
	accessor := newMemoryAccessor(testInstance, map[string]string{"positive": "7.9", "negative": "-7.9", "garbage": "seven"})

	positiveValue, _ := accessor.GetInteger("positive", 0)
	require.Equal(testInstance, int64(7), positiveValue)
	negativeValue, _ := accessor.GetInteger("negative", 0)
	require.Equal(testInstance, int64(-7), negativeValue)
	garbageValue, _ := accessor.GetInteger("garbage", 3)
	require.Equal(testInstance, int64(3), garbageValue)

	require.NoError(testInstance, accessor.SetNumber("huge", 1e30))
	require.NoError(testInstance, accessor.SetNumber("tiny", -1e30))
	hugeValue, hugeError := accessor.GetInteger("huge", 7)
	require.NoError(testInstance, hugeError)
	require.Equal(testInstance, int64(7), hugeValue)
	tinyValue, tinyError := accessor.GetInteger("tiny", 7)
	require.NoError(testInstance, tinyError)
	require.Equal(testInstance, int64(7), tinyValue)
}

func TestTypedAccessorGetBoolean(testInstance *testing.T) {
	accessor := newMemoryAccessor(testInstance, map[string]string{"exact": "true", "upper": "TRUE", "one": "1", "false": "false"})

	testCases := []struct {
		key           string
		defaultValue  bool
		expectedValue bool
	}{
		{key: "exact", expectedValue: true},
		{key: "upper", defaultValue: true, expectedValue: false},
		{key: "one", defaultValue: true, expectedValue: false},
		{key: "false", defaultValue: true, expectedValue: false},
		{key: "absent", defaultValue: true, expectedValue: true},
	}
	for _, testCase := range testCases {
		value, readError := accessor.GetBoolean(testCase.key, testCase.defaultValue)
		require.NoError(testInstance, readError)
		require.Equal(testInstance, testCase.expectedValue, value, testCase.key)
	}
}

func TestTypedAccessorWritesTextualForms(testInstance *testing.T) {
	accessor := newMemoryAccessor(testInstance, nil)
	tenth, fifth := 0.1, 0.2

	require.NoError(testInstance, accessor.SetNumber("ratio", tenth+fifth))
	require.NoError(testInstance, accessor.SetNumber("large", 1e21))
	require.NoError(testInstance, accessor.SetNumber("whole", 42))
	require.NoError(testInstance, accessor.SetNumber("nan", math.NaN()))
	require.NoError(testInstance, accessor.SetInteger("integer", -12))
	require.NoError(testInstance, accessor.SetBoolean("flag", false))
	require.NoError(testInstance, storage.SetJSON(accessor, "document", preferenceDocument{Theme: "dark", Tags: []string{"a"}}))

	expectedValues := map[string]string{
		"ratio":    "0.30000000000000004",
		"large":    "1e+21",
		"whole":    "42",
		"nan":      "NaN",
		"integer":  "-12",
		"flag":     "false",
		"document": `{"theme":"dark","tags":["a"]}`,
	}
	for key, expectedValue := range expectedValues {
		value, _, getError := accessor.Store().GetItem(key)
		require.NoError(testInstance, getError)
		require.Equal(testInstance, expectedValue, value, key)
	}

	keys, keysError := accessor.Keys()
	require.NoError(testInstance, keysError)
	require.Equal(testInstance, []string{"ratio", "large", "whole", "nan", "integer", "flag", "document"}, keys)

	entryCount, lengthError := accessor.Length()
	require.NoError(testInstance, lengthError)
	require.Equal(testInstance, 7, entryCount)

	firstKey, _, keyError := accessor.Key(0)
	require.NoError(testInstance, keyError)
	require.Equal(testInstance, "ratio", firstKey)

	require.NoError(testInstance, accessor.Remove("ratio"))
	require.NoError(testInstance, accessor.Clear())
	entryCount, _ = accessor.Length()
	require.Zero(testInstance, entryCount)
}

func TestTypedAccessorJSON(testInstance *testing.T) {
	accessor := newMemoryAccessor(testInstance, map[string]string{
		"document": `{"theme":"light","tags":["x","y"]}`,
		"broken":   `{"theme":`,
	})
	defaultDocument := preferenceDocument{Theme: "default"}

	document, readError := storage.GetJSON(accessor, "document", defaultDocument)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, preferenceDocument{Theme: "light", Tags: []string{"x", "y"}}, document)

	document, readError = storage.GetJSON(accessor, "absent", defaultDocument)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, defaultDocument, document)

	_, decodeError := storage.GetJSON(accessor, "broken", defaultDocument)
	require.Error(testInstance, decodeError)
	var syntaxError *json.SyntaxError
	require.True(testInstance, errors.As(decodeError, &syntaxError))
	var accessError *storage.StoreAccessError
	require.False(testInstance, errors.As(decodeError, &accessError))
}

func TestTypedAccessorWrapsReadFailures(testInstance *testing.T) {
	readFailure := errors.New("backend unavailable")
	accessor, accessorError := storage.NewTypedAccessor(failingStore{readFailure: readFailure})
	require.NoError(testInstance, accessorError)

	readOperations := map[string]func() error{
		"GetString": func() error {
			_, readError := accessor.GetString("key", "")
			return readError
		},
		"GetNumber": func() error {
			_, readError := accessor.GetNumber("key", 0)
			return readError
		},
		"GetInteger": func() error {
			_, readError := accessor.GetInteger("key", 0)
			return readError
		},
		"GetBoolean": func() error {
			_, readError := accessor.GetBoolean("key", false)
			return readError
		},
		"GetJSON": func() error {
			_, readError := storage.GetJSON(accessor, "key", map[string]any{})
			return readError
		},
		"Keys": func() error {
			_, readError := accessor.Keys()
			return readError
		},
	}

	for operationName, operation := range readOperations {
		testInstance.Run(operationName, func(testInstance *testing.T) {
			readError := operation()
			var accessError *storage.StoreAccessError
			require.True(testInstance, errors.As(readError, &accessError))
			require.ErrorIs(testInstance, readError, readFailure)
			require.Equal(testInstance, readFailure.Error(), readError.Error())
		})
	}
}

func TestTypedAccessorPropagatesWriteFailures(testInstance *testing.T) {
	writeFailure := errors.New("read-only store")
	accessor, accessorError := storage.NewTypedAccessor(failingStore{writeFailure: writeFailure})
	require.NoError(testInstance, accessorError)

	for _, writeError := range []error{
		accessor.SetString("key", "value"),
		accessor.SetNumber("key", 1),
		accessor.SetBoolean("key", true),
		storage.SetJSON(accessor, "key", []int{1}),
		accessor.Remove("key"),
		accessor.Clear(),
	} {
		require.Same(testInstance, writeFailure, writeError)
	}
}

func TestNewTypedAccessorRequiresStore(testInstance *testing.T) {
	_, accessorError := storage.NewTypedAccessor(nil)
	require.ErrorIs(testInstance, accessorError, storage.ErrStoreNotConfigured)
}
