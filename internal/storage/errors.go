package storage

import "errors"

const (
	storeAccessErrorNameConstant      = "StoreAccessError"
	quotaExceededMessageConstant      = "storage quota exceeded"
	storeNotConfiguredMessageConstant = "key-value store not configured"
	unknownBackendMessageConstant     = "unknown storage backend"
)

var (
	// ErrQuotaExceeded indicates that a write would grow the store beyond its quota.
	ErrQuotaExceeded = errors.New(quotaExceededMessageConstant)
	// ErrStoreNotConfigured indicates that a TypedAccessor was built without a store.
	ErrStoreNotConfigured = errors.New(storeNotConfiguredMessageConstant)
	// ErrUnknownBackend indicates an unsupported storage backend name.
	ErrUnknownBackend = errors.New(unknownBackendMessageConstant)
)

// StoreAccessError reports a failure raised by the underlying store while reading.
// Its message is the original failure's message.
type StoreAccessError struct {
	Cause error
}

func newStoreAccessError(cause error) *StoreAccessError {
	return &StoreAccessError{Cause: cause}
}

// Error returns the original failure message.
func (accessError *StoreAccessError) Error() string {
	if accessError == nil || accessError.Cause == nil {
		return storeAccessErrorNameConstant
	}
	return accessError.Cause.Error()
}

// Unwrap exposes the original failure.
func (accessError *StoreAccessError) Unwrap() error {
	if accessError == nil {
		return nil
	}
	return accessError.Cause
}
