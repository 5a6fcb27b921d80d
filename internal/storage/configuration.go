package storage

import (
	"fmt"
	"strings"

	pathutils "github.com/temirov/groid/internal/utils/path"
)

const (
	backendMemoryStringConstant         = "memory"
	backendFileStringConstant           = "file"
	backendSQLiteStringConstant         = "sqlite"
	backendConfigurationKeyConstant     = "backend"
	pathConfigurationKeyConstant        = "path"
	quotaConfigurationKeyConstant       = "quota_bytes"
	configurationKeySeparatorConstant   = "."
	defaultStorePathConstant            = "groid-prefs.yaml"
	unknownBackendErrorTemplateConstant = "%w: %s"
)

// Backend identifies a KeyValueStore implementation.
type Backend string

// Supported backends.
const (
	BackendMemory Backend = Backend(backendMemoryStringConstant)
	BackendFile   Backend = Backend(backendFileStringConstant)
	BackendSQLite Backend = Backend(backendSQLiteStringConstant)
)

// Configuration selects and parameterizes the store backend.
type Configuration struct {
	Backend    string `mapstructure:"backend"`
	Path       string `mapstructure:"path"`
	QuotaBytes int64  `mapstructure:"quota_bytes"`
}

// DefaultConfigurationValues returns viper defaults for the storage section rooted at prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	return map[string]any{
		qualifyKey(prefix, backendConfigurationKeyConstant): backendFileStringConstant,
		qualifyKey(prefix, pathConfigurationKeyConstant):    defaultStorePathConstant,
		qualifyKey(prefix, quotaConfigurationKeyConstant):   0,
	}
}

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{backendFileStringConstant, backendSQLiteStringConstant, backendMemoryStringConstant}
}

// OpenStore constructs the store described by configuration.
// A leading `~` in the path resolves to the user's home directory.
// Callers should close stores implementing Closer.
func OpenStore(configuration Configuration) (KeyValueStore, error) {
	normalizedBackend := Backend(strings.ToLower(strings.TrimSpace(configuration.Backend)))
	storePath := pathutils.NewHomeExpander().Expand(strings.TrimSpace(configuration.Path))
	switch normalizedBackend {
	case BackendMemory:
		return NewMemoryStore(configuration.QuotaBytes), nil
	case BackendFile:
		return NewFileStore(storePath, configuration.QuotaBytes)
	case BackendSQLite:
		return OpenSQLiteStore(storePath, configuration.QuotaBytes)
	default:
		return nil, fmt.Errorf(unknownBackendErrorTemplateConstant, ErrUnknownBackend, configuration.Backend)
	}
}

func qualifyKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}
