package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/groid/internal/storage"
	"github.com/temirov/groid/internal/utils/flags"
)

const (
	valueTypeStringConstant              = "string"
	valueTypeNumberConstant              = "number"
	valueTypeIntegerConstant             = "integer"
	valueTypeBooleanConstant             = "boolean"
	valueTypeJSONConstant                = "json"
	notANumberLiteralConstant            = "NaN"
	listLineTemplateConstant             = "%s\t%s\n"
	valueLineTemplateConstant            = "%s\n"
	invalidNumberTemplateConstant        = "invalid number %q"
	invalidIntegerTemplateConstant       = "invalid integer %q"
	invalidBooleanTemplateConstant       = "invalid boolean %q: %w"
	invalidJSONTemplateConstant          = "invalid json %q: %w"
	unsupportedValueTypeTemplateConstant = "unsupported value type %q"
	accessorNotConfiguredMessageConstant = "preference accessor not configured"
	preferenceWrittenLogConstant         = "preference written"
	preferenceRemovedLogConstant         = "preference removed"
	preferencesClearedLogConstant        = "preferences cleared"
	logFieldKeyConstant                  = "key"
	logFieldValueTypeConstant            = "value_type"
)

// ErrAccessorNotConfigured indicates that NewService received no accessor.
var ErrAccessorNotConfigured = errors.New(accessorNotConfiguredMessageConstant)

// ValueType selects the typed accessor applied to a preference.
type ValueType string

// Supported value types.
const (
	ValueTypeString  ValueType = ValueType(valueTypeStringConstant)
	ValueTypeNumber  ValueType = ValueType(valueTypeNumberConstant)
	ValueTypeInteger ValueType = ValueType(valueTypeIntegerConstant)
	ValueTypeBoolean ValueType = ValueType(valueTypeBooleanConstant)
	ValueTypeJSON    ValueType = ValueType(valueTypeJSONConstant)
)

// ValueTypes lists the accepted value type names.
func ValueTypes() []string {
	return []string{valueTypeStringConstant, valueTypeNumberConstant, valueTypeIntegerConstant, valueTypeBooleanConstant, valueTypeJSONConstant}
}

// GetRequest describes a typed read.
type GetRequest struct {
	Key          string
	Type         ValueType
	DefaultValue string
}

// SetRequest describes a typed write.
type SetRequest struct {
	Key   string
	Value string
	Type  ValueType
}

// Service executes preference operations and prints results to an output writer.
type Service struct {
	logger   *zap.Logger
	accessor *storage.TypedAccessor
	output   io.Writer
}

// NewService constructs a Service.
func NewService(logger *zap.Logger, accessor *storage.TypedAccessor, output io.Writer) (*Service, error) {
	if accessor == nil {
		return nil, ErrAccessorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if output == nil {
		output = io.Discard
	}
	return &Service{logger: logger, accessor: accessor, output: output}, nil
}

// Get prints the typed value stored under the key, or the typed default when it is absent.
func (service *Service) Get(request GetRequest) error {
	renderedValue, readError := service.readRendered(request)
	if readError != nil {
		return readError
	}
	_, writeError := fmt.Fprintf(service.output, valueLineTemplateConstant, renderedValue)
	return writeError
}

// Set converts the textual value to the requested type and stores it.
func (service *Service) Set(request SetRequest) error {
	var writeError error
	switch request.Type {
	case ValueTypeString:
		writeError = service.accessor.SetString(request.Key, request.Value)
	case ValueTypeNumber:
		numberValue, parseError := parseNumberArgument(request.Value)
		if parseError != nil {
			return parseError
		}
		writeError = service.accessor.SetNumber(request.Key, numberValue)
	case ValueTypeInteger:
		integerValue, parseError := parseIntegerArgument(request.Value)
		if parseError != nil {
			return parseError
		}
		writeError = service.accessor.SetInteger(request.Key, integerValue)
	case ValueTypeBoolean:
		booleanValue, parseError := flags.ParseToggleValue(request.Value)
		if parseError != nil {
			return fmt.Errorf(invalidBooleanTemplateConstant, request.Value, parseError)
		}
		writeError = service.accessor.SetBoolean(request.Key, booleanValue)
	case ValueTypeJSON:
		var document any
		if decodeError := json.Unmarshal([]byte(request.Value), &document); decodeError != nil {
			return fmt.Errorf(invalidJSONTemplateConstant, request.Value, decodeError)
		}
		writeError = storage.SetJSON(service.accessor, request.Key, document)
	default:
		return fmt.Errorf(unsupportedValueTypeTemplateConstant, request.Type)
	}
	if writeError != nil {
		return writeError
	}

	service.logger.Debug(preferenceWrittenLogConstant, zap.String(logFieldKeyConstant, request.Key), zap.String(logFieldValueTypeConstant, string(request.Type)))
	return nil
}

// Remove deletes the key.
func (service *Service) Remove(key string) error {
	if removeError := service.accessor.Remove(key); removeError != nil {
		return removeError
	}
	service.logger.Debug(preferenceRemovedLogConstant, zap.String(logFieldKeyConstant, key))
	return nil
}

// List prints every key with its raw string value in store order.
func (service *Service) List() error {
	keys, keysError := service.accessor.Keys()
	if keysError != nil {
		return keysError
	}
	for _, key := range keys {
		value, readError := service.accessor.GetString(key, "")
		if readError != nil {
			return readError
		}
		if _, writeError := fmt.Fprintf(service.output, listLineTemplateConstant, key, value); writeError != nil {
			return writeError
		}
	}
	return nil
}

// Clear removes every key.
func (service *Service) Clear() error {
	if clearError := service.accessor.Clear(); clearError != nil {
		return clearError
	}
	service.logger.Debug(preferencesClearedLogConstant)
	return nil
}

func (service *Service) readRendered(request GetRequest) (string, error) {
	switch request.Type {
	case ValueTypeString:
		return service.accessor.GetString(request.Key, request.DefaultValue)
	case ValueTypeNumber:
		numberValue, readError := service.accessor.GetNumber(request.Key, storage.ParseNumber(request.DefaultValue))
		if readError != nil {
			return "", readError
		}
		return storage.FormatNumber(numberValue), nil
	case ValueTypeInteger:
		defaultInteger, parseError := parseIntegerArgument(request.DefaultValue)
		if parseError != nil {
			return "", parseError
		}
		integerValue, readError := service.accessor.GetInteger(request.Key, defaultInteger)
		if readError != nil {
			return "", readError
		}
		return strconv.FormatInt(integerValue, 10), nil
	case ValueTypeBoolean:
		defaultBoolean := false
		if len(strings.TrimSpace(request.DefaultValue)) > 0 {
			parsedDefault, parseError := flags.ParseToggleValue(request.DefaultValue)
			if parseError != nil {
				return "", fmt.Errorf(invalidBooleanTemplateConstant, request.DefaultValue, parseError)
			}
			defaultBoolean = parsedDefault
		}
		booleanValue, readError := service.accessor.GetBoolean(request.Key, defaultBoolean)
		if readError != nil {
			return "", readError
		}
		return strconv.FormatBool(booleanValue), nil
	case ValueTypeJSON:
		var defaultDocument any
		if len(strings.TrimSpace(request.DefaultValue)) > 0 {
			if decodeError := json.Unmarshal([]byte(request.DefaultValue), &defaultDocument); decodeError != nil {
				return "", fmt.Errorf(invalidJSONTemplateConstant, request.DefaultValue, decodeError)
			}
		}
		document, readError := storage.GetJSON(service.accessor, request.Key, defaultDocument)
		if readError != nil {
			return "", readError
		}
		encodedDocument, encodeError := json.Marshal(document)
		if encodeError != nil {
			return "", encodeError
		}
		return string(encodedDocument), nil
	default:
		return "", fmt.Errorf(unsupportedValueTypeTemplateConstant, request.Type)
	}
}

func parseNumberArgument(rawValue string) (float64, error) {
	numberValue := storage.ParseNumber(rawValue)
	if math.IsNaN(numberValue) && strings.TrimSpace(rawValue) != notANumberLiteralConstant {
		return 0, fmt.Errorf(invalidNumberTemplateConstant, rawValue)
	}
	return numberValue, nil
}

func parseIntegerArgument(rawValue string) (int64, error) {
	integerValue, fits := storage.TruncateInteger(storage.ParseNumber(rawValue))
	if !fits {
		return 0, fmt.Errorf(invalidIntegerTemplateConstant, rawValue)
	}
	return integerValue, nil
}
