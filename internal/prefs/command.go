package prefs

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/groid/internal/storage"
	"github.com/temirov/groid/internal/utils/flags"
)

const (
	groupUseConstant                      = "prefs"
	groupShortDescriptionConstant         = "Read and write typed preferences"
	groupLongDescriptionConstant          = "prefs reads and writes string, number, integer, boolean, and JSON values stored as strings in the configured key-value store."
	getUseConstant                        = "get <key>"
	getShortDescriptionConstant           = "Print the typed value of a key"
	setUseConstant                        = "set <key> <value>"
	setShortDescriptionConstant           = "Store a typed value under a key"
	removeUseConstant                     = "remove <key>"
	removeShortDescriptionConstant        = "Delete a key"
	listUseConstant                       = "list"
	listShortDescriptionConstant          = "Print every key and raw value"
	clearUseConstant                      = "clear"
	clearShortDescriptionConstant         = "Delete every key"
	flagTypeNameConstant                  = "type"
	flagTypeDescriptionConstant           = "Value type applied when reading or writing."
	flagDefaultNameConstant               = "default"
	flagDefaultDescriptionConstant        = "Value printed when the key is absent or unreadable as the requested type."
	commandExecutionErrorTemplateConstant = "prefs %s failed: %w"
	storeCloseErrorTemplateConstant       = "failed to close store: %w"
	storeOpenedLogConstant                = "preference store opened"
	logFieldBackendConstant               = "backend"
	logFieldPathConstant                  = "path"
	storeNotOpenedMessageConstant         = "store opener returned no store"
)

var errStoreNotOpened = errors.New(storeNotOpenedMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the storage configuration.
type ConfigurationProvider func() storage.Configuration

// StoreOpener opens the store described by configuration.
type StoreOpener func(storage.Configuration) (storage.KeyValueStore, error)

// CommandBuilder assembles the prefs command group.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	StoreOpener           StoreOpener
}

// Build constructs the prefs command with its subcommands.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	groupCommand := &cobra.Command{
		Use:   groupUseConstant,
		Short: groupShortDescriptionConstant,
		Long:  groupLongDescriptionConstant,
	}

	getCommand := &cobra.Command{
		Use:   getUseConstant,
		Short: getShortDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			valueType, typeError := parseValueType(command)
			if typeError != nil {
				return typeError
			}
			defaultValue, _ := command.Flags().GetString(flagDefaultNameConstant)
			return builder.withService(command, func(service *Service) error {
				return service.Get(GetRequest{Key: arguments[0], Type: valueType, DefaultValue: defaultValue})
			})
		},
	}
	addTypeFlag(getCommand)
	getCommand.Flags().String(flagDefaultNameConstant, "", flagDefaultDescriptionConstant)

	setCommand := &cobra.Command{
		Use:   setUseConstant,
		Short: setShortDescriptionConstant,
		Args:  cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, arguments []string) error {
			valueType, typeError := parseValueType(command)
			if typeError != nil {
				return typeError
			}
			return builder.withService(command, func(service *Service) error {
				return service.Set(SetRequest{Key: arguments[0], Value: arguments[1], Type: valueType})
			})
		},
	}
	addTypeFlag(setCommand)

	removeCommand := &cobra.Command{
		Use:   removeUseConstant,
		Short: removeShortDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.withService(command, func(service *Service) error {
				return service.Remove(arguments[0])
			})
		},
	}

	listCommand := &cobra.Command{
		Use:   listUseConstant,
		Short: listShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.withService(command, func(service *Service) error {
				return service.List()
			})
		},
	}

	clearCommand := &cobra.Command{
		Use:   clearUseConstant,
		Short: clearShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.withService(command, func(service *Service) error {
				return service.Clear()
			})
		},
	}

	groupCommand.AddCommand(getCommand, setCommand, removeCommand, listCommand, clearCommand)
	return groupCommand, nil
}

func (builder *CommandBuilder) withService(command *cobra.Command, operation func(*Service) error) (resultError error) {
	logger := builder.resolveLogger()

	var configuration storage.Configuration
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	opener := builder.StoreOpener
	if opener == nil {
		opener = storage.OpenStore
	}

	store, openError := opener(configuration)
	if openError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, command.Name(), openError)
	}
	if store == nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, command.Name(), errStoreNotOpened)
	}
	if closer, closable := store.(storage.Closer); closable {
		defer func() {
			if closeError := closer.Close(); closeError != nil && resultError == nil {
				resultError = fmt.Errorf(storeCloseErrorTemplateConstant, closeError)
			}
		}()
	}

	logger.Debug(
		storeOpenedLogConstant,
		zap.String(logFieldBackendConstant, configuration.Backend),
		zap.String(logFieldPathConstant, configuration.Path),
	)

	accessor, accessorError := storage.NewTypedAccessor(store)
	if accessorError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, command.Name(), accessorError)
	}

	service, serviceError := NewService(logger, accessor, command.OutOrStdout())
	if serviceError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, command.Name(), serviceError)
	}

	if operationError := operation(service); operationError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, command.Name(), operationError)
	}
	return nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func addTypeFlag(command *cobra.Command) {
	command.Flags().String(flagTypeNameConstant, valueTypeStringConstant, flags.FormatChoiceUsage(valueTypeStringConstant, ValueTypes(), flagTypeDescriptionConstant))
}

func parseValueType(command *cobra.Command) (ValueType, error) {
	typeValue, _ := command.Flags().GetString(flagTypeNameConstant)
	selectedType, selectError := flags.SelectChoice(typeValue, valueTypeStringConstant, ValueTypes())
	if selectError != nil {
		return "", selectError
	}
	return ValueType(selectedType), nil
}
