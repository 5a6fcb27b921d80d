package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/groid/internal/console"
	"github.com/temirov/groid/internal/prefs"
	"github.com/temirov/groid/internal/say"
	"github.com/temirov/groid/internal/storage"
	"github.com/temirov/groid/internal/utils"
	pathutils "github.com/temirov/groid/internal/utils/path"
)

const (
	applicationNameConstant                = "groid"
	applicationShortDescriptionConstant    = "Render styled console templates and manage typed preferences"
	applicationLongDescriptionConstant     = "groid replaces <token> placeholders with terminal styling sequences and reads or writes typed values in a string key-value store."
	configFileFlagNameConstant             = "config"
	configFileFlagUsageConstant            = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant               = "log-level"
	logLevelFlagUsageConstant              = "Override the configured log level."
	logFormatFlagNameConstant              = "log-format"
	logFormatFlagUsageConstant             = "Override the configured log format (structured or console)."
	commonLogLevelConfigKeyConstant        = "common.log_level"
	commonLogFormatConfigKeyConstant       = "common.log_format"
	consoleConfigurationKeyConstant        = "console"
	storageConfigurationKeyConstant        = "storage"
	environmentPrefixConstant              = "GROID"
	configurationNameConstant              = "config"
	configurationTypeConstant              = "yaml"
	workingDirectorySearchPathConstant     = "."
	userConfigurationSearchPathConstant    = "~/.config/groid"
	configurationLoadErrorTemplateConstant = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant    = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant        = "unable to flush logger: %w"
	commandBuildErrorTemplateConstant      = "unable to build command: %w"
	settingsResolvedMessageConstant        = "settings resolved"
	logFieldLogLevelConstant               = "log_level"
	logFieldLogFormatConstant              = "log_format"
	logFieldConfigFileConstant             = "config_file"
	logFieldColorModeConstant              = "color"
	logFieldStorageBackendConstant         = "storage_backend"
	logFieldStoragePathConstant            = "storage_path"
	logFieldPaletteSizeConstant            = "palette_size"
)

// ApplicationConfiguration is the document decoded from defaults, config files and GROID_* variables.
type ApplicationConfiguration struct {
	Common  ApplicationCommonConfiguration `mapstructure:"common"`
	Console console.Configuration          `mapstructure:"console"`
	Storage storage.Configuration          `mapstructure:"storage"`
}

// ApplicationCommonConfiguration holds the logging settings.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

type subcommandBuilder interface {
	Build() (*cobra.Command, error)
}

// Application owns the groid root command together with its resolved settings and logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
}

// NewApplication constructs the root command and registers the say, palette and prefs subcommands.
func NewApplication() *Application {
	searchPaths := []string{
		workingDirectorySearchPathConstant,
		pathutils.NewHomeExpander().Expand(userConfigurationSearchPathConstant),
	}
	configurationLoader := utils.NewConfigurationLoader(configurationNameConstant, configurationTypeConstant, environmentPrefixConstant, searchPaths)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
	}

	rootCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	rootCommand.SetContext(context.Background())

	persistentFlags := rootCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	persistentFlags.StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	for _, builder := range application.subcommandBuilders() {
		subcommand, buildError := builder.Build()
		if buildError != nil {
			panic(fmt.Errorf(commandBuildErrorTemplateConstant, buildError))
		}
		rootCommand.AddCommand(subcommand)
	}

	application.rootCommand = rootCommand
	return application
}

func (application *Application) subcommandBuilders() []subcommandBuilder {
	loggerProvider := func() *zap.Logger { return application.logger }
	consoleProvider := func() console.Configuration { return application.configuration.Console }
	storageProvider := func() storage.Configuration { return application.configuration.Storage }

	return []subcommandBuilder{
		&say.CommandBuilder{LoggerProvider: loggerProvider, ConfigurationProvider: consoleProvider},
		&say.PaletteCommandBuilder{LoggerProvider: loggerProvider, ConfigurationProvider: consoleProvider},
		&prefs.CommandBuilder{LoggerProvider: loggerProvider, ConfigurationProvider: storageProvider},
	}
}

// Execute runs the command tree and flushes the logger afterwards.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application and runs it against os.Args.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, configurationDefaults(), &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configurationMetadata = loadedConfiguration
	application.applyLoggingFlagOverrides(command)

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(normalizeSetting(application.configuration.Common.LogLevel)),
		utils.LogFormat(normalizeSetting(application.configuration.Common.LogFormat)),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}
	application.logger = logger

	application.logger.Debug(
		settingsResolvedMessageConstant,
		zap.String(logFieldLogLevelConstant, application.configuration.Common.LogLevel),
		zap.String(logFieldLogFormatConstant, application.configuration.Common.LogFormat),
		zap.String(logFieldConfigFileConstant, application.configurationMetadata.ConfigFileUsed),
		zap.String(logFieldColorModeConstant, application.configuration.Console.ColorMode),
		zap.Int(logFieldPaletteSizeConstant, len(application.configuration.Console.Palette)),
		zap.String(logFieldStorageBackendConstant, application.configuration.Storage.Backend),
		zap.String(logFieldStoragePathConstant, application.configuration.Storage.Path),
	)
	return nil
}

func configurationDefaults() map[string]any {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	maps.Copy(defaultValues, console.DefaultConfigurationValues(consoleConfigurationKeyConstant))
	maps.Copy(defaultValues, storage.DefaultConfigurationValues(storageConfigurationKeyConstant))
	return defaultValues
}

// applyLoggingFlagOverrides lets explicit --log-level and --log-format win over every configuration source.
func (application *Application) applyLoggingFlagOverrides(command *cobra.Command) {
	rootFlags := command.Root().PersistentFlags()
	if rootFlags.Changed(logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if rootFlags.Changed(logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}
}

func normalizeSetting(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// flushLogger ignores the sync errors stdout and stderr report when they are terminals or pipes.
func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}
	syncError := application.logger.Sync()
	if syncError == nil || errors.Is(syncError, syscall.ENOTSUP) || errors.Is(syncError, syscall.EINVAL) {
		return nil
	}
	return syncError
}
