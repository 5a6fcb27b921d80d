package say

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/groid/internal/console"
	"github.com/temirov/groid/internal/utils/flags"
)

const (
	commandUseConstant                    = "say [text...]"
	commandShortDescriptionConstant       = "Render a template and write it to an output channel"
	commandLongDescriptionConstant        = "say joins its arguments with spaces, replaces recognized <token> placeholders with styling sequences, and writes the result to the selected channel."
	commandExampleConstant                = "groid say '<fg-red>failed<r> to open <bright>cache<r>'"
	flagChannelNameConstant               = "channel"
	flagChannelDescriptionConstant        = "Output channel receiving the rendered message."
	flagPlainNameConstant                 = "plain"
	flagPlainDescriptionConstant          = "Strip styling sequences regardless of terminal support."
	flagSinkNameConstant                  = "sink"
	flagSinkDescriptionConstant           = "Destination of rendered messages."
	sinkWriterConstant                    = "writer"
	sinkLoggerConstant                    = "logger"
	argumentSeparatorConstant             = " "
	missingTextMessageConstant            = "say requires text to render"
	commandExecutionErrorTemplateConstant = "say failed: %w"
	renderedMessageLogConstant            = "template rendered"
	logFieldChannelConstant               = "channel"
	logFieldSinkConstant                  = "sink"
	logFieldTemplateLengthConstant        = "template_length"
)

var errMissingText = errors.New(missingTextMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the console configuration.
type ConfigurationProvider func() console.Configuration

// TerminalColorProvider reports whether the terminal accepts styling sequences.
type TerminalColorProvider func() bool

// CommandBuilder assembles the say command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	TerminalColorProvider TerminalColorProvider
}

// Options captures the parsed say flags.
type Options struct {
	Channel console.ChannelName
	Sink    string
	Plain   bool
	Text    string
}

// Build constructs the say command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		RunE:    builder.run,
	}

	command.Flags().String(flagChannelNameConstant, string(console.ChannelDefault), flags.FormatChoiceUsage(string(console.ChannelDefault), channelChoices(), flagChannelDescriptionConstant))
	command.Flags().String(flagSinkNameConstant, sinkWriterConstant, flags.FormatChoiceUsage(sinkWriterConstant, sinkChoices(), flagSinkDescriptionConstant))
	var plainOutput bool
	flags.AddToggleFlag(command.Flags(), &plainOutput, flagPlainNameConstant, "", false, flagPlainDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := resolveLogger(builder.LoggerProvider)
	templateConsole, consoleError := newCommandConsole(command, logger, builder.resolveConfiguration(options.Plain), builder.TerminalColorProvider, options.Sink)
	if consoleError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, consoleError)
	}

	if emitError := templateConsole.Emit(options.Channel, options.Text); emitError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, emitError)
	}

	logger.Debug(
		renderedMessageLogConstant,
		zap.String(logFieldChannelConstant, string(options.Channel)),
		zap.String(logFieldSinkConstant, options.Sink),
		zap.Int(logFieldTemplateLengthConstant, len(options.Text)),
	)
	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (Options, error) {
	if len(arguments) == 0 {
		return Options{}, errMissingText
	}

	channelValue, _ := command.Flags().GetString(flagChannelNameConstant)
	selectedChannel, channelError := flags.SelectChoice(channelValue, string(console.ChannelDefault), channelChoices())
	if channelError != nil {
		return Options{}, channelError
	}

	sinkValue, _ := command.Flags().GetString(flagSinkNameConstant)
	selectedSink, sinkError := flags.SelectChoice(sinkValue, sinkWriterConstant, sinkChoices())
	if sinkError != nil {
		return Options{}, sinkError
	}

	plainValue, _ := command.Flags().GetBool(flagPlainNameConstant)

	return Options{
		Channel: console.ChannelName(selectedChannel),
		Sink:    selectedSink,
		Plain:   plainValue,
		Text:    strings.Join(arguments, argumentSeparatorConstant),
	}, nil
}

func (builder *CommandBuilder) resolveConfiguration(plain bool) console.Configuration {
	var configuration console.Configuration
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	if plain {
		configuration.ColorMode = string(console.ColorModeNever)
	}
	return configuration
}

func newCommandConsole(command *cobra.Command, logger *zap.Logger, configuration console.Configuration, colorProvider TerminalColorProvider, sinkName string) (*console.Console, error) {
	terminalSupportsColor := console.TerminalColorSupported()
	if colorProvider != nil {
		terminalSupportsColor = colorProvider()
	}

	resolver, resolverError := configuration.BuildResolver(terminalSupportsColor)
	if resolverError != nil {
		return nil, resolverError
	}

	var sink console.OutputSink
	if sinkName == sinkLoggerConstant {
		sink = console.NewZapOutputSink(logger)
	} else {
		sink = console.NewWriterOutputSink(command.OutOrStdout(), command.ErrOrStderr())
	}

	return console.NewConsole(resolver, sink)
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}

	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func channelChoices() []string {
	standardChannels := console.StandardChannels()
	choices := make([]string, 0, len(standardChannels))
	for _, channel := range standardChannels {
		choices = append(choices, string(channel))
	}
	return choices
}

func sinkChoices() []string {
	return []string{sinkWriterConstant, sinkLoggerConstant}
}
