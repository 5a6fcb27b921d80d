package say

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/groid/internal/console"
)

const (
	paletteCommandUseConstant              = "palette"
	paletteCommandShortDescriptionConstant = "List the effective palette tokens"
	paletteCommandLongDescriptionConstant  = "palette prints every recognized token followed by a sample rendered with that token."
	paletteSampleTemplateConstant          = "%-12s <%s>%s<%s>"
	paletteUnexpectedArgumentsConstant     = "palette does not accept positional arguments"
	paletteCommandErrorTemplateConstant    = "palette failed: %w"
	paletteListedLogConstant               = "palette listed"
	logFieldTokenCountConstant             = "token_count"
)

var errPaletteUnexpectedArguments = errors.New(paletteUnexpectedArgumentsConstant)

// PaletteCommandBuilder assembles the palette command.
type PaletteCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	TerminalColorProvider TerminalColorProvider
}

// Build constructs the palette command.
func (builder *PaletteCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   paletteCommandUseConstant,
		Short: paletteCommandShortDescriptionConstant,
		Long:  paletteCommandLongDescriptionConstant,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *PaletteCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errPaletteUnexpectedArguments
	}

	var configuration console.Configuration
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	logger := resolveLogger(builder.LoggerProvider)
	templateConsole, consoleError := newCommandConsole(command, logger, configuration, builder.TerminalColorProvider, sinkWriterConstant)
	if consoleError != nil {
		return fmt.Errorf(paletteCommandErrorTemplateConstant, consoleError)
	}

	tokenNames := templateConsole.Resolver().Tokens()
	for _, tokenName := range tokenNames {
		sampleLine := fmt.Sprintf(paletteSampleTemplateConstant, tokenName, tokenName, tokenName, console.TokenReset)
		if logError := templateConsole.Log(sampleLine); logError != nil {
			return fmt.Errorf(paletteCommandErrorTemplateConstant, logError)
		}
	}

	logger.Debug(paletteListedLogConstant, zap.Int(logFieldTokenCountConstant, len(tokenNames)))
	return nil
}
