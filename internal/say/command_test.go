package say_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/groid/internal/console"
	"github.com/temirov/groid/internal/say"
)

const (
	testResetSequenceConstant = "\x1b[0m"
	testRedSequenceConstant   = "\x1b[31m"
)

func executeCommand(testInstance *testing.T, builder interface {
	Build() (*cobra.Command, error)
}, arguments ...string) (string, string, error) {
	testInstance.Helper()
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	standardOutput := &bytes.Buffer{}
	errorOutput := &bytes.Buffer{}
	command.SetOut(standardOutput)
	command.SetErr(errorOutput)
	command.SetArgs(arguments)
	command.SilenceUsage = true
	command.SilenceErrors = true

	executionError := command.Execute()
	return standardOutput.String(), errorOutput.String(), executionError
}

func colorTerminal() bool {
	return true
}

func TestSayCommandScenarios(testInstance *testing.T) {
	testCases := []struct {
		name           string
		configuration  console.Configuration
		arguments      []string
		expectedStdout string
		expectedStderr string
		expectedError  string
	}{
		{
			name:           "JoinsArgumentsAndResolves",
			arguments:      []string{"<fg-red>failed<r>", "to", "open"},
			expectedStdout: testRedSequenceConstant + "failed" + testResetSequenceConstant + " to open\n",
		},
		{
			name:           "ConfiguredPaletteOverride",
			configuration:  console.Configuration{Palette: map[string]string{"brand": "[groid]"}},
			arguments:      []string{"<brand>", "<unknown>"},
			expectedStdout: "[groid] <unknown>\n",
		},
		{
			name:           "PlainStripsBuiltinTokens",
			arguments:      []string{"--plain", "<fg-red>plain<r>"},
			expectedStdout: "plain\n",
		},
		{
			name:           "WarnChannelWritesToErrorOutput",
			arguments:      []string{"--channel", "WARN", "<bright>careful"},
			expectedStderr: "\x1b[1mcareful\n",
		},
		{
			name:          "UnknownChannelRejected",
			arguments:     []string{"--channel", "trace", "text"},
			expectedError: "invalid value",
		},
		{
			name:          "MissingTextRejected",
			arguments:     []string{},
			expectedError: "say requires text",
		},
		{
			name:          "InvalidColorModeRejected",
			configuration: console.Configuration{ColorMode: "sometimes"},
			arguments:     []string{"text"},
			expectedError: "unsupported color mode",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			builder := &say.CommandBuilder{
				ConfigurationProvider: func() console.Configuration {
					return testCase.configuration
				},
				TerminalColorProvider: colorTerminal,
			}

			standardOutput, errorOutput, executionError := executeCommand(testInstance, builder, testCase.arguments...)
			if len(testCase.expectedError) > 0 {
				require.Error(testInstance, executionError)
				require.Contains(testInstance, executionError.Error(), testCase.expectedError)
				return
			}
			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedStdout, standardOutput)
			require.Equal(testInstance, testCase.expectedStderr, errorOutput)
		})
	}
}

func TestSayCommandLoggerSink(testInstance *testing.T) {
	core, observedLogs := observer.New(zapcore.DebugLevel)
	builder := &say.CommandBuilder{
		LoggerProvider:        func() *zap.Logger { return zap.New(core) },
		TerminalColorProvider: func() bool { return false },
	}

	standardOutput, _, executionError := executeCommand(testInstance, builder, "--sink", "logger", "--channel", "error", "<fg-red>logged<r>")
	require.NoError(testInstance, executionError)
	require.Empty(testInstance, standardOutput)

	errorEntries := observedLogs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(testInstance, errorEntries, 1)
	require.Equal(testInstance, "logged", errorEntries[0].Message)

	renderedEntries := observedLogs.FilterMessage("template rendered").All()
	require.Len(testInstance, renderedEntries, 1)
	require.Equal(testInstance, "error", renderedEntries[0].ContextMap()["channel"])
}

func TestPaletteCommandListsTokens(testInstance *testing.T) {
	builder := &say.PaletteCommandBuilder{
		ConfigurationProvider: func() console.Configuration {
			return console.Configuration{ColorMode: "never", Palette: map[string]string{"brand": "#"}}
		},
	}

	standardOutput, _, executionError := executeCommand(testInstance, builder)
	require.NoError(testInstance, executionError)

	outputLines := strings.Split(strings.TrimSuffix(standardOutput, "\n"), "\n")
	require.Len(testInstance, outputLines, len(console.BuiltinPalette())+1)
	require.Equal(testInstance, "bg-black     bg-black", outputLines[0])
	require.Contains(testInstance, outputLines, "brand        #brand")

	_, _, argumentsError := executeCommand(testInstance, builder, "extra")
	require.Error(testInstance, argumentsError)
}
