package console_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/groid/internal/console"
)

func TestZapOutputSinkRoutesChannels(testInstance *testing.T) {
	testCases := []struct {
		name          string
		channel       console.ChannelName
		expectedLevel zapcore.Level
	}{
		{name: "DefaultChannel", channel: "", expectedLevel: zapcore.InfoLevel},
		{name: "Log", channel: console.ChannelLog, expectedLevel: zapcore.InfoLevel},
		{name: "Info", channel: console.ChannelInfo, expectedLevel: zapcore.InfoLevel},
		{name: "Debug", channel: console.ChannelDebug, expectedLevel: zapcore.DebugLevel},
		{name: "Warn", channel: console.ChannelWarn, expectedLevel: zapcore.WarnLevel},
		{name: "Error", channel: console.ChannelError, expectedLevel: zapcore.ErrorLevel},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			core, observedLogs := observer.New(zapcore.DebugLevel)
			sink := console.NewZapOutputSink(zap.New(core))

			require.NoError(testInstance, sink.Write(testCase.channel, "message"))

			entries := observedLogs.All()
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, testCase.expectedLevel, entries[0].Level)
			require.Equal(testInstance, "message", entries[0].Message)
		})
	}
}

func TestZapOutputSinkRejectsUnknownChannel(testInstance *testing.T) {
	core, observedLogs := observer.New(zapcore.DebugLevel)
	sink := console.NewZapOutputSink(zap.New(core))

	writeError := sink.Write("trace", "message")
	require.ErrorIs(testInstance, writeError, console.ErrUnknownChannel)
	require.Contains(testInstance, writeError.Error(), "trace")
	require.Zero(testInstance, observedLogs.Len())
}

func TestWriterOutputSinkRoutesChannels(testInstance *testing.T) {
	standardOutput := &bytes.Buffer{}
	errorOutput := &bytes.Buffer{}
	sink := console.NewWriterOutputSink(standardOutput, errorOutput)

	for _, channel := range []console.ChannelName{"", console.ChannelLog, console.ChannelInfo, console.ChannelDebug} {
		require.NoError(testInstance, sink.Write(channel, string(channel)+"-out"))
	}
	for _, channel := range []console.ChannelName{console.ChannelWarn, console.ChannelError} {
		require.NoError(testInstance, sink.Write(channel, string(channel)+"-err"))
	}

	require.Equal(testInstance, "-out\nlog-out\ninfo-out\ndebug-out\n", standardOutput.String())
	require.Equal(testInstance, "warn-err\nerror-err\n", errorOutput.String())
}

func TestWriterOutputSinkCustomChannel(testInstance *testing.T) {
	auditOutput := &bytes.Buffer{}
	sink := console.NewWriterOutputSink(&bytes.Buffer{}, &bytes.Buffer{}).WithChannel("audit", auditOutput)

	require.NoError(testInstance, sink.Write("audit", "recorded"))
	require.Equal(testInstance, "recorded\n", auditOutput.String())

	require.ErrorIs(testInstance, sink.Write("missing", "lost"), console.ErrUnknownChannel)
}

type failingWriter struct {
	failure error
}

func (writer failingWriter) Write([]byte) (int, error) {
	return 0, writer.failure
}

func TestWriterOutputSinkReturnsWriterErrors(testInstance *testing.T) {
	writeFailure := errors.New("disk full")
	sink := console.NewWriterOutputSink(failingWriter{failure: writeFailure}, nil)

	require.ErrorIs(testInstance, sink.Write(console.ChannelError, "message"), writeFailure)
}
