package console

import (
	"go.uber.org/zap"
)

// ZapOutputSink forwards resolved messages to zap logger levels.
type ZapOutputSink struct {
	logger *zap.Logger
}

// NewZapOutputSink constructs a sink backed by the provided logger.
func NewZapOutputSink(logger *zap.Logger) *ZapOutputSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapOutputSink{logger: logger}
}

// Write logs the message at the level matching the channel.
func (sink *ZapOutputSink) Write(channel ChannelName, message string) error {
	switch normalizeChannel(channel) {
	case ChannelLog, ChannelInfo:
		sink.logger.Info(message)
	case ChannelDebug:
		sink.logger.Debug(message)
	case ChannelWarn:
		sink.logger.Warn(message)
	case ChannelError:
		sink.logger.Error(message)
	default:
		return unknownChannelError(channel)
	}
	return nil
}
