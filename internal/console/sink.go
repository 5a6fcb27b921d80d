package console

import (
	"errors"
	"fmt"
	"strings"
)

const (
	channelLogNameConstant              = "log"
	channelInfoNameConstant             = "info"
	channelDebugNameConstant            = "debug"
	channelWarnNameConstant             = "warn"
	channelErrorNameConstant            = "error"
	unknownChannelMessageConstant       = "unknown output channel"
	unknownChannelErrorTemplateConstant = "%w: %s"
)

// ChannelName identifies a write operation exposed by an OutputSink.
type ChannelName string

// Standard channel names.
const (
	ChannelLog   ChannelName = ChannelName(channelLogNameConstant)
	ChannelInfo  ChannelName = ChannelName(channelInfoNameConstant)
	ChannelDebug ChannelName = ChannelName(channelDebugNameConstant)
	ChannelWarn  ChannelName = ChannelName(channelWarnNameConstant)
	ChannelError ChannelName = ChannelName(channelErrorNameConstant)
)

// ChannelDefault is used when no channel is requested.
const ChannelDefault = ChannelLog

// ErrUnknownChannel indicates that an OutputSink does not expose the requested channel.
var ErrUnknownChannel = errors.New(unknownChannelMessageConstant)

// OutputSink receives fully resolved messages on named channels.
type OutputSink interface {
	Write(channel ChannelName, message string) error
}

// StandardChannels lists the channels every built-in sink understands.
func StandardChannels() []ChannelName {
	return []ChannelName{ChannelLog, ChannelInfo, ChannelDebug, ChannelWarn, ChannelError}
}

func normalizeChannel(channel ChannelName) ChannelName {
	trimmedChannel := strings.TrimSpace(string(channel))
	if len(trimmedChannel) == 0 {
		return ChannelDefault
	}
	return ChannelName(trimmedChannel)
}

func unknownChannelError(channel ChannelName) error {
	return fmt.Errorf(unknownChannelErrorTemplateConstant, ErrUnknownChannel, channel)
}
