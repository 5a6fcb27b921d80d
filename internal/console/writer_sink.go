package console

import (
	"io"
	"sync"

	"github.com/temirov/groid/internal/utils"
)

const lineTerminatorConstant = "\n"

// WriterOutputSink writes resolved messages as lines to io.Writer channels.
// Informational channels share the standard writer and warn/error share the error writer.
type WriterOutputSink struct {
	mutex    sync.RWMutex
	channels map[ChannelName]io.Writer
}

// NewWriterOutputSink constructs a sink over the standard and error writers.
func NewWriterOutputSink(standardWriter io.Writer, errorWriter io.Writer) *WriterOutputSink {
	if standardWriter == nil {
		standardWriter = io.Discard
	}
	if errorWriter == nil {
		errorWriter = standardWriter
	}

	flushingStandardWriter := utils.NewFlushingWriter(standardWriter)
	flushingErrorWriter := utils.NewFlushingWriter(errorWriter)

	return &WriterOutputSink{
		channels: map[ChannelName]io.Writer{
			ChannelLog:   flushingStandardWriter,
			ChannelInfo:  flushingStandardWriter,
			ChannelDebug: flushingStandardWriter,
			ChannelWarn:  flushingErrorWriter,
			ChannelError: flushingErrorWriter,
		},
	}
}

// WithChannel registers or replaces a named channel and returns the sink for chaining.
func (sink *WriterOutputSink) WithChannel(channel ChannelName, writer io.Writer) *WriterOutputSink {
	if writer == nil {
		return sink
	}
	sink.mutex.Lock()
	defer sink.mutex.Unlock()
	sink.channels[normalizeChannel(channel)] = utils.NewFlushingWriter(writer)
	return sink
}

// Write emits the message followed by a newline on the channel writer.
func (sink *WriterOutputSink) Write(channel ChannelName, message string) error {
	sink.mutex.RLock()
	writer, channelExists := sink.channels[normalizeChannel(channel)]
	sink.mutex.RUnlock()
	if !channelExists {
		return unknownChannelError(channel)
	}

	_, writeError := io.WriteString(writer, message+lineTerminatorConstant)
	return writeError
}
