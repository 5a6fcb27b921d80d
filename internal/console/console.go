package console

import (
	"errors"
)

const (
	resolverNotConfiguredMessageConstant = "template resolver not configured"
	sinkNotConfiguredMessageConstant     = "output sink not configured"
)

var (
	// ErrResolverNotConfigured indicates that NewConsole received no resolver.
	ErrResolverNotConfigured = errors.New(resolverNotConfiguredMessageConstant)
	// ErrSinkNotConfigured indicates that NewConsole received no sink.
	ErrSinkNotConfigured = errors.New(sinkNotConfiguredMessageConstant)
)

// Console resolves templates and forwards the results to an OutputSink.
type Console struct {
	resolver *TemplateResolver
	sink     OutputSink
}

// NewConsole pairs a resolver with an output sink.
func NewConsole(resolver *TemplateResolver, sink OutputSink) (*Console, error) {
	if resolver == nil {
		return nil, ErrResolverNotConfigured
	}
	if sink == nil {
		return nil, ErrSinkNotConfigured
	}
	return &Console{resolver: resolver, sink: sink}, nil
}

// Log resolves text and writes it to the default channel.
func (console *Console) Log(text string) error {
	return console.Emit(ChannelDefault, text)
}

// Emit resolves text and writes it to the named channel.
func (console *Console) Emit(channel ChannelName, text string) error {
	return console.sink.Write(normalizeChannel(channel), console.resolver.Resolve(text))
}

// Resolver exposes the resolver backing the console.
func (console *Console) Resolver() *TemplateResolver {
	return console.resolver
}
