// Package console renders colorized console messages from templates.
//
// TemplateResolver substitutes `<token>` placeholders with palette values
// (ANSI styling sequences by default), leaving unrecognized tokens untouched.
// Console pairs a resolver with an OutputSink so that resolved messages reach
// a named channel of either a zap logger or plain writers.
package console
