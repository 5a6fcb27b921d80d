// Package utils exposes reusable helpers consumed by multiple commands.
//
// It houses ConfigurationLoader, LoggerFactory, and FlushingWriter, which
// integrate Viper, environment variables, and zap logging for the groid CLI
// and its output sinks.
package utils
