// Package cli constructs the groid command-line interface, wiring the Cobra
// command hierarchy, the viper configuration loader, and zap logging around
// the console template renderer and the typed preference store.
package cli
