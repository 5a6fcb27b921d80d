// Package prefs exposes the typed preference accessors as the prefs command
// group: get, set, remove, list and clear over the configured key-value store.
package prefs
