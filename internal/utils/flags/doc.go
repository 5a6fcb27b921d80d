// Package flags provides pflag helpers shared by groid commands: yes/no toggle
// values and usage strings for enumerated choices.
package flags
