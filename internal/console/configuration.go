package console

import (
	"fmt"
	"strings"
)

const (
	colorModeAutoStringConstant          = "auto"
	colorModeAlwaysStringConstant        = "always"
	colorModeNeverStringConstant         = "never"
	colorModeConfigurationKeyConstant    = "color"
	configurationKeySeparatorConstant    = "."
	unsupportedColorModeTemplateConstant = "unsupported color mode: %s"
)

// ColorMode controls whether styling sequences are emitted.
type ColorMode string

// Supported color modes.
const (
	ColorModeAuto   ColorMode = ColorMode(colorModeAutoStringConstant)
	ColorModeAlways ColorMode = ColorMode(colorModeAlwaysStringConstant)
	ColorModeNever  ColorMode = ColorMode(colorModeNeverStringConstant)
)

// Configuration captures console rendering settings.
type Configuration struct {
	ColorMode string            `mapstructure:"color"`
	Palette   map[string]string `mapstructure:"palette"`
}

// DefaultConfigurationValues returns viper defaults for the console section rooted at prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	return map[string]any{
		qualifyKey(prefix, colorModeConfigurationKeyConstant): colorModeAutoStringConstant,
	}
}

// ColorModes lists the accepted color mode values.
func ColorModes() []string {
	return []string{colorModeAutoStringConstant, colorModeAlwaysStringConstant, colorModeNeverStringConstant}
}

// ParseColorMode normalizes a textual color mode. Empty input selects ColorModeAuto.
func ParseColorMode(rawMode string) (ColorMode, error) {
	normalizedMode := strings.ToLower(strings.TrimSpace(rawMode))
	switch normalizedMode {
	case "", colorModeAutoStringConstant:
		return ColorModeAuto, nil
	case colorModeAlwaysStringConstant:
		return ColorModeAlways, nil
	case colorModeNeverStringConstant:
		return ColorModeNever, nil
	default:
		return "", fmt.Errorf(unsupportedColorModeTemplateConstant, rawMode)
	}
}

// BuildResolver constructs the resolver described by the configuration.
// The built-in palette is replaced by the plain palette when color is disabled;
// configured palette entries apply on top of either base.
func (configuration Configuration) BuildResolver(terminalSupportsColor bool) (*TemplateResolver, error) {
	colorMode, parseError := ParseColorMode(configuration.ColorMode)
	if parseError != nil {
		return nil, parseError
	}

	basePalette := BuiltinPalette()
	if !colorEnabled(colorMode, terminalSupportsColor) {
		basePalette = PlainPalette()
	}

	return NewTemplateResolverWithBase(basePalette, Palette(configuration.Palette)), nil
}

func colorEnabled(colorMode ColorMode, terminalSupportsColor bool) bool {
	switch colorMode {
	case ColorModeAlways:
		return true
	case ColorModeNever:
		return false
	default:
		return terminalSupportsColor
	}
}

func qualifyKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}
