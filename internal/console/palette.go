package console

import (
	"fmt"

	"github.com/fatih/color"
)

const (
	selectGraphicRenditionTemplateConstant = "\x1b[%dm"
	emptyStringConstant                    = ""
)

// Built-in token names.
const (
	TokenReset      = "r"
	TokenBright     = "bright"
	TokenDim        = "dim"
	TokenUnderscore = "underscore"
	TokenBlink      = "blink"
	TokenReverse    = "reverse"
	TokenHidden     = "hidden"

	TokenForegroundBlack   = "fg-black"
	TokenForegroundRed     = "fg-red"
	TokenForegroundGreen   = "fg-green"
	TokenForegroundYellow  = "fg-yellow"
	TokenForegroundBlue    = "fg-blue"
	TokenForegroundMagenta = "fg-magenta"
	TokenForegroundCyan    = "fg-cyan"
	TokenForegroundWhite   = "fg-white"

	TokenBackgroundBlack   = "bg-black"
	TokenBackgroundRed     = "bg-red"
	TokenBackgroundGreen   = "bg-green"
	TokenBackgroundYellow  = "bg-yellow"
	TokenBackgroundBlue    = "bg-blue"
	TokenBackgroundMagenta = "bg-magenta"
	TokenBackgroundCyan    = "bg-cyan"
	TokenBackgroundWhite   = "bg-white"
)

// Palette maps token names to replacement strings.
type Palette map[string]string

var builtinTokenAttributes = map[string]color.Attribute{
	TokenReset:      color.Reset,
	TokenBright:     color.Bold,
	TokenDim:        color.Faint,
	TokenUnderscore: color.Underline,
	TokenBlink:      color.BlinkSlow,
	TokenReverse:    color.ReverseVideo,
	TokenHidden:     color.Concealed,

	TokenForegroundBlack:   color.FgBlack,
	TokenForegroundRed:     color.FgRed,
	TokenForegroundGreen:   color.FgGreen,
	TokenForegroundYellow:  color.FgYellow,
	TokenForegroundBlue:    color.FgBlue,
	TokenForegroundMagenta: color.FgMagenta,
	TokenForegroundCyan:    color.FgCyan,
	TokenForegroundWhite:   color.FgWhite,

	TokenBackgroundBlack:   color.BgBlack,
	TokenBackgroundRed:     color.BgRed,
	TokenBackgroundGreen:   color.BgGreen,
	TokenBackgroundYellow:  color.BgYellow,
	TokenBackgroundBlue:    color.BgBlue,
	TokenBackgroundMagenta: color.BgMagenta,
	TokenBackgroundCyan:    color.BgCyan,
	TokenBackgroundWhite:   color.BgWhite,
}

// BuiltinPalette returns a fresh copy of the built-in styling palette.
func BuiltinPalette() Palette {
	palette := make(Palette, len(builtinTokenAttributes))
	for tokenName, attribute := range builtinTokenAttributes {
		palette[tokenName] = fmt.Sprintf(selectGraphicRenditionTemplateConstant, int(attribute))
	}
	return palette
}

// PlainPalette returns the built-in token names mapped to empty strings.
func PlainPalette() Palette {
	palette := make(Palette, len(builtinTokenAttributes))
	for tokenName := range builtinTokenAttributes {
		palette[tokenName] = emptyStringConstant
	}
	return palette
}

// TerminalColorSupported reports whether standard output accepts color escape sequences.
func TerminalColorSupported() bool {
	return !color.NoColor
}

// Clone returns an independent copy of the palette.
func (palette Palette) Clone() Palette {
	duplicated := make(Palette, len(palette))
	for tokenName, tokenValue := range palette {
		duplicated[tokenName] = tokenValue
	}
	return duplicated
}

func mergePalettes(base Palette, overrides Palette) Palette {
	merged := make(Palette, len(base)+len(overrides))
	for tokenName, tokenValue := range base {
		merged[tokenName] = tokenValue
	}
	for tokenName, tokenValue := range overrides {
		merged[tokenName] = tokenValue
	}
	return merged
}
