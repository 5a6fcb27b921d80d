package console

import (
	"regexp"
	"sort"
)

const (
	tokenPatternConstant         = `<([^\n\r\x{2028}\x{2029}]*?)>`
	tokenDelimiterLengthConstant = 1
)

var tokenPattern = regexp.MustCompile(tokenPatternConstant)

// TemplateResolver substitutes `<token>` placeholders using an effective palette fixed at construction.
type TemplateResolver struct {
	palette Palette
}

// NewTemplateResolver builds a resolver whose palette is the built-in palette merged with overrides.
func NewTemplateResolver(overrides Palette) *TemplateResolver {
	return NewTemplateResolverWithBase(BuiltinPalette(), overrides)
}

// NewTemplateResolverWithBase builds a resolver from an explicit base palette merged with overrides.
// Override entries win over base entries sharing the same token name.
func NewTemplateResolverWithBase(base Palette, overrides Palette) *TemplateResolver {
	return &TemplateResolver{palette: mergePalettes(base, overrides)}
}

// Resolve replaces every recognized token in text with its palette value.
// Unrecognized tokens are kept verbatim and replacement values are never re-scanned.
func (resolver *TemplateResolver) Resolve(text string) string {
	if resolver == nil || len(text) == 0 {
		return text
	}
	return tokenPattern.ReplaceAllStringFunc(text, func(match string) string {
		tokenName := match[tokenDelimiterLengthConstant : len(match)-tokenDelimiterLengthConstant]
		if tokenValue, tokenKnown := resolver.palette[tokenName]; tokenKnown {
			return tokenValue
		}
		return match
	})
}

// Lookup returns the palette value for the token name.
func (resolver *TemplateResolver) Lookup(tokenName string) (string, bool) {
	if resolver == nil {
		return emptyStringConstant, false
	}
	tokenValue, tokenKnown := resolver.palette[tokenName]
	return tokenValue, tokenKnown
}

// Palette returns a copy of the effective palette.
func (resolver *TemplateResolver) Palette() Palette {
	if resolver == nil {
		return Palette{}
	}
	return resolver.palette.Clone()
}

// Tokens lists the effective token names in lexicographic order.
func (resolver *TemplateResolver) Tokens() []string {
	if resolver == nil {
		return nil
	}
	tokenNames := make([]string, 0, len(resolver.palette))
	for tokenName := range resolver.palette {
		tokenNames = append(tokenNames, tokenName)
	}
	sort.Strings(tokenNames)
	return tokenNames
}
