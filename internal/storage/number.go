package storage

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

const (
	positiveInfinityLiteralConstant       = "Infinity"
	signedPositiveInfinityLiteralConstant = "+Infinity"
	negativeInfinityLiteralConstant       = "-Infinity"
	notANumberLiteralConstant             = "NaN"
	zeroLiteralConstant                   = "0"
	exponentMarkerConstant                = "e"
	exponentFormatByteConstant            = 'e'
	exponentPositiveSignConstant          = "+"
	exponentNegativeSignConstant          = "-"
	decimalLiteralPatternConstant         = `^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`
	hexadecimalPrefixConstant             = "0x"
	octalPrefixConstant                   = "0o"
	binaryPrefixConstant                  = "0b"
	prefixedLiteralLengthConstant         = 2
	hexadecimalBaseConstant               = 16
	octalBaseConstant                     = 8
	binaryBaseConstant                    = 2
	floatBitSizeConstant                  = 64
	exponentialUpperThresholdConstant     = 1e21
	exponentialLowerThresholdConstant     = 1e-6
	integerExclusiveUpperBoundConstant    = 1 << 63
	integerInclusiveLowerBoundConstant    = -1 << 63
)

var decimalLiteralPattern = regexp.MustCompile(decimalLiteralPatternConstant)

var prefixedLiteralBases = map[string]int{
	hexadecimalPrefixConstant: hexadecimalBaseConstant,
	octalPrefixConstant:       octalBaseConstant,
	binaryPrefixConstant:      binaryBaseConstant,
}

// ParseNumber converts stored text to a number using host numeric-literal rules:
// whitespace is trimmed, empty text is zero, Infinity literals and 0x/0o/0b integers are accepted,
// and anything else that is not a decimal literal yields NaN.
func ParseNumber(rawValue string) float64 {
	trimmedValue := strings.TrimSpace(rawValue)
	switch trimmedValue {
	case "":
		return 0
	case positiveInfinityLiteralConstant, signedPositiveInfinityLiteralConstant:
		return math.Inf(1)
	case negativeInfinityLiteralConstant:
		return math.Inf(-1)
	}

	if decimalLiteralPattern.MatchString(trimmedValue) {
		return parseDecimalLiteral(trimmedValue)
	}

	if len(trimmedValue) > prefixedLiteralLengthConstant {
		literalPrefix := strings.ToLower(trimmedValue[:prefixedLiteralLengthConstant])
		if base, prefixed := prefixedLiteralBases[literalPrefix]; prefixed {
			return parsePrefixedLiteral(trimmedValue[prefixedLiteralLengthConstant:], base)
		}
	}

	return math.NaN()
}

// FormatNumber renders a number the way the host stringifies numbers.
func FormatNumber(value float64) string {
	switch {
	case math.IsNaN(value):
		return notANumberLiteralConstant
	case math.IsInf(value, 1):
		return positiveInfinityLiteralConstant
	case math.IsInf(value, -1):
		return negativeInfinityLiteralConstant
	case value == 0:
		return zeroLiteralConstant
	}

	magnitude := math.Abs(value)
	if magnitude >= exponentialUpperThresholdConstant || magnitude < exponentialLowerThresholdConstant {
		return formatExponential(value)
	}
	return cast.ToString(value)
}

// TruncateInteger truncates value toward zero and reports whether the result fits in an int64.
// NaN, infinities and magnitudes beyond the int64 range do not fit.
func TruncateInteger(value float64) (int64, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	truncatedValue := math.Trunc(value)
	if truncatedValue >= integerExclusiveUpperBoundConstant || truncatedValue < integerInclusiveLowerBoundConstant {
		return 0, false
	}
	return int64(truncatedValue), true
}

func parseDecimalLiteral(literal string) float64 {
	parsedValue, parseError := strconv.ParseFloat(literal, floatBitSizeConstant)
	if parseError != nil {
		var numericError *strconv.NumError
		if errors.As(parseError, &numericError) && errors.Is(numericError.Err, strconv.ErrRange) {
			return parsedValue
		}
		return math.NaN()
	}
	return parsedValue
}

func parsePrefixedLiteral(digits string, base int) float64 {
	parsedInteger, parsed := new(big.Int).SetString(digits, base)
	if !parsed || parsedInteger.Sign() < 0 || strings.ContainsAny(digits, "+-_") {
		return math.NaN()
	}
	floatValue, _ := new(big.Float).SetInt(parsedInteger).Float64()
	return floatValue
}

func formatExponential(value float64) string {
	formatted := strconv.FormatFloat(value, exponentFormatByteConstant, -1, floatBitSizeConstant)
	mantissa, exponent, hasExponent := strings.Cut(formatted, exponentMarkerConstant)
	if !hasExponent {
		return formatted
	}

	exponentSign := exponentPositiveSignConstant
	if strings.HasPrefix(exponent, exponentNegativeSignConstant) {
		exponentSign = exponentNegativeSignConstant
	}
	exponentDigits := strings.TrimLeft(strings.TrimLeft(exponent, exponentPositiveSignConstant+exponentNegativeSignConstant), zeroLiteralConstant)
	if len(exponentDigits) == 0 {
		exponentDigits = zeroLiteralConstant
	}
	return mantissa + exponentMarkerConstant + exponentSign + exponentDigits
}
