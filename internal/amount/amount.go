// Package amount normalizes free-text money input into a whole non-negative
// amount. Users paste sums with spaces, thousands separators, currency
// symbols and emoji; the parser strips the noise and disambiguates comma vs
// period before parsing.
package amount

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/planfact/planfact-bot/internal/domain"
)

// Rejection reasons, surfaced to the user on resubmission prompts.
const (
	ReasonEmpty    = "empty input"
	ReasonNegative = "amount must be positive"
	ReasonTooLarge = "amount is too large"
	ReasonBadInput = "not a valid amount"
)

var (
	half      = decimal.NewFromFloat(0.5)
	maxAmount = decimal.NewFromInt(domain.MaxAmount)
)

// Parse converts text into a whole amount. On rejection the returned error
// carries domain.KindValidation and one of the Reason messages.
func Parse(text string) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, domain.NewError(domain.KindValidation, ReasonEmpty)
	}

	cleaned := stripNoise(text)
	cleaned = resolveSeparators(cleaned)
	cleaned = stripSpaces(cleaned)

	if cleaned == "" {
		return 0, domain.NewError(domain.KindValidation, ReasonBadInput)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, domain.WrapError(domain.KindValidation, err, ReasonBadInput)
	}

	if d.IsNegative() {
		return 0, domain.NewError(domain.KindValidation, ReasonNegative)
	}

	// The bound check stays in decimal space: IntPart on a value wider than
	// int64 silently wraps.
	whole := roundHalfDown(d)
	if whole.GreaterThan(maxAmount) {
		return 0, domain.NewError(domain.KindValidation, ReasonTooLarge)
	}

	return whole.IntPart(), nil
}

// stripNoise drops everything except digits, whitespace, comma, period and
// minus. This removes currency symbols and emoji in one pass.
func stripNoise(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// resolveSeparators rewrites the string so that at most one '.' remains as
// the decimal separator. When both comma and period appear, the rightmost of
// the two is the decimal separator and the other is a thousands separator.
// A lone comma is decimal only when followed by exactly one or two trailing
// digits; otherwise all commas separate thousands.
func resolveSeparators(s string) string {
	lastComma := strings.LastIndexByte(s, ',')
	lastPeriod := strings.LastIndexByte(s, '.')

	switch {
	case lastComma >= 0 && lastPeriod >= 0:
		if lastComma > lastPeriod {
			s = strings.ReplaceAll(s, ".", "")
			s = replaceDecimalComma(s)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		tail := s[lastComma+1:]
		if isDigits(tail) && len(tail) >= 1 && len(tail) <= 2 {
			s = replaceDecimalComma(s)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	return s
}

// replaceDecimalComma turns the last comma into a period and removes any
// earlier commas.
func replaceDecimalComma(s string) string {
	i := strings.LastIndexByte(s, ',')
	return strings.ReplaceAll(s[:i], ",", "") + "." + s[i+1:]
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// roundHalfDown rounds to the nearest integer with exactly .5 rounding down:
// a fractional part strictly greater than one half adds one.
func roundHalfDown(d decimal.Decimal) decimal.Decimal {
	whole := d.Floor()
	if d.Sub(whole).GreaterThan(half) {
		whole = whole.Add(decimal.NewFromInt(1))
	}
	return whole
}
