package normalize

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

// ParseAmount converts a raw amount string into a decimal. Currency
// symbols and whitespace are stripped, parenthesized values and trailing
// sign suffixes resolve to an explicit sign, and the separator convention
// follows the profile. An empty value parses as zero.
func ParseAmount(s string, style profile.DecimalStyle) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	if strings.HasSuffix(s, "-") {
		negative = true
		s = s[:len(s)-1]
	} else if strings.HasSuffix(s, "+") {
		s = s[:len(s)-1]
	}

	// Keep only digits, separators, and a sign; drops currency symbols,
	// ISO codes, and whitespace (including NBSP).
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == ',' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("unparsable amount %q", s)
	}

	if strings.HasPrefix(cleaned, "-") {
		negative = true
		cleaned = strings.TrimPrefix(cleaned, "-")
	}

	if style == profile.European {
		// All periods are thousands separators; the comma is the
		// decimal point.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparsable amount %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
