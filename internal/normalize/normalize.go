// Package normalize converts raw extracted rows into canonical
// transactions: ISO dates, non-negative decimal amounts with an explicit
// direction, cleaned descriptions, and a resolved currency.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

// DefaultDescriptionLimit caps description length in runes.
const DefaultDescriptionLimit = 255

// Result is the outcome of normalizing one extracted batch. Skipped counts
// rows dropped for parse defects or zero amounts; they are never fatal.
type Result struct {
	Transactions []model.NormalizedTransaction
	Skipped      int
}

// Records normalizes raw records against a profile. currency is the
// already-resolved ISO code for the document; descLimit <= 0 uses the
// default cap.
func Records(records []model.RawRecord, p profile.FormatProfile, currency string, descLimit int) Result {
	if descLimit <= 0 {
		descLimit = DefaultDescriptionLimit
	}

	var res Result
	for _, rec := range records {
		tx, ok := record(rec, p, currency, descLimit)
		if !ok {
			res.Skipped++
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}
	return res
}

func record(rec model.RawRecord, p profile.FormatProfile, currency string, descLimit int) (model.NormalizedTransaction, bool) {
	occurred, err := ParseDate(rec.Cell(int(p.Fields.Date)), p.DateOrder)
	if err != nil {
		return model.NormalizedTransaction{}, false
	}

	amount, direction, err := resolveDirection(rec, p)
	if err != nil || amount.IsZero() {
		// A zero amount is not a transaction.
		return model.NormalizedTransaction{}, false
	}

	tx := model.NormalizedTransaction{
		OccurredOn:  occurred,
		Description: CleanDescription(rec.Cell(int(p.Fields.Description)).Text, descLimit),
		Amount:      amount,
		Direction:   direction,
		Currency:    currency,
	}

	if p.Fields.Balance.Set() {
		if bal, err := ParseAmount(rec.Cell(int(p.Fields.Balance)).Text, p.Decimal); err == nil {
			tx.RunningBalance = decimal.NullDecimal{Decimal: bal, Valid: true}
		}
	}
	return tx, true
}

// resolveDirection applies the profile's sign convention. With split
// income/expense columns a positive income value wins, then a nonzero
// expense. A single amount column carries the sign itself.
func resolveDirection(rec model.RawRecord, p profile.FormatProfile) (decimal.Decimal, model.Direction, error) {
	if p.Fields.SplitColumns() {
		if p.Fields.Income.Set() {
			income, err := ParseAmount(rec.Cell(int(p.Fields.Income)).Text, p.Decimal)
			if err != nil {
				return decimal.Zero, "", err
			}
			if income.IsPositive() {
				return income, model.Income, nil
			}
		}
		if p.Fields.Expense.Set() {
			expense, err := ParseAmount(rec.Cell(int(p.Fields.Expense)).Text, p.Decimal)
			if err != nil {
				return decimal.Zero, "", err
			}
			if !expense.IsZero() {
				return expense.Abs(), model.Expense, nil
			}
		}
		return decimal.Zero, model.Expense, nil
	}

	amount, err := ParseAmount(rec.Cell(int(p.Fields.Amount)).Text, p.Decimal)
	if err != nil {
		return decimal.Zero, "", err
	}
	if amount.IsNegative() {
		return amount.Abs(), model.Expense, nil
	}
	return amount, model.Income, nil
}

// CleanDescription trims, strips control characters, collapses whitespace
// runs, and caps the length in runes.
func CleanDescription(s string, limit int) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if limit > 0 && len(runes) > limit {
		s = string(runes[:limit])
	}
	return s
}

// currencyMarkers map document symbols and ISO codes to the resolved
// currency, checked in order; the first hit wins. Symbols match anywhere;
// ISO codes only as whole words, so "EUROSTAR" does not read as EUR.
var currencyMarkers = []struct {
	symbol string
	iso    *regexp.Regexp
	code   string
}{
	{"€", regexp.MustCompile(`\bEUR\b`), "EUR"},
	{"$", regexp.MustCompile(`\bUSD\b`), "USD"},
	{"£", regexp.MustCompile(`\bGBP\b`), "GBP"},
}

// SniffCurrency scans document text for a currency symbol or ISO code,
// falling back to the profile default.
func SniffCurrency(text, fallback string) string {
	for _, m := range currencyMarkers {
		if strings.Contains(text, m.symbol) || m.iso.MatchString(text) {
			return m.code
		}
	}
	return fallback
}
