package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

func singleColumnProfile() profile.FormatProfile {
	return profile.FormatProfile{
		Name:  "test-single",
		Shape: model.ShapeTabular,
		Fields: profile.Locators{
			Date:        0,
			Description: 1,
			Amount:      2,
			Income:      profile.None,
			Expense:     profile.None,
			Balance:     3,
		},
		DateOrder: profile.DayMonthYear,
		Decimal:   profile.American,
	}
}

func splitColumnProfile() profile.FormatProfile {
	p := singleColumnProfile()
	p.Name = "test-split"
	p.Fields.Amount = profile.None
	p.Fields.Expense = 2
	p.Fields.Income = 4
	return p
}

func row(cells ...string) model.RawRecord {
	rec := model.RawRecord{Row: 1}
	for _, c := range cells {
		rec.Cells = append(rec.Cells, model.TextCell(c))
	}
	return rec
}

func TestRecordsSignedAmount(t *testing.T) {
	res := Records([]model.RawRecord{
		row("15/01/2025", "GROCERY STORE", "-45.50", "954.50"),
		row("16/01/2025", "SALARY", "3500.00", "4454.50"),
	}, singleColumnProfile(), "GBP", 0)

	require.Len(t, res.Transactions, 2)
	assert.Zero(t, res.Skipped)

	grocery := res.Transactions[0]
	assert.Equal(t, "45.5", grocery.Amount.String())
	assert.Equal(t, model.Expense, grocery.Direction)
	assert.Equal(t, "GBP", grocery.Currency)
	require.True(t, grocery.RunningBalance.Valid)
	assert.Equal(t, "954.5", grocery.RunningBalance.Decimal.String())

	salary := res.Transactions[1]
	assert.Equal(t, "3500", salary.Amount.String())
	assert.Equal(t, model.Income, salary.Direction)
	assert.Equal(t, "-45.5", grocery.Signed().String())
	assert.Equal(t, "3500", salary.Signed().String())
}

func TestRecordsSplitColumns(t *testing.T) {
	res := Records([]model.RawRecord{
		row("15/01/2025", "GROCERY STORE", "45.50", "954.50", ""),
		row("16/01/2025", "SALARY", "", "4454.50", "3500.00"),
	}, splitColumnProfile(), "GBP", 0)

	require.Len(t, res.Transactions, 2)
	assert.Equal(t, model.Expense, res.Transactions[0].Direction)
	assert.Equal(t, "45.5", res.Transactions[0].Amount.String())
	assert.Equal(t, model.Income, res.Transactions[1].Direction)
	assert.Equal(t, "3500", res.Transactions[1].Amount.String())
}

func TestRecordsSkipsDefectsAndZeroAmounts(t *testing.T) {
	res := Records([]model.RawRecord{
		row("Date", "Description", "Amount", "Balance"), // header leaked through
		row("15/01/2025", "ADJUSTMENT", "0.00", "954.50"),
		row("16/01/2025", "REAL PAYMENT", "-12.00", "942.50"),
		row("17/01/2025", "BROKEN ROW", "abc", "942.50"),
	}, singleColumnProfile(), "EUR", 0)

	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "REAL PAYMENT", res.Transactions[0].Description)
	assert.Equal(t, 3, res.Skipped)
}

func TestRecordsBalanceBestEffort(t *testing.T) {
	res := Records([]model.RawRecord{
		row("15/01/2025", "NO BALANCE", "-12.00", "n/a"),
	}, singleColumnProfile(), "EUR", 0)

	require.Len(t, res.Transactions, 1)
	assert.False(t, res.Transactions[0].RunningBalance.Valid)
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "CARD PAYMENT TESCO", CleanDescription("  CARD\tPAYMENT\n TESCO  ", 0))
	assert.Equal(t, "abcde", CleanDescription("abcdefgh", 5))
	assert.Equal(t, "", CleanDescription("\x00\x01\x02", 0))

	long := strings.Repeat("x ", 300)
	res := Records([]model.RawRecord{row("15/01/2025", long, "-12.00", "")}, singleColumnProfile(), "EUR", 0)
	require.Len(t, res.Transactions, 1)
	assert.Len(t, []rune(res.Transactions[0].Description), DefaultDescriptionLimit)
}

func TestSniffCurrency(t *testing.T) {
	assert.Equal(t, "GBP", SniffCurrency("Balance £954.50", "EUR"))
	assert.Equal(t, "USD", SniffCurrency("Amount in $", "EUR"))
	assert.Equal(t, "EUR", SniffCurrency("Betrag in EUR", "USD"))
	assert.Equal(t, "CHF", SniffCurrency("no marker here", "CHF"))

	// ISO codes only count as whole words.
	assert.Equal(t, "GBP", SniffCurrency("TRAVEL EUROSTAR LONDON", "GBP"))
	assert.Equal(t, "USD", SniffCurrency("PAYMENT EUROPE OFFICE", "USD"))
	assert.Equal(t, "EUR", SniffCurrency("TOTAL 12,34 EUR", "USD"))
}
