package dedup

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

func tx(desc string, amount string, dir model.Direction) model.NormalizedTransaction {
	d, _ := decimal.NewFromString(amount)
	return model.NormalizedTransaction{
		OccurredOn:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: desc,
		Amount:      d,
		Direction:   dir,
		Currency:    "EUR",
	}
}

func TestFingerprintStable(t *testing.T) {
	a := tx("COFFEE", "3.50", model.Expense)
	b := tx("COFFEE", "3.50", model.Expense)
	assert.Equal(t, Fingerprint("acct-1", a), Fingerprint("acct-1", b))
	assert.Len(t, Fingerprint("acct-1", a), 64)
}

func TestFingerprintDistinguishes(t *testing.T) {
	base := tx("COFFEE", "3.50", model.Expense)
	fp := Fingerprint("acct-1", base)

	other := base
	other.Description = "COFFEE SHOP"
	assert.NotEqual(t, fp, Fingerprint("acct-1", other))

	other = base
	other.Amount = decimal.RequireFromString("3.51")
	assert.NotEqual(t, fp, Fingerprint("acct-1", other))

	other = base
	other.Direction = model.Income
	assert.NotEqual(t, fp, Fingerprint("acct-1", other))

	other = base
	other.OccurredOn = other.OccurredOn.AddDate(0, 0, 1)
	assert.NotEqual(t, fp, Fingerprint("acct-1", other))

	assert.NotEqual(t, fp, Fingerprint("acct-2", base))
}

func TestStampCollapsesBatchDuplicates(t *testing.T) {
	out := Stamp("acct-1", []model.NormalizedTransaction{
		tx("RENT", "900.00", model.Expense),
		tx("COFFEE", "3.50", model.Expense),
		tx("RENT", "900.00", model.Expense),
	})
	require.Len(t, out, 2)
	assert.Equal(t, "RENT", out[0].Description)
	assert.Equal(t, "COFFEE", out[1].Description)
	for _, got := range out {
		assert.NotEmpty(t, got.Fingerprint)
	}
}
