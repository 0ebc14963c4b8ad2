package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction says whether a transaction increases or decreases the balance.
type Direction string

const (
	Income  Direction = "INCOME"
	Expense Direction = "EXPENSE"
)

// NormalizedTransaction is a statement row after normalization into the
// pipeline's canonical schema. Amount is always non-negative; the sign is
// carried exclusively by Direction.
type NormalizedTransaction struct {
	OccurredOn     time.Time
	Description    string
	Amount         decimal.Decimal
	Direction      Direction
	Currency       string
	RunningBalance decimal.NullDecimal // as reported by the source, if at all
	Fingerprint    string
}

// Signed returns the amount with its direction applied.
func (t NormalizedTransaction) Signed() decimal.Decimal {
	if t.Direction == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// CategorySuggestion is the outcome of a keyword rule match. The signal is
// boolean-strength: a suggestion exists iff a rule matched.
type CategorySuggestion struct {
	CategoryID string
	Keyword    string // the keyword that matched, for display
}

// PreviewEntry is a NormalizedTransaction annotated with duplicate and
// category information. Entries are a read-only projection; they are
// produced per preview request and never persisted.
type PreviewEntry struct {
	NormalizedTransaction

	IsDuplicate bool
	DuplicateOf string // existing ledger entry id, when IsDuplicate
	Suggested   *CategorySuggestion
}

// Preview is the full result of a preview request.
type Preview struct {
	AccountID    string
	Format       string // detected profile name
	Currency     string
	From, To     time.Time
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	SkippedRows  int // rows dropped for parse defects or zero amounts
	Entries      []PreviewEntry
}

// Net returns income minus expense for the previewed batch.
func (p Preview) Net() decimal.Decimal {
	return p.TotalIncome.Sub(p.TotalExpense)
}

// ImportDecision is the caller's per-row instruction at commit time.
type ImportDecision struct {
	Fingerprint string
	CategoryID  string // optional override; empty keeps the suggestion
	Skip        bool
}

// CommitResult reports the outcome of one commit request.
type CommitResult struct {
	Imported   int
	Skipped    int
	Duplicates int
	Errored    int
	LedgerIDs  []string
}
