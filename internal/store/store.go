// Package store defines the persistence interfaces the import pipeline
// depends on. The pipeline owns no persisted state itself; accounts,
// ledger entries, and category rules live behind these interfaces.
package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

var (
	// ErrAccountNotFound means the account id is unknown.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUnknownCategory means an insert referenced a category id that
	// does not exist (anymore).
	ErrUnknownCategory = errors.New("unknown category")
)

// Account is the balance-bearing side of an import.
type Account struct {
	ID       string
	Currency string
	Balance  decimal.Decimal
}

// LedgerEntry is one committed transaction row.
type LedgerEntry struct {
	ID         string
	AccountID  string
	CategoryID string // empty = uncategorized
	Tx         model.NormalizedTransaction
}

// AccountStore looks up accounts and applies balance changes.
type AccountStore interface {
	GetAccount(ctx context.Context, accountID string) (Account, error)
	ApplyBalanceDelta(ctx context.Context, accountID string, delta decimal.Decimal) error
}

// TransactionLedger checks and records committed transactions.
type TransactionLedger interface {
	// FindByFingerprint returns the ledger id of an existing entry with
	// this fingerprint, if any.
	FindByFingerprint(ctx context.Context, accountID, fingerprint string) (string, bool, error)
	Insert(ctx context.Context, accountID string, tx model.NormalizedTransaction, categoryID string) (string, error)
}

// CategoryRuleStore supplies the ordered keyword rules for a user.
type CategoryRuleStore interface {
	ListRules(ctx context.Context, userID string) ([]model.KeywordRule, error)
}

// Tx groups the operations that must land atomically in one commit.
type Tx interface {
	AccountStore
	TransactionLedger
}

// Transactor runs fn inside a single serializable transaction scoped to
// one account. Two concurrent commits for the same account must not both
// insert overlapping fingerprints or compute the balance from a stale
// base; implementations serialize on the account row.
type Transactor interface {
	WithinAccountTx(ctx context.Context, accountID string, fn func(Tx) error) error
}

// Store bundles everything the ingest service needs.
type Store interface {
	AccountStore
	TransactionLedger
	CategoryRuleStore
	Transactor
}
