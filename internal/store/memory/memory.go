// Package memory is an in-memory store used by tests and the CLI's local
// mode. A single mutex serializes commits, which trivially satisfies the
// per-account transaction contract.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/store"
)

// Store implements store.Store in process memory.
type Store struct {
	mu         sync.Mutex
	accounts   map[string]store.Account
	entries    map[string][]store.LedgerEntry // by account id
	categories map[string]bool
	rules      map[string][]model.KeywordRule // by user id
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		accounts:   make(map[string]store.Account),
		entries:    make(map[string][]store.LedgerEntry),
		categories: make(map[string]bool),
		rules:      make(map[string][]model.KeywordRule),
	}
}

// AddAccount registers an account.
func (s *Store) AddAccount(a store.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
}

// AddCategory registers a category id as valid.
func (s *Store) AddCategory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[id] = true
}

// SetRules replaces the keyword rules for a user.
func (s *Store) SetRules(userID string, rules []model.KeywordRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[userID] = rules
}

// Entries returns the committed ledger entries for an account.
func (s *Store) Entries(accountID string) []store.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.LedgerEntry, len(s.entries[accountID]))
	copy(out, s.entries[accountID])
	return out
}

// GetAccount implements store.AccountStore.
func (s *Store) GetAccount(_ context.Context, accountID string) (store.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return store.Account{}, store.ErrAccountNotFound
	}
	return a, nil
}

// ApplyBalanceDelta implements store.AccountStore.
func (s *Store) ApplyBalanceDelta(_ context.Context, accountID string, delta decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyDeltaLocked(accountID, delta)
}

func (s *Store) applyDeltaLocked(accountID string, delta decimal.Decimal) error {
	a, ok := s.accounts[accountID]
	if !ok {
		return store.ErrAccountNotFound
	}
	a.Balance = a.Balance.Add(delta)
	s.accounts[accountID] = a
	return nil
}

// FindByFingerprint implements store.TransactionLedger.
func (s *Store) FindByFingerprint(_ context.Context, accountID, fingerprint string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(accountID, fingerprint)
}

func (s *Store) findLocked(accountID, fingerprint string) (string, bool, error) {
	for _, e := range s.entries[accountID] {
		if e.Tx.Fingerprint == fingerprint {
			return e.ID, true, nil
		}
	}
	return "", false, nil
}

// Insert implements store.TransactionLedger.
func (s *Store) Insert(_ context.Context, accountID string, tx model.NormalizedTransaction, categoryID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.makeEntryLocked(accountID, tx, categoryID)
	if err != nil {
		return "", err
	}
	s.entries[accountID] = append(s.entries[accountID], entry)
	return entry.ID, nil
}

func (s *Store) makeEntryLocked(accountID string, tx model.NormalizedTransaction, categoryID string) (store.LedgerEntry, error) {
	if _, ok := s.accounts[accountID]; !ok {
		return store.LedgerEntry{}, store.ErrAccountNotFound
	}
	if categoryID != "" && !s.categories[categoryID] {
		return store.LedgerEntry{}, store.ErrUnknownCategory
	}
	return store.LedgerEntry{
		ID:         uuid.NewString(),
		AccountID:  accountID,
		CategoryID: categoryID,
		Tx:         tx,
	}, nil
}

// ListRules implements store.CategoryRuleStore.
func (s *Store) ListRules(_ context.Context, userID string) ([]model.KeywordRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rules := make([]model.KeywordRule, len(s.rules[userID]))
	copy(rules, s.rules[userID])
	return rules, nil
}

// WithinAccountTx implements store.Transactor. Writes are staged and only
// applied when fn succeeds, so a failed commit leaves the store untouched.
func (s *Store) WithinAccountTx(_ context.Context, accountID string, fn func(store.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountID]; !ok {
		return store.ErrAccountNotFound
	}

	tx := &memTx{s: s, accountID: accountID, delta: decimal.Zero}
	if err := fn(tx); err != nil {
		return err
	}

	s.entries[accountID] = append(s.entries[accountID], tx.inserts...)
	return s.applyDeltaLocked(accountID, tx.delta)
}

// memTx stages writes against the locked store.
type memTx struct {
	s         *Store
	accountID string
	inserts   []store.LedgerEntry
	delta     decimal.Decimal
}

func (t *memTx) GetAccount(_ context.Context, accountID string) (store.Account, error) {
	a, ok := t.s.accounts[accountID]
	if !ok {
		return store.Account{}, store.ErrAccountNotFound
	}
	a.Balance = a.Balance.Add(t.delta)
	return a, nil
}

func (t *memTx) ApplyBalanceDelta(_ context.Context, accountID string, delta decimal.Decimal) error {
	if _, ok := t.s.accounts[accountID]; !ok {
		return store.ErrAccountNotFound
	}
	t.delta = t.delta.Add(delta)
	return nil
}

// FindByFingerprint sees both committed entries and this transaction's
// staged inserts, so a repeated fingerprint inside one commit becomes a
// duplicate rather than a second row.
func (t *memTx) FindByFingerprint(_ context.Context, accountID, fingerprint string) (string, bool, error) {
	if id, ok, err := t.s.findLocked(accountID, fingerprint); ok || err != nil {
		return id, ok, err
	}
	for _, e := range t.inserts {
		if e.AccountID == accountID && e.Tx.Fingerprint == fingerprint {
			return e.ID, true, nil
		}
	}
	return "", false, nil
}

func (t *memTx) Insert(_ context.Context, accountID string, tx model.NormalizedTransaction, categoryID string) (string, error) {
	entry, err := t.s.makeEntryLocked(accountID, tx, categoryID)
	if err != nil {
		return "", err
	}
	t.inserts = append(t.inserts, entry)
	return entry.ID, nil
}
