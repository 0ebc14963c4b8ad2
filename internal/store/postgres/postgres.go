// Package postgres implements the store interfaces on PostgreSQL. Commits
// run in a serializable transaction that locks the account row, so two
// concurrent imports for the same account are applied one after the other.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/store"
)

// foreignKeyViolation is the Postgres error code for FK failures.
const foreignKeyViolation = "23503"

// Store implements store.Store on a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against the given database URL.
func Connect(ctx context.Context, url string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}
	cfg.MaxConns = 5
	cfg.MinConns = 1
	cfg.MaxConnIdleTime = 2 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() { s.pool.Close() }

// querier is the subset of pgx shared by pools and transactions.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// GetAccount implements store.AccountStore.
func (s *Store) GetAccount(ctx context.Context, accountID string) (store.Account, error) {
	return getAccount(ctx, s.pool, accountID)
}

// ApplyBalanceDelta implements store.AccountStore.
func (s *Store) ApplyBalanceDelta(ctx context.Context, accountID string, delta decimal.Decimal) error {
	return applyBalanceDelta(ctx, s.pool, accountID, delta)
}

// FindByFingerprint implements store.TransactionLedger.
func (s *Store) FindByFingerprint(ctx context.Context, accountID, fingerprint string) (string, bool, error) {
	return findByFingerprint(ctx, s.pool, accountID, fingerprint)
}

// Insert implements store.TransactionLedger.
func (s *Store) Insert(ctx context.Context, accountID string, tx model.NormalizedTransaction, categoryID string) (string, error) {
	return insertEntry(ctx, s.pool, accountID, tx, categoryID)
}

// ListRules implements store.CategoryRuleStore.
func (s *Store) ListRules(ctx context.Context, userID string) ([]model.KeywordRule, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT category_id, keyword, mode, scope
		   FROM category_rules
		  WHERE user_id = $1
		  ORDER BY position, keyword`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	defer rows.Close()

	var rules []model.KeywordRule
	for rows.Next() {
		var r model.KeywordRule
		if err := rows.Scan(&r.CategoryID, &r.Keyword, &r.Mode, &r.Scope); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// WithinAccountTx implements store.Transactor.
func (s *Store) WithinAccountTx(ctx context.Context, accountID string, fn func(store.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the account row so concurrent commits for this account queue
	// behind each other.
	var locked string
	err = tx.QueryRow(ctx, `SELECT id FROM accounts WHERE id = $1 FOR UPDATE`, accountID).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("locking account: %w", err)
	}

	if err := fn(pgTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// pgTx exposes the store operations on an open transaction.
type pgTx struct {
	tx pgx.Tx
}

func (t pgTx) GetAccount(ctx context.Context, accountID string) (store.Account, error) {
	return getAccount(ctx, t.tx, accountID)
}

func (t pgTx) ApplyBalanceDelta(ctx context.Context, accountID string, delta decimal.Decimal) error {
	return applyBalanceDelta(ctx, t.tx, accountID, delta)
}

func (t pgTx) FindByFingerprint(ctx context.Context, accountID, fingerprint string) (string, bool, error) {
	return findByFingerprint(ctx, t.tx, accountID, fingerprint)
}

// Insert runs inside a savepoint. A category FK violation would otherwise
// abort the whole serializable transaction and turn one bad row into a
// whole-commit failure; the savepoint rollback keeps the transaction usable
// so the caller can count the row as errored and continue.
func (t pgTx) Insert(ctx context.Context, accountID string, tx model.NormalizedTransaction, categoryID string) (string, error) {
	sp, err := t.tx.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("opening savepoint: %w", err)
	}
	id, err := insertEntry(ctx, sp, accountID, tx, categoryID)
	if err != nil {
		_ = sp.Rollback(ctx)
		return "", err
	}
	if err := sp.Commit(ctx); err != nil {
		return "", fmt.Errorf("releasing savepoint: %w", err)
	}
	return id, nil
}

func getAccount(ctx context.Context, q querier, accountID string) (store.Account, error) {
	var a store.Account
	var balance string
	err := q.QueryRow(ctx,
		`SELECT id, currency, balance FROM accounts WHERE id = $1`, accountID).
		Scan(&a.ID, &a.Currency, &balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.Account{}, store.ErrAccountNotFound
	}
	if err != nil {
		return store.Account{}, fmt.Errorf("loading account: %w", err)
	}
	a.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return store.Account{}, fmt.Errorf("parsing balance: %w", err)
	}
	return a, nil
}

func applyBalanceDelta(ctx context.Context, q querier, accountID string, delta decimal.Decimal) error {
	tag, err := q.Exec(ctx,
		`UPDATE accounts SET balance = balance + $2 WHERE id = $1`,
		accountID, delta.String(),
	)
	if err != nil {
		return fmt.Errorf("updating balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrAccountNotFound
	}
	return nil
}

func findByFingerprint(ctx context.Context, q querier, accountID, fingerprint string) (string, bool, error) {
	var id string
	err := q.QueryRow(ctx,
		`SELECT id FROM ledger_entries WHERE account_id = $1 AND fingerprint = $2`,
		accountID, fingerprint,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("checking fingerprint: %w", err)
	}
	return id, true, nil
}

func insertEntry(ctx context.Context, q querier, accountID string, tx model.NormalizedTransaction, categoryID string) (string, error) {
	id := uuid.NewString()
	var category any
	if categoryID != "" {
		category = categoryID
	}
	var balance any
	if tx.RunningBalance.Valid {
		balance = tx.RunningBalance.Decimal.String()
	}

	_, err := q.Exec(ctx,
		`INSERT INTO ledger_entries
		   (id, account_id, occurred_on, description, amount, direction, currency, running_balance, fingerprint, category_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, accountID, tx.OccurredOn, tx.Description, tx.Amount.String(),
		string(tx.Direction), tx.Currency, balance, tx.Fingerprint, category,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return "", store.ErrUnknownCategory
		}
		return "", fmt.Errorf("inserting ledger entry: %w", err)
	}
	return id, nil
}
