package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/store"
)

// ErrUnknownFingerprint means a commit decision referenced a fingerprint
// that is not part of the accompanying preview.
var ErrUnknownFingerprint = errors.New("decision references a fingerprint not in the preview")

// commitState tracks a commit request through its lifecycle.
type commitState string

const (
	stateReceived   commitState = "RECEIVED"
	stateValidating commitState = "VALIDATING"
	stateApplying   commitState = "APPLYING"
	stateCommitted  commitState = "COMMITTED"
	stateFailed     commitState = "FAILED"
)

// Commit applies a user-approved subset of a preview to the ledger and the
// account balance as one atomic unit. Every decision's duplicate status is
// re-checked inside the transaction, so a commit raced by another import
// counts the overlap as duplicates instead of inserting twice — which also
// makes retrying a failed commit with the same decisions idempotent.
func (s *Service) Commit(ctx context.Context, accountID string, decisions []model.ImportDecision, preview model.Preview) (model.CommitResult, error) {
	state := stateReceived
	log := s.log.With().Str("account", accountID).Int("decisions", len(decisions)).Logger()

	fail := func(err error) (model.CommitResult, error) {
		log.Error().Str("state", string(state)).Err(err).Msg("commit failed")
		return model.CommitResult{}, err
	}

	state = stateValidating
	byFingerprint := make(map[string]model.PreviewEntry, len(preview.Entries))
	for _, e := range preview.Entries {
		byFingerprint[e.Fingerprint] = e
	}
	for _, d := range decisions {
		if _, ok := byFingerprint[d.Fingerprint]; !ok {
			return fail(fmt.Errorf("%w: %s", ErrUnknownFingerprint, d.Fingerprint))
		}
	}

	state = stateApplying
	var result model.CommitResult
	err := s.store.WithinAccountTx(ctx, accountID, func(tx store.Tx) error {
		delta := decimal.Zero
		for _, d := range decisions {
			if d.Skip {
				result.Skipped++
				continue
			}
			entry := byFingerprint[d.Fingerprint]

			// Re-check against current ledger state to catch an import
			// committed since this preview was generated.
			if _, exists, err := tx.FindByFingerprint(ctx, accountID, d.Fingerprint); err != nil {
				return fmt.Errorf("re-checking fingerprint: %w", err)
			} else if exists {
				result.Duplicates++
				continue
			}

			categoryID := d.CategoryID
			if categoryID == "" && entry.Suggested != nil {
				categoryID = entry.Suggested.CategoryID
			}

			id, err := tx.Insert(ctx, accountID, entry.NormalizedTransaction, categoryID)
			if errors.Is(err, store.ErrUnknownCategory) {
				result.Errored++
				continue
			}
			if err != nil {
				return fmt.Errorf("inserting entry: %w", err)
			}

			result.Imported++
			result.LedgerIDs = append(result.LedgerIDs, id)
			delta = delta.Add(entry.Signed())
		}

		if !delta.IsZero() {
			if err := tx.ApplyBalanceDelta(ctx, accountID, delta); err != nil {
				return fmt.Errorf("applying balance delta: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		state = stateFailed
		return fail(fmt.Errorf("commit: %w", err))
	}

	state = stateCommitted
	log.Info().
		Str("state", string(state)).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("duplicates", result.Duplicates).
		Int("errored", result.Errored).
		Msg("commit applied")

	return result, nil
}
