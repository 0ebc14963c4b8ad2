// Package dedup fingerprints normalized transactions and collapses
// duplicates inside one batch. History checks against the ledger happen in
// the ingest service, which owns the store handles.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Fingerprint returns the stable content hash identifying a transaction
// for deduplication: account, ISO date, description, amount, direction.
func Fingerprint(accountID string, tx model.NormalizedTransaction) string {
	h := sha256.New()
	h.Write([]byte(strings.Join([]string{
		accountID,
		tx.OccurredOn.Format("2006-01-02"),
		tx.Description,
		tx.Amount.String(),
		string(tx.Direction),
	}, "|")))
	return hex.EncodeToString(h.Sum(nil))
}

// Stamp sets the fingerprint on every transaction and collapses records
// sharing one within the batch, keeping the first occurrence. This absorbs
// repeated-row artifacts from pattern extraction.
func Stamp(accountID string, txs []model.NormalizedTransaction) []model.NormalizedTransaction {
	seen := make(map[string]bool, len(txs))
	out := make([]model.NormalizedTransaction, 0, len(txs))
	for _, tx := range txs {
		tx.Fingerprint = Fingerprint(accountID, tx)
		if seen[tx.Fingerprint] {
			continue
		}
		seen[tx.Fingerprint] = true
		out = append(out, tx)
	}
	return out
}
