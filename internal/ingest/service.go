// Package ingest wires the import pipeline together: format detection,
// extraction, normalization, deduplication, category suggestion, and the
// atomic commit of approved rows.
package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bankfeed-dev/bankfeed/internal/categorize"
	"github.com/bankfeed-dev/bankfeed/internal/dedup"
	"github.com/bankfeed-dev/bankfeed/internal/detect"
	"github.com/bankfeed-dev/bankfeed/internal/extract"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/normalize"
	"github.com/bankfeed-dev/bankfeed/internal/parser"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
	"github.com/bankfeed-dev/bankfeed/internal/store"
)

// Service is the pipeline facade the surrounding product calls. It holds
// no per-request state; the profile catalog is the only thing shared
// between requests.
type Service struct {
	detector  *detect.Detector
	store     store.Store
	log       zerolog.Logger
	descLimit int
}

// NewService creates a Service over a profile registry and a store.
func NewService(reg *profile.Registry, st store.Store, log zerolog.Logger) *Service {
	return &Service{
		detector:  detect.New(reg),
		store:     st,
		log:       log,
		descLimit: normalize.DefaultDescriptionLimit,
	}
}

// SetDescriptionLimit overrides the description length cap.
func (s *Service) SetDescriptionLimit(limit int) {
	if limit > 0 {
		s.descLimit = limit
	}
}

// Detect resolves the format profile for a document without parsing it
// fully.
func (s *Service) Detect(doc model.RawDocument) (profile.FormatProfile, error) {
	return s.detector.Detect(doc)
}

// Preview runs the read-only half of the pipeline: detect, extract,
// normalize, deduplicate against batch and history, and suggest
// categories. Nothing is written.
func (s *Service) Preview(ctx context.Context, doc model.RawDocument, accountID, userID string) (model.Preview, error) {
	if _, err := s.store.GetAccount(ctx, accountID); err != nil {
		return model.Preview{}, fmt.Errorf("loading account %s: %w", accountID, err)
	}

	prof, err := s.detector.Detect(doc)
	if err != nil {
		return model.Preview{}, fmt.Errorf("format detection: %w", err)
	}

	ext, err := parser.ForShape(prof.Shape)
	if err != nil {
		return model.Preview{}, err
	}
	records, malformed, err := ext.Extract(doc, prof)
	if err != nil {
		return model.Preview{}, fmt.Errorf("extraction (%s): %w", prof.Name, err)
	}

	currency := s.resolveCurrency(doc, prof)
	norm := normalize.Records(records, prof, currency, s.descLimit)
	txs := dedup.Stamp(accountID, norm.Transactions)

	rules, err := s.store.ListRules(ctx, userID)
	if err != nil {
		return model.Preview{}, fmt.Errorf("loading category rules: %w", err)
	}
	engine := categorize.New(rules)

	preview := model.Preview{
		AccountID:   accountID,
		Format:      prof.Name,
		Currency:    currency,
		SkippedRows: malformed + norm.Skipped,
	}
	for _, tx := range txs {
		entry := model.PreviewEntry{NormalizedTransaction: tx}

		if id, ok, err := s.store.FindByFingerprint(ctx, accountID, tx.Fingerprint); err != nil {
			return model.Preview{}, fmt.Errorf("checking history: %w", err)
		} else if ok {
			// Flagged, not removed: skipping a duplicate is the
			// caller's call at commit time.
			entry.IsDuplicate = true
			entry.DuplicateOf = id
		}

		entry.Suggested = engine.Suggest(tx)

		if preview.From.IsZero() || tx.OccurredOn.Before(preview.From) {
			preview.From = tx.OccurredOn
		}
		if tx.OccurredOn.After(preview.To) {
			preview.To = tx.OccurredOn
		}
		if tx.Direction == model.Income {
			preview.TotalIncome = preview.TotalIncome.Add(tx.Amount)
		} else {
			preview.TotalExpense = preview.TotalExpense.Add(tx.Amount)
		}

		preview.Entries = append(preview.Entries, entry)
	}

	s.log.Info().
		Str("account", accountID).
		Str("format", prof.Name).
		Str("currency", currency).
		Int("entries", len(preview.Entries)).
		Int("skipped", preview.SkippedRows).
		Msg("preview built")

	return preview, nil
}

// resolveCurrency sniffs the document for a currency marker, falling back
// to the profile default.
func (s *Service) resolveCurrency(doc model.RawDocument, prof profile.FormatProfile) string {
	var text string
	if prof.Shape == model.ShapeGrid {
		text = parser.SheetText(doc.Content, sniffLimit)
	} else if flat, err := extract.Flatten(doc.Content); err == nil {
		text = extract.Prefix(flat, sniffLimit)
	}
	return normalize.SniffCurrency(text, prof.Currency)
}

// sniffLimit caps the text scanned for currency markers.
const sniffLimit = 4096
