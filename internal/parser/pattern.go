package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/extract"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

// maxPatternMatches bounds regex work on adversarial documents.
const maxPatternMatches = 10000

// Pattern extracts rows by applying a profile's capture-group regular
// expression over the flattened document text. A fresh matcher is compiled
// per invocation so no state leaks between concurrent requests.
type Pattern struct{}

// Shape returns the document shape this extractor handles.
func (p *Pattern) Shape() model.DocumentShape { return model.ShapePattern }

// Extract flattens the document, normalizes whitespace, and converts every
// pattern match into a raw record. Matches repeating an already-seen
// (date, description, amount) triple are dropped, absorbing headers and
// footers that accidentally match on every page.
func (p *Pattern) Extract(doc model.RawDocument, prof profile.FormatProfile) ([]model.RawRecord, int, error) {
	re, err := regexp.Compile(prof.Pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("profile %s: compiling pattern: %w", prof.Name, err)
	}

	text, err := extract.Flatten(doc.Content)
	if err != nil {
		return nil, 0, err
	}
	text = extract.NormalizeSpace(text)

	matches := re.FindAllStringSubmatch(text, maxPatternMatches)
	if len(matches) == 0 {
		return nil, 0, ErrNoTransactions
	}

	seen := make(map[string]bool, len(matches))
	var records []model.RawRecord
	for i, m := range matches {
		cells := make([]model.Cell, len(m)-1)
		for j, group := range m[1:] {
			cells[j] = model.TextCell(strings.TrimSpace(group))
		}
		rec := model.RawRecord{Row: i + 1, Cells: cells}

		key := matchKey(rec, prof)
		if seen[key] {
			continue
		}
		seen[key] = true
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, 0, ErrNoTransactions
	}
	return records, 0, nil
}

// matchKey builds the in-document dedup key from the located date,
// description, and amount groups.
func matchKey(rec model.RawRecord, prof profile.FormatProfile) string {
	var parts []string
	for _, col := range []profile.Column{prof.Fields.Date, prof.Fields.Description, amountColumn(prof)} {
		if col.Set() {
			parts = append(parts, rec.Cell(int(col)).Text)
		}
	}
	return strings.Join(parts, "\x1f")
}

func amountColumn(prof profile.FormatProfile) profile.Column {
	if prof.Fields.Amount.Set() {
		return prof.Fields.Amount
	}
	if prof.Fields.Expense.Set() {
		return prof.Fields.Expense
	}
	return prof.Fields.Income
}
