package parser

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/extract"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

// Tabular extracts rows from delimited text documents.
type Tabular struct{}

// Shape returns the document shape this extractor handles.
func (t *Tabular) Shape() model.DocumentShape { return model.ShapeTabular }

// Extract splits the document into rows using the profile's delimiter, or a
// sniffed one when the profile declares none. Rows that fail to parse are
// skipped and counted; header rows are dropped per the profile.
func (t *Tabular) Extract(doc model.RawDocument, p profile.FormatProfile) ([]model.RawRecord, int, error) {
	text, err := extract.Flatten(doc.Content)
	if err != nil {
		return nil, 0, err
	}

	comma := sniffDelimiter(text)
	if d := []rune(p.Delimiter); len(d) > 0 {
		comma = d[0]
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var records []model.RawRecord
	row := 0
	skipped := 0
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			// Malformed row: skip, never fatal.
			skipped++
			continue
		}
		if row <= p.HeaderRows {
			continue
		}
		cells := make([]model.Cell, len(fields))
		for i, f := range fields {
			cells[i] = model.TextCell(strings.TrimSpace(f))
		}
		if blank(cells) {
			continue
		}
		records = append(records, model.RawRecord{Row: row, Cells: cells})
	}

	if len(records) == 0 {
		return nil, skipped, ErrNoTransactions
	}
	return records, skipped, nil
}

// delimiter candidates in priority order; comma last-resort default.
var delimiters = []rune{',', ';', '\t', '|'}

// sniffDelimiter picks the candidate that appears most often in the first
// lines of the document.
func sniffDelimiter(text string) rune {
	lines := strings.SplitN(text, "\n", 11)
	if len(lines) > 10 {
		lines = lines[:10]
	}
	sample := strings.Join(lines, "\n")

	best := ','
	bestCount := 0
	for _, d := range delimiters {
		n := strings.Count(sample, string(d))
		if n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
