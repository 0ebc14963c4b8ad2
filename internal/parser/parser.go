// Package parser extracts raw field rows from the three supported document
// shapes. Extractors are selected by shape, not by bank; everything
// bank-specific lives in the format profile.
package parser

import (
	"errors"
	"fmt"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

// ErrNoTransactions means a document yielded zero extractable rows.
var ErrNoTransactions = errors.New("no transactions extracted")

// Extractor converts one document shape into raw records. Malformed rows
// are skipped and counted, not fatal; a document that yields zero rows is
// an error.
type Extractor interface {
	Extract(doc model.RawDocument, p profile.FormatProfile) (records []model.RawRecord, skipped int, err error)
	Shape() model.DocumentShape
}

// ForShape returns the extractor for a document shape.
func ForShape(shape model.DocumentShape) (Extractor, error) {
	switch shape {
	case model.ShapeTabular:
		return &Tabular{}, nil
	case model.ShapeGrid:
		return &Grid{}, nil
	case model.ShapePattern:
		return &Pattern{}, nil
	default:
		return nil, fmt.Errorf("unsupported document shape %q", shape)
	}
}

// blank reports whether every cell in a row is empty text.
func blank(cells []model.Cell) bool {
	for _, c := range cells {
		if c.Kind != model.CellText || c.Text != "" {
			return false
		}
	}
	return true
}
