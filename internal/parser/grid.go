package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bankfeed-dev/bankfeed/internal/extract"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

// Grid extracts rows from spreadsheet documents (xlsx).
type Grid struct{}

// Shape returns the document shape this extractor handles.
func (g *Grid) Shape() model.DocumentShape { return model.ShapeGrid }

// Extract reads the 2-D cell matrix from the profile's sheet (or the first
// sheet), skipping the declared header rows. Cell values are read raw, so
// spreadsheet serial dates reach the normalizer as numbers.
func (g *Grid) Extract(doc model.RawDocument, p profile.FormatProfile) ([]model.RawRecord, int, error) {
	if extract.IsLegacyWorkbook(doc.Content) {
		return nil, 0, errors.New("legacy .xls workbook is not supported; export the statement as .xlsx or csv")
	}

	f, err := excelize.OpenReader(bytes.NewReader(doc.Content))
	if err != nil {
		return nil, 0, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := p.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, 0, ErrNoTransactions
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, 0, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	var records []model.RawRecord
	for i, row := range rows {
		if i < p.HeaderRows {
			continue
		}
		cells := make([]model.Cell, len(row))
		for j, v := range row {
			cells[j] = gridCell(profile.Column(j), strings.TrimSpace(v), p)
		}
		if blank(cells) {
			continue
		}
		records = append(records, model.RawRecord{Row: i + 1, Cells: cells})
	}

	if len(records) == 0 {
		return nil, 0, ErrNoTransactions
	}
	return records, 0, nil
}

// gridCell types a raw sheet value. Date-column cells holding a bare
// number are spreadsheet serial dates and keep their numeric type; all
// other values stay text so amount parsing sees the original string.
func gridCell(col profile.Column, v string, p profile.FormatProfile) model.Cell {
	if col == p.Fields.Date && v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return model.NumberCell(n)
		}
	}
	return model.TextCell(v)
}

// SheetText returns a flattened text prefix of the first sheet, used for
// content keyword sniffing on grid documents.
func SheetText(content []byte, limit int) string {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return ""
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ""
	}

	var sb strings.Builder
	for _, row := range rows {
		for _, v := range row {
			if sb.Len() >= limit {
				return sb.String()
			}
			if v = strings.TrimSpace(v); v != "" {
				sb.WriteString(v)
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}
