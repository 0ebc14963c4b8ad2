package model

import "time"

// DocumentShape classifies the physical layout of an uploaded statement.
type DocumentShape string

const (
	ShapeTabular DocumentShape = "tabular" // delimited text: CSV, TSV
	ShapeGrid    DocumentShape = "grid"    // spreadsheet cell matrix
	ShapePattern DocumentShape = "pattern" // regex extraction over flattened text
)

// RawDocument is an uploaded statement file before any processing.
// It is created once at upload and never mutated.
type RawDocument struct {
	Content     []byte
	Filename    string
	ProfileHint string // optional explicit profile name
}

// CellKind tags the native type of an extracted cell.
type CellKind int

const (
	CellText CellKind = iota
	CellNumber
	CellDate
)

// Cell is one raw field value as extracted from the source document.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

// TextCell wraps a string value.
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// NumberCell wraps a numeric value (e.g. a spreadsheet serial date).
func NumberCell(f float64) Cell { return Cell{Kind: CellNumber, Number: f} }

// DateCell wraps a native date value.
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Date: t} }

// RawRecord is one extracted row before normalization. Row is the
// originating row (or match) index, kept for diagnostics only.
type RawRecord struct {
	Row   int
	Cells []Cell
}

// Cell returns the cell at index i, or an empty text cell when the
// locator points past the end of the row.
func (r RawRecord) Cell(i int) Cell {
	if i < 0 || i >= len(r.Cells) {
		return Cell{}
	}
	return r.Cells[i]
}
