package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

// buildSheet creates an xlsx document in memory.
func buildSheet(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func gridProfile() profile.FormatProfile {
	return profile.FormatProfile{
		Name:       "test-xlsx",
		Shape:      model.ShapeGrid,
		HeaderRows: 1,
		Fields: profile.Locators{
			Date:        profile.Letter("A"),
			Description: profile.Letter("B"),
			Amount:      profile.Letter("C"),
			Income:      profile.None,
			Expense:     profile.None,
			Balance:     profile.None,
		},
		DateOrder: profile.DayMonthYear,
		Decimal:   profile.American,
		Currency:  "EUR",
	}
}

func TestGridExtract(t *testing.T) {
	content := buildSheet(t, "Movements", [][]any{
		{"Date", "Description", "Amount"},
		{"15/01/2025", "Grocery Store", "-45.50"},
		{"16/01/2025", "Salary", "3500.00"},
	})

	ext := &Grid{}
	records, _, err := ext.Extract(model.RawDocument{Content: content, Filename: "export.xlsx"}, gridProfile())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "15/01/2025", records[0].Cell(0).Text)
	assert.Equal(t, "Grocery Store", records[0].Cell(1).Text)
	assert.Equal(t, "-45.50", records[0].Cell(2).Text)
	assert.Equal(t, "Salary", records[1].Cell(1).Text)
}

func TestGridSerialDates(t *testing.T) {
	content := buildSheet(t, "Sheet1", [][]any{
		{"Date", "Description", "Amount"},
		{45658, "Opening purchase", "-12.00"},
	})

	ext := &Grid{}
	records, _, err := ext.Extract(model.RawDocument{Content: content}, gridProfile())
	require.NoError(t, err)
	require.Len(t, records, 1)

	// A bare number in the date column is a spreadsheet serial date.
	date := records[0].Cell(0)
	assert.Equal(t, model.CellNumber, date.Kind)
	assert.Equal(t, float64(45658), date.Number)
	// The amount column stays text.
	assert.Equal(t, model.CellText, records[0].Cell(2).Kind)
	assert.Equal(t, "-12.00", records[0].Cell(2).Text)
}

func TestGridSheetSelector(t *testing.T) {
	content := buildSheet(t, "Hoja1", [][]any{
		{"Fecha", "Detalle", "Importe"},
		{"01/02/2025", "Panaderia", "-12.00"},
	})

	p := gridProfile()
	p.Sheet = "Hoja1"
	ext := &Grid{}
	records, _, err := ext.Extract(model.RawDocument{Content: content}, p)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Panaderia", records[0].Cell(1).Text)
}

func TestGridHeaderOnly(t *testing.T) {
	content := buildSheet(t, "Sheet1", [][]any{
		{"Date", "Description", "Amount"},
	})

	ext := &Grid{}
	_, _, err := ext.Extract(model.RawDocument{Content: content}, gridProfile())
	assert.ErrorIs(t, err, ErrNoTransactions)
}

func TestGridRejectsGarbage(t *testing.T) {
	ext := &Grid{}
	_, _, err := ext.Extract(model.RawDocument{Content: []byte("not a spreadsheet")}, gridProfile())
	require.Error(t, err)
}

func TestGridRejectsLegacyWorkbook(t *testing.T) {
	content := append([]byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}, make([]byte, 512)...)
	ext := &Grid{}
	_, _, err := ext.Extract(model.RawDocument{Content: content, Filename: "old.xls"}, gridProfile())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "legacy .xls")
}

func TestSheetText(t *testing.T) {
	content := buildSheet(t, "Sheet1", [][]any{
		{"Banco República", ""},
		{"15/01/2025", "Almacen"},
	})

	text := SheetText(content, 4096)
	assert.Contains(t, text, "Banco República")
	assert.Contains(t, text, "Almacen")
}
