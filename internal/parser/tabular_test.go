package parser

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

func lloydsProfile() profile.FormatProfile {
	reg := profile.Default()
	p, _ := reg.Get("lloyds-csv")
	return p
}

func TestTabularExtract(t *testing.T) {
	content, err := os.ReadFile("../../testdata/lloyds_statement.csv")
	require.NoError(t, err)

	ext := &Tabular{}
	records, _, err := ext.Extract(model.RawDocument{Content: content, Filename: "lloyds.csv"}, lloydsProfile())
	require.NoError(t, err)
	require.Len(t, records, 6)

	first := records[0]
	assert.Equal(t, "03/01/2025", first.Cell(0).Text)
	assert.Equal(t, "GITHUB PRO SUBSCRIPTION", first.Cell(4).Text)
	assert.Equal(t, "4.00", first.Cell(5).Text)
	assert.Equal(t, "", first.Cell(6).Text)
}

func TestTabularSniffsDelimiter(t *testing.T) {
	doc := model.RawDocument{Content: []byte("01.02.2025;Miete;-800,00\n15.02.2025;Gehalt;2500,00\n")}
	p := profile.FormatProfile{
		Shape:  model.ShapeTabular,
		Fields: profile.Locators{Date: 0, Description: 1, Amount: 2, Income: profile.None, Expense: profile.None, Balance: profile.None},
	}

	ext := &Tabular{}
	records, _, err := ext.Extract(doc, p)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Miete", records[0].Cell(1).Text)
	assert.Equal(t, "2500,00", records[1].Cell(2).Text)
}

func TestTabularSkipsMalformedRows(t *testing.T) {
	// Bare quote inside the middle row makes it unparsable.
	doc := model.RawDocument{Content: []byte("a,b,c\n03/01/2025,bro\"ken,2.00\n04/01/2025,OK,1.00\n")}
	p := profile.FormatProfile{
		Shape:      model.ShapeTabular,
		Delimiter:  ",",
		HeaderRows: 1,
		Fields:     profile.Locators{Date: 0, Description: 1, Amount: 2, Income: profile.None, Expense: profile.None, Balance: profile.None},
	}

	ext := &Tabular{}
	records, skipped, err := ext.Extract(doc, p)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "OK", records[0].Cell(1).Text)
}

func TestTabularEmptyDocument(t *testing.T) {
	doc := model.RawDocument{Content: []byte("Date,Description,Amount\n")}
	p := profile.FormatProfile{
		Shape:      model.ShapeTabular,
		Delimiter:  ",",
		HeaderRows: 1,
		Fields:     profile.Locators{Date: 0, Description: 1, Amount: 2, Income: profile.None, Expense: profile.None, Balance: profile.None},
	}

	ext := &Tabular{}
	_, _, err := ext.Extract(doc, p)
	assert.ErrorIs(t, err, ErrNoTransactions)
}
