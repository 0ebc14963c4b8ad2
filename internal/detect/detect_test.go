package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

func detector() *Detector {
	return New(profile.Default())
}

func TestDetectExplicitHint(t *testing.T) {
	doc := model.RawDocument{
		Content:     []byte("whatever"),
		Filename:    "statement.csv",
		ProfileHint: "sparkasse-csv",
	}
	p, err := detector().Detect(doc)
	require.NoError(t, err)
	assert.Equal(t, "sparkasse-csv", p.Name)
}

func TestDetectUnknownHintFallsThrough(t *testing.T) {
	doc := model.RawDocument{
		Content:     []byte("Date,Description,Amount\n15/01/2025,X,1.00\n"),
		Filename:    "export.csv",
		ProfileHint: "no-such-profile",
	}
	p, err := detector().Detect(doc)
	require.NoError(t, err)
	assert.Equal(t, "generic-csv", p.Name)
}

func TestDetectByFilename(t *testing.T) {
	doc := model.RawDocument{
		Content:  []byte("Transaction Date,...\n"),
		Filename: "Lloyds_2025-01.csv",
	}
	p, err := detector().Detect(doc)
	require.NoError(t, err)
	assert.Equal(t, "lloyds-csv", p.Name)
}

func TestDetectByContent(t *testing.T) {
	doc := model.RawDocument{
		Content:  []byte("Auftragskonto;Buchungstag\nSparkasse Musterstadt;01.02.2025\n"),
		Filename: "umsaetze.csv",
	}
	p, err := detector().Detect(doc)
	require.NoError(t, err)
	assert.Equal(t, "sparkasse-csv", p.Name)
}

func TestDetectByTrialExtraction(t *testing.T) {
	// No bank name anywhere, so only trial extraction can decide.
	doc := model.RawDocument{
		Content: []byte("Statement of account\n" +
			"03/01/2025 CARD PAYMENT TESCO STORES -45.50 954.50\n" +
			"07/01/2025 FASTER PAYMENT SALARY 3500.00 4454.50\n"),
		Filename: "statement.pdf",
	}
	p, err := detector().Detect(doc)
	require.NoError(t, err)
	assert.Equal(t, "metro-pdf", p.Name)
}

func TestDetectTrialRequiresTwoMatches(t *testing.T) {
	// One accidental pattern hit on a boilerplate line is not evidence.
	doc := model.RawDocument{
		Content:  []byte("Totals as of 31/12/2024 year end 100.00 200.00\nThank you for banking with us.\n"),
		Filename: "letter.pdf",
	}
	p, err := detector().Detect(doc)
	require.NoError(t, err)
	assert.Equal(t, "generic-statement", p.Name)
}

func TestDetectGenericFallbackPerShape(t *testing.T) {
	doc := model.RawDocument{
		Content:  []byte("15/01/2025,Grocery Store,-45.50,1000.00\n"),
		Filename: "anonymous.csv",
	}
	p, err := detector().Detect(doc)
	require.NoError(t, err)
	assert.Equal(t, "generic-csv", p.Name)
}

func TestShapeOf(t *testing.T) {
	assert.Equal(t, model.ShapeTabular, ShapeOf(model.RawDocument{Filename: "a.csv"}))
	assert.Equal(t, model.ShapeGrid, ShapeOf(model.RawDocument{Filename: "a.xlsx"}))
	assert.Equal(t, model.ShapePattern, ShapeOf(model.RawDocument{Filename: "a.pdf"}))
	assert.Equal(t, model.ShapeGrid, ShapeOf(model.RawDocument{Filename: "blob", Content: []byte("PK\x03\x04...")}))
	assert.Equal(t, model.ShapePattern, ShapeOf(model.RawDocument{Filename: "blob", Content: []byte("%PDF-1.7...")}))
	assert.Equal(t, model.ShapeTabular, ShapeOf(model.RawDocument{Filename: "blob", Content: []byte("a;b;c\n")}))
	assert.Equal(t, model.ShapePattern, ShapeOf(model.RawDocument{Filename: "blob", Content: []byte("free text")}))
}
