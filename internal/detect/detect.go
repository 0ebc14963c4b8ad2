// Package detect chooses a format profile for an uploaded document. It is
// an ordered fallback chain: explicit hint, filename keyword, content
// keyword, trial pattern extraction, then the generic profile for the
// detected shape. Each step reports "no match" rather than failing, and the
// first success wins.
package detect

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/extract"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/parser"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

// ErrNoFormatDetected means no profile could be chosen for a document.
var ErrNoFormatDetected = errors.New("no format detected")

// sniffLimit caps how much extracted text the content detector examines.
const sniffLimit = 4096

// minTrialMatches is the evidence threshold for trial extraction. A single
// accidental match on boilerplate (an address, a totals line) is not enough
// to claim a profile.
const minTrialMatches = 2

// Detector resolves documents against a profile registry.
type Detector struct {
	reg *profile.Registry
}

// New creates a Detector over a registry.
func New(reg *profile.Registry) *Detector {
	return &Detector{reg: reg}
}

// Detect picks the format profile for a document.
func (d *Detector) Detect(doc model.RawDocument) (profile.FormatProfile, error) {
	if doc.ProfileHint != "" {
		if p, ok := d.reg.Get(doc.ProfileHint); ok {
			return p, nil
		}
	}

	shape := ShapeOf(doc)

	if p, ok := d.byFilename(doc, shape); ok {
		return p, nil
	}
	if p, ok := d.byContent(doc, shape); ok {
		return p, nil
	}
	if shape == model.ShapePattern {
		if p, ok := d.byTrialExtraction(doc); ok {
			return p, nil
		}
	}
	if p, ok := d.reg.Generic(shape); ok {
		return p, nil
	}
	return profile.FormatProfile{}, ErrNoFormatDetected
}

// ShapeOf classifies the physical layout of a document from its filename
// extension and magic bytes.
func ShapeOf(doc model.RawDocument) model.DocumentShape {
	switch strings.ToLower(filepath.Ext(doc.Filename)) {
	case ".csv", ".tsv":
		return model.ShapeTabular
	case ".xlsx", ".xls":
		return model.ShapeGrid
	case ".pdf":
		return model.ShapePattern
	}
	if extract.IsSpreadsheet(doc.Content) || extract.IsLegacyWorkbook(doc.Content) {
		return model.ShapeGrid
	}
	if extract.IsPDF(doc.Content) {
		return model.ShapePattern
	}
	if looksDelimited(doc.Content) {
		return model.ShapeTabular
	}
	return model.ShapePattern
}

// byFilename matches profile keywords against the declared filename.
func (d *Detector) byFilename(doc model.RawDocument, shape model.DocumentShape) (profile.FormatProfile, bool) {
	name := strings.ToLower(doc.Filename)
	for _, p := range d.reg.ByShape(shape) {
		for _, kw := range p.Keywords {
			if strings.Contains(name, strings.ToLower(kw)) {
				return p, true
			}
		}
	}
	return profile.FormatProfile{}, false
}

// byContent matches profile keywords against a fixed-size prefix of the
// extracted text or cells.
func (d *Detector) byContent(doc model.RawDocument, shape model.DocumentShape) (profile.FormatProfile, bool) {
	var text string
	if shape == model.ShapeGrid {
		text = parser.SheetText(doc.Content, sniffLimit)
	} else {
		flat, err := extract.Flatten(doc.Content)
		if err != nil {
			return profile.FormatProfile{}, false
		}
		text = extract.Prefix(flat, sniffLimit)
	}
	text = strings.ToLower(text)

	for _, p := range d.reg.ByShape(shape) {
		for _, kw := range p.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				return p, true
			}
		}
	}
	return profile.FormatProfile{}, false
}

// byTrialExtraction tries each pattern profile's regular expression and
// accepts the first one with at least minTrialMatches distinct matches.
func (d *Detector) byTrialExtraction(doc model.RawDocument) (profile.FormatProfile, bool) {
	flat, err := extract.Flatten(doc.Content)
	if err != nil {
		return profile.FormatProfile{}, false
	}
	text := extract.NormalizeSpace(flat)

	for _, p := range d.reg.ByShape(model.ShapePattern) {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		if len(re.FindAllStringIndex(text, minTrialMatches)) >= minTrialMatches {
			return p, true
		}
	}
	return profile.FormatProfile{}, false
}

// looksDelimited reports whether the first line of a text document carries
// a delimiter character.
func looksDelimited(content []byte) bool {
	s := string(content)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.ContainsAny(s, ",;\t|")
}
