// Package categorize proposes a category for a transaction by applying
// ordered keyword rules to its description. This is deliberately linear
// rule evaluation, not a classifier: rule order is the only tie-break, and
// the confidence signal is boolean-strength (a rule matched or it didn't).
package categorize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Engine evaluates a fixed, ordered rule list.
type Engine struct {
	rules []rule
}

type rule struct {
	model.KeywordRule
	folded string // accent-stripped, lower-cased keyword
}

// New creates an Engine from caller-supplied rules, preserving order.
func New(rules []model.KeywordRule) *Engine {
	e := &Engine{rules: make([]rule, 0, len(rules))}
	for _, r := range rules {
		e.rules = append(e.rules, rule{KeywordRule: r, folded: Fold(r.Keyword)})
	}
	return e
}

// Suggest returns the category of the first matching rule, or nil when no
// rule matches.
func (e *Engine) Suggest(tx model.NormalizedTransaction) *model.CategorySuggestion {
	desc := Fold(tx.Description)
	for _, r := range e.rules {
		if r.folded == "" || !r.AppliesTo(tx.Direction) {
			continue
		}
		if matches(desc, r.folded, r.Mode) {
			return &model.CategorySuggestion{CategoryID: r.CategoryID, Keyword: r.Keyword}
		}
	}
	return nil
}

func matches(desc, keyword string, mode model.MatchMode) bool {
	switch mode {
	case model.MatchStartsWith:
		return strings.HasPrefix(desc, keyword)
	case model.MatchEndsWith:
		return strings.HasSuffix(desc, keyword)
	default:
		return strings.Contains(desc, keyword)
	}
}

var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lower-cases a string and strips diacritics, so "Crédito" matches
// the keyword "credito".
func Fold(s string) string {
	folded, _, err := transform.String(foldTransform, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}
