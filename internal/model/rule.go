package model

// MatchMode is how a keyword rule matches a description.
type MatchMode string

const (
	MatchContains   MatchMode = "contains"
	MatchStartsWith MatchMode = "startsWith"
	MatchEndsWith   MatchMode = "endsWith"
)

// RuleScope restricts a keyword rule to one transaction direction.
type RuleScope string

const (
	ScopeAll     RuleScope = "ALL"
	ScopeIncome  RuleScope = "INCOME"
	ScopeExpense RuleScope = "EXPENSE"
)

// KeywordRule maps a description keyword to a category. Rules are evaluated
// in list order; the first match wins.
type KeywordRule struct {
	CategoryID string
	Keyword    string
	Mode       MatchMode
	Scope      RuleScope
}

// AppliesTo reports whether the rule's scope covers the given direction.
func (r KeywordRule) AppliesTo(d Direction) bool {
	switch r.Scope {
	case ScopeIncome:
		return d == Income
	case ScopeExpense:
		return d == Expense
	default:
		return true
	}
}
