package profile

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Column locates a field inside an extracted row. For tabular and grid
// documents it is a zero-based column index; for pattern documents it is a
// zero-based capture-group index. None marks an absent locator.
type Column int

// None means the profile does not map this field.
const None Column = -1

// Set reports whether the locator is present.
func (c Column) Set() bool { return c >= 0 }

// Letter converts a spreadsheet column letter to a Column ("A" -> 0,
// "B" -> 1, "AA" -> 26). Invalid input yields None.
func Letter(s string) Column {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return None
	}
	n := 0
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return None
		}
		n = n*26 + int(r-'A') + 1
	}
	return Column(n - 1)
}

// UnmarshalYAML accepts either a numeric index or a column letter.
func (c *Column) UnmarshalYAML(value *yaml.Node) error {
	var n int
	if err := value.Decode(&n); err == nil {
		*c = Column(n)
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("column locator must be an index or a letter: %w", err)
	}
	col := Letter(s)
	if !col.Set() {
		return fmt.Errorf("invalid column letter %q", s)
	}
	*c = col
	return nil
}

// DateOrder is the component order of string dates in a document.
type DateOrder string

const (
	DayMonthYear DateOrder = "dmy"
	MonthDayYear DateOrder = "mdy"
	YearMonthDay DateOrder = "ymd"
)

// DecimalStyle selects the separator convention for amounts.
type DecimalStyle string

const (
	// American treats "," as a thousands separator: 1,234.56.
	American DecimalStyle = "american"
	// European treats "." as a thousands separator and "," as the
	// decimal point: 1.234,56.
	European DecimalStyle = "european"
)

// Locators maps transaction fields to positions in an extracted row.
// A profile declares either Amount (single signed column) or the
// Income/Expense pair, never both.
type Locators struct {
	Date        Column `yaml:"date"`
	Description Column `yaml:"description"`
	Amount      Column `yaml:"amount"`
	Income      Column `yaml:"income"`
	Expense     Column `yaml:"expense"`
	Balance     Column `yaml:"balance"`
}

// UnmarshalYAML decodes locators with absent fields defaulting to None
// rather than column zero.
func (l *Locators) UnmarshalYAML(value *yaml.Node) error {
	type plain Locators
	p := plain{Date: None, Description: None, Amount: None, Income: None, Expense: None, Balance: None}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*l = Locators(p)
	return nil
}

// SplitColumns reports whether the profile uses separate income and
// expense columns instead of one signed amount column.
func (l Locators) SplitColumns() bool {
	return l.Income.Set() || l.Expense.Set()
}

// FormatProfile describes how to locate transaction fields in one bank's
// export layout. Profiles are static, versioned data; new bank formats are
// added by appending entries to the catalog, not by new code branches.
type FormatProfile struct {
	Name       string              `yaml:"name"`
	Bank       string              `yaml:"bank"`
	Shape      model.DocumentShape `yaml:"shape"`
	Keywords   []string            `yaml:"keywords"`   // filename/content sniff terms
	Delimiter  string              `yaml:"delimiter"`  // tabular; empty means sniff
	HeaderRows int                 `yaml:"headerRows"` // rows to skip before data
	Sheet      string              `yaml:"sheet"`      // grid; empty means first sheet
	Pattern    string              `yaml:"pattern"`    // pattern shape capture regex
	Fields     Locators            `yaml:"fields"`
	DateOrder  DateOrder           `yaml:"dateOrder"`
	Decimal    DecimalStyle        `yaml:"decimal"`
	Currency   string              `yaml:"currency"` // default ISO code
	Generic    bool                `yaml:"generic"`  // fallback profile for its shape
}

// Validate checks the profile for internal consistency.
func (p FormatProfile) Validate() error {
	switch p.Shape {
	case model.ShapeTabular, model.ShapeGrid, model.ShapePattern:
	default:
		return fmt.Errorf("profile %s: unknown shape %q", p.Name, p.Shape)
	}
	if p.Shape == model.ShapePattern && p.Pattern == "" {
		return fmt.Errorf("profile %s: pattern shape requires a pattern", p.Name)
	}
	if !p.Fields.Date.Set() || !p.Fields.Description.Set() {
		return fmt.Errorf("profile %s: date and description locators are required", p.Name)
	}
	if p.Fields.Amount.Set() && p.Fields.SplitColumns() {
		return fmt.Errorf("profile %s: amount and income/expense locators are mutually exclusive", p.Name)
	}
	if !p.Fields.Amount.Set() && !p.Fields.SplitColumns() {
		return fmt.Errorf("profile %s: an amount or income/expense locator is required", p.Name)
	}
	return nil
}
