package profile

import "github.com/bankfeed-dev/bankfeed/internal/model"

// builtin is the shipped profile catalog. Order matters: the format
// detector tries trial extraction in catalog order, and generic fallbacks
// are listed last per shape.
var builtin = []FormatProfile{
	{
		Name:       "chase-csv",
		Bank:       "Chase",
		Shape:      model.ShapeTabular,
		Keywords:   []string{"chase", "jpmorgan"},
		Delimiter:  ",",
		HeaderRows: 1,
		Fields: Locators{
			Date:        1,
			Description: 2,
			Amount:      3,
			Balance:     5,
			Income:      None,
			Expense:     None,
		},
		DateOrder: MonthDayYear,
		Decimal:   American,
		Currency:  "USD",
	},
	{
		Name:       "lloyds-csv",
		Bank:       "Lloyds Bank",
		Shape:      model.ShapeTabular,
		Keywords:   []string{"lloyds"},
		Delimiter:  ",",
		HeaderRows: 1,
		Fields: Locators{
			Date:        0,
			Description: 4,
			Amount:      None,
			Expense:     5,
			Income:      6,
			Balance:     7,
		},
		DateOrder: DayMonthYear,
		Decimal:   American,
		Currency:  "GBP",
	},
	{
		Name:       "sparkasse-csv",
		Bank:       "Sparkasse",
		Shape:      model.ShapeTabular,
		Keywords:   []string{"sparkasse"},
		Delimiter:  ";",
		HeaderRows: 1,
		Fields: Locators{
			Date:        1,
			Description: 4,
			Amount:      14,
			Income:      None,
			Expense:     None,
			Balance:     None,
		},
		DateOrder: DayMonthYear,
		Decimal:   European,
		Currency:  "EUR",
	},
	{
		Name:    "generic-csv",
		Bank:    "Generic delimited export",
		Shape:   model.ShapeTabular,
		Generic: true,
		Fields: Locators{
			Date:        0,
			Description: 1,
			Amount:      2,
			Income:      None,
			Expense:     None,
			Balance:     3,
		},
		DateOrder: DayMonthYear,
		Decimal:   American,
		Currency:  "EUR",
	},
	{
		Name:       "brou-xlsx",
		Bank:       "Banco República",
		Shape:      model.ShapeGrid,
		Keywords:   []string{"brou", "banco república", "banco republica"},
		HeaderRows: 8,
		Fields: Locators{
			Date:        Letter("B"),
			Description: Letter("C"),
			Amount:      None,
			Expense:     Letter("E"),
			Income:      Letter("F"),
			Balance:     Letter("G"),
		},
		DateOrder: DayMonthYear,
		Decimal:   European,
		Currency:  "UYU",
	},
	{
		Name:    "generic-xlsx",
		Bank:    "Generic spreadsheet export",
		Shape:   model.ShapeGrid,
		Generic: true,
		Fields: Locators{
			Date:        0,
			Description: 1,
			Amount:      2,
			Income:      None,
			Expense:     None,
			Balance:     3,
		},
		DateOrder: DayMonthYear,
		Decimal:   American,
		Currency:  "EUR",
	},
	{
		Name:     "metro-pdf",
		Bank:     "Metro Bank",
		Shape:    model.ShapePattern,
		Keywords: []string{"metro bank", "metrobankonline"},
		Pattern:  `(\d{1,2}/\d{1,2}/\d{2,4})\s+(.+?)\s+(-?[\d,]+\.\d{2})\s+([\d,]+\.\d{2})`,
		Fields: Locators{
			Date:        0,
			Description: 1,
			Amount:      2,
			Balance:     3,
			Income:      None,
			Expense:     None,
		},
		DateOrder: DayMonthYear,
		Decimal:   American,
		Currency:  "GBP",
	},
	{
		Name:    "generic-statement",
		Bank:    "Generic statement text",
		Shape:   model.ShapePattern,
		Generic: true,
		Pattern: `(\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})\s+(\S(?:.*?\S)?)\s+(\(?-?\d[\d.,]*\)?-?)(?:\s|$)`,
		Fields: Locators{
			Date:        0,
			Description: 1,
			Amount:      2,
			Income:      None,
			Expense:     None,
			Balance:     None,
		},
		DateOrder: DayMonthYear,
		Decimal:   American,
		Currency:  "EUR",
	},
}
