package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

const (
	minYear = 1900
	maxYear = 2100
)

// serialEpoch is the spreadsheet serial-date epoch (1899-12-30).
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseDate converts a raw cell into a calendar date. It accepts native
// date values, delimited strings in the profile's component order, and
// spreadsheet serial numbers. Two-digit years pivot at 50: <50 is 2000s,
// >=50 is 1900s.
func ParseDate(cell model.Cell, order profile.DateOrder) (time.Time, error) {
	switch cell.Kind {
	case model.CellDate:
		return checkRange(cell.Date.Year(), int(cell.Date.Month()), cell.Date.Day())
	case model.CellNumber:
		return serialDate(cell.Number)
	}

	s := strings.TrimSpace(cell.Text)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return serialDate(serial)
	}

	parts := splitDate(s)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("unrecognized date %q", s)
		}
		nums[i] = n
	}

	var day, month, year int
	switch order {
	case profile.MonthDayYear:
		month, day, year = nums[0], nums[1], nums[2]
	case profile.YearMonthDay:
		year, month, day = nums[0], nums[1], nums[2]
	default: // day-month-year
		day, month, year = nums[0], nums[1], nums[2]
	}

	if year < 100 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}

	return checkRange(year, month, day)
}

// splitDate splits on slash, dash, or dot delimiters.
func splitDate(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
}

// serialDate converts a spreadsheet serial number to a date.
func serialDate(serial float64) (time.Time, error) {
	days := int(serial)
	if days <= 0 {
		return time.Time{}, fmt.Errorf("serial date %v out of range", serial)
	}
	t := serialEpoch.AddDate(0, 0, days)
	return checkRange(t.Year(), int(t.Month()), t.Day())
}

// checkRange validates calendar components and returns the date at
// midnight UTC. time.Date normalizes overflow (Feb 31 -> Mar 3), so the
// round trip must reproduce the inputs exactly.
func checkRange(year, month, day int) (time.Time, error) {
	if year < minYear || year > maxYear {
		return time.Time{}, fmt.Errorf("year %d outside [%d, %d]", year, minYear, maxYear)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid calendar date %04d-%02d-%02d", year, month, day)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid calendar date %04d-%02d-%02d", year, month, day)
	}
	return t, nil
}
