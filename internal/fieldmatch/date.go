package fieldmatch

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateMode selects which aspect of a date field a condition compares.
type DateMode int

const (
	// DateAbsolute compares the calendar date (date portion only) against
	// an ISO YYYY-MM-DD criteria.
	DateAbsolute DateMode = iota
	// DateDayOfMonth compares the day of month (1-31) against a numeric
	// criteria.
	DateDayOfMonth
	// DateDayOfWeek compares the 1-based weekday (1=Sunday .. 7=Saturday)
	// against a numeric criteria.
	DateDayOfWeek
)

const isoDateLayout = "2006-01-02"

// MatchDate compares a date field against a criteria under the given mode.
// No range validation is applied to numeric criteria; out-of-range values
// compare arithmetically.
func MatchDate(field time.Time, criteria, op string, mode DateMode) bool {
	switch mode {
	case DateDayOfMonth:
		return matchDateComponent(field.Day(), criteria, op)
	case DateDayOfWeek:
		// Shift the native 0-based weekday to align with the 1-based
		// day-of-month scale.
		return matchDateComponent(int(field.Weekday())+1, criteria, op)
	default:
		crit, err := time.Parse(isoDateLayout, strings.TrimSpace(criteria))
		if err != nil {
			return false
		}
		return applyOrdering(compareDates(field, crit), op)
	}
}

func matchDateComponent(component int, criteria, op string) bool {
	crit, err := decimal.NewFromString(strings.TrimSpace(criteria))
	if err != nil {
		return false
	}
	return applyOrdering(decimal.NewFromInt(int64(component)).Cmp(crit), op)
}

// compareDates orders two dates chronologically on their date portion.
func compareDates(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
