package fieldmatch

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sofcal/posting-rules/internal/models"
)

// MatchNumber compares the absolute value of a numeric field against a
// numeric criteria. The sign of the field is ignored so a rule written for
// an amount matches both debits and credits. Unparseable criteria never
// match.
func MatchNumber(field decimal.Decimal, criteria, op string) bool {
	crit, err := decimal.NewFromString(strings.TrimSpace(criteria))
	if err != nil {
		return false
	}
	return applyOrdering(field.Abs().Cmp(crit), op)
}

// applyOrdering maps a three-way comparison result onto an ordering
// operation.
func applyOrdering(cmp int, op string) bool {
	switch op {
	case models.OpEqual:
		return cmp == 0
	case models.OpLessThan:
		return cmp < 0
	case models.OpGreaterThan:
		return cmp > 0
	case models.OpLessThanOrEqual:
		return cmp <= 0
	case models.OpGreaterThanOrEqual:
		return cmp >= 0
	default:
		return false
	}
}
