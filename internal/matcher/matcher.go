// Package matcher evaluates the conditions of one rule against one
// transaction. Conditions combine with AND semantics and are evaluated in
// declared order, short-circuiting on the first failure.
package matcher

import (
	"strings"
	"time"

	"github.com/sofcal/posting-rules/internal/fieldmatch"
	"github.com/sofcal/posting-rules/internal/models"
)

// Matches reports whether every condition of the rule holds for the
// transaction. A condition whose field is missing or classifies as
// unsupported fails.
func Matches(tx *models.Transaction, rule *models.Rule) bool {
	for i := range rule.RuleConditions {
		if !matchCondition(tx, rule.RuleConditions[i]) {
			return false
		}
	}
	return true
}

func matchCondition(tx *models.Transaction, cond models.RuleCondition) bool {
	fieldName, dateMode := splitDateMode(cond.RuleField)

	value, ok := tx.Field(fieldName)
	if !ok {
		return false
	}

	switch fieldmatch.Classify(value) {
	case fieldmatch.KindNumber:
		num, ok := fieldmatch.NumberValue(value)
		if !ok {
			return false
		}
		return fieldmatch.MatchNumber(num, cond.RuleCriteria, cond.RuleOperation)
	case fieldmatch.KindDate:
		return fieldmatch.MatchDate(value.(time.Time), cond.RuleCriteria, cond.RuleOperation, dateMode)
	case fieldmatch.KindText:
		return fieldmatch.MatchText(value.(string), cond.RuleCriteria, cond.RuleOperation)
	default:
		return false
	}
}

// splitDateMode strips the date-mode suffix from a condition field path.
// "datePosted.day" addresses the day of month, "datePosted.weekday" the
// 1-based weekday; a bare date field compares the calendar date.
func splitDateMode(field string) (string, fieldmatch.DateMode) {
	switch {
	case strings.HasSuffix(field, ".day"):
		return strings.TrimSuffix(field, ".day"), fieldmatch.DateDayOfMonth
	case strings.HasSuffix(field, ".weekday"):
		return strings.TrimSuffix(field, ".weekday"), fieldmatch.DateDayOfWeek
	default:
		return field, fieldmatch.DateAbsolute
	}
}
