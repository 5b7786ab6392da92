// Package engineerror defines the typed errors raised by the rule engine.
// Split-consistency and applicability errors are contained per rule by the
// orchestrator; none of them is fatal to a batch.
package engineerror

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvalidRemainderError indicates the running remainder fell below one cent
// before all rule actions were processed.
type InvalidRemainderError struct {
	Remainder decimal.Decimal
}

func (e *InvalidRemainderError) Error() string {
	return fmt.Sprintf("invalid remainder on split: %s", e.Remainder)
}

// InvalidSplitPercentageError indicates a trailing action did not consume the
// full remainder (its percentage was not 100).
type InvalidSplitPercentageError struct {
	Percentage decimal.Decimal
}

func (e *InvalidSplitPercentageError) Error() string {
	return fmt.Sprintf("invalid split percentage on last action: %s", e.Percentage)
}

// InvalidAbsoluteAmountError indicates an absolute split exceeded the
// remainder, or a trailing absolute split left part of it unallocated.
type InvalidAbsoluteAmountError struct {
	Amount decimal.Decimal
}

func (e *InvalidAbsoluteAmountError) Error() string {
	return fmt.Sprintf("invalid absolute amount on split: %s", e.Amount)
}

// InvalidTargetTypeError indicates a rule does not target transactions.
type InvalidTargetTypeError struct {
	RuleName   string
	TargetType string
}

func (e *InvalidTargetTypeError) Error() string {
	return fmt.Sprintf("rule %s has invalid target type: %s", e.RuleName, e.TargetType)
}

// RuleInactiveError indicates a rule is not in active status.
type RuleInactiveError struct {
	RuleName string
	Status   string
}

func (e *RuleInactiveError) Error() string {
	return fmt.Sprintf("rule %s is not active: %s", e.RuleName, e.Status)
}

// EntityNotFoundError indicates a posting descriptor referenced an entity
// that does not exist in the lookup table.
type EntityNotFoundError struct {
	Type string
	Code string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("unknown posting entity %s/%s", e.Type, e.Code)
}
