// Package split computes the monetary allocation of one rule action against
// the running remainder of a transaction amount. All arithmetic is decimal;
// amounts round to two places, half away from zero.
package split

import (
	"github.com/shopspring/decimal"

	"github.com/sofcal/posting-rules/internal/engineerror"
	"github.com/sofcal/posting-rules/internal/models"
)

var (
	hundred  = decimal.NewFromInt(100)
	minSplit = decimal.New(1, -2) // 0.01
)

// Result is the outcome of one split step.
type Result struct {
	// Amount is the gross amount allocated to the action. Its sign follows
	// the remainder.
	Amount decimal.Decimal
	// NewRemainder is the remainder left for subsequent actions.
	NewRemainder decimal.Decimal
}

// Calculate allocates one action's share of the remainder.
//
// An action with SplitAmount set allocates that absolute amount; otherwise
// SplitPercentage allocates a share of the remainder; with neither set the
// action consumes the full remainder. isLast marks the final action of the
// rule, which must exhaust the remainder exactly.
func Calculate(action models.RuleAction, remainder decimal.Decimal, isLast bool) (Result, error) {
	if remainder.Abs().LessThan(minSplit) {
		return Result{}, &engineerror.InvalidRemainderError{Remainder: remainder}
	}

	var amount decimal.Decimal
	switch {
	case action.SplitAmount != nil:
		var err error
		amount, err = absoluteAmount(*action.SplitAmount, remainder, isLast)
		if err != nil {
			return Result{}, err
		}
	case action.SplitPercentage != nil:
		var err error
		amount, err = percentageAmount(*action.SplitPercentage, remainder, isLast)
		if err != nil {
			return Result{}, err
		}
	default:
		// No split field set: consume the full remainder.
		amount = remainder
	}

	return Result{
		Amount:       amount,
		NewRemainder: remainder.Sub(amount),
	}, nil
}

func percentageAmount(percentage, remainder decimal.Decimal, isLast bool) (decimal.Decimal, error) {
	if isLast && !percentage.Equal(hundred) {
		return decimal.Decimal{}, &engineerror.InvalidSplitPercentageError{Percentage: percentage}
	}
	// Round half away from zero to two places; the sign follows the
	// remainder because the multiplication preserves it.
	return remainder.Mul(percentage).Div(hundred).Round(2), nil
}

func absoluteAmount(splitAmount, remainder decimal.Decimal, isLast bool) (decimal.Decimal, error) {
	amount := splitAmount.Abs()
	if remainder.IsNegative() {
		amount = amount.Neg()
	}

	if amount.Abs().GreaterThan(remainder.Abs()) {
		return decimal.Decimal{}, &engineerror.InvalidAbsoluteAmountError{Amount: remainder}
	}
	if isLast && !amount.Equal(remainder) {
		return decimal.Decimal{}, &engineerror.InvalidAbsoluteAmountError{Amount: remainder.Sub(amount).Abs()}
	}
	return amount, nil
}
