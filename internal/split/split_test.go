package split

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofcal/posting-rules/internal/engineerror"
	"github.com/sofcal/posting-rules/internal/models"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func decP(t *testing.T, s string) *decimal.Decimal {
	d := dec(t, s)
	return &d
}

func TestCalculate_Percentage(t *testing.T) {
	tests := []struct {
		name          string
		percentage    string
		remainder     string
		isLast        bool
		wantAmount    string
		wantRemainder string
	}{
		{
			name:          "TenPercentOfHundred",
			percentage:    "10",
			remainder:     "100",
			wantAmount:    "10",
			wantRemainder: "90",
		},
		{
			name:          "RoundsHalfUp",
			percentage:    "17.5",
			remainder:     "2.83",
			wantAmount:    "0.5", // 0.49525 rounds up
			wantRemainder: "2.33",
		},
		{
			name:          "RoundsDown",
			percentage:    "17",
			remainder:     "2.83",
			wantAmount:    "0.48", // 0.4811 rounds down
			wantRemainder: "2.35",
		},
		{
			name:          "SignFollowsNegativeRemainder",
			percentage:    "25",
			remainder:     "-100",
			wantAmount:    "-25",
			wantRemainder: "-75",
		},
		{
			name:          "FullRemainderOnLast",
			percentage:    "100",
			remainder:     "90",
			isLast:        true,
			wantAmount:    "90",
			wantRemainder: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := models.RuleAction{SplitPercentage: decP(t, tt.percentage)}
			result, err := Calculate(action, dec(t, tt.remainder), tt.isLast)

			require.NoError(t, err)
			assert.True(t, dec(t, tt.wantAmount).Equal(result.Amount),
				"amount: want %s, got %s", tt.wantAmount, result.Amount)
			assert.True(t, dec(t, tt.wantRemainder).Equal(result.NewRemainder),
				"remainder: want %s, got %s", tt.wantRemainder, result.NewRemainder)
		})
	}
}

func TestCalculate_PercentageMustExhaustOnLast(t *testing.T) {
	action := models.RuleAction{SplitPercentage: decP(t, "50")}
	_, err := Calculate(action, dec(t, "100"), true)

	var splitErr *engineerror.InvalidSplitPercentageError
	require.ErrorAs(t, err, &splitErr)
	assert.True(t, dec(t, "50").Equal(splitErr.Percentage))
}

func TestCalculate_Absolute(t *testing.T) {
	t.Run("sign follows remainder", func(t *testing.T) {
		action := models.RuleAction{SplitAmount: decP(t, "30")}
		result, err := Calculate(action, dec(t, "-100"), false)

		require.NoError(t, err)
		assert.True(t, dec(t, "-30").Equal(result.Amount))
		assert.True(t, dec(t, "-70").Equal(result.NewRemainder))
	})

	t.Run("negative split amount is treated as magnitude", func(t *testing.T) {
		action := models.RuleAction{SplitAmount: decP(t, "-30")}
		result, err := Calculate(action, dec(t, "100"), false)

		require.NoError(t, err)
		assert.True(t, dec(t, "30").Equal(result.Amount))
	})

	t.Run("exceeding the remainder fails", func(t *testing.T) {
		action := models.RuleAction{SplitAmount: decP(t, "150")}
		_, err := Calculate(action, dec(t, "100"), false)

		var absErr *engineerror.InvalidAbsoluteAmountError
		require.ErrorAs(t, err, &absErr)
		assert.True(t, dec(t, "100").Equal(absErr.Amount))
	})

	t.Run("last action must exhaust the remainder", func(t *testing.T) {
		action := models.RuleAction{SplitAmount: decP(t, "70")}
		_, err := Calculate(action, dec(t, "100"), true)

		var absErr *engineerror.InvalidAbsoluteAmountError
		require.ErrorAs(t, err, &absErr)
		// The error reports the leftover magnitude.
		assert.True(t, dec(t, "30").Equal(absErr.Amount))
	})
}

func TestCalculate_DefaultConsumesFullRemainder(t *testing.T) {
	result, err := Calculate(models.RuleAction{}, dec(t, "42.42"), true)

	require.NoError(t, err)
	assert.True(t, dec(t, "42.42").Equal(result.Amount))
	assert.True(t, result.NewRemainder.IsZero())
}

func TestCalculate_RejectsSubCentRemainder(t *testing.T) {
	tests := []struct {
		name      string
		remainder string
	}{
		{name: "Zero", remainder: "0"},
		{name: "BelowOneCent", remainder: "0.009"},
		{name: "NegativeBelowOneCent", remainder: "-0.005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := models.RuleAction{SplitPercentage: decP(t, "50")}
			_, err := Calculate(action, dec(t, tt.remainder), false)

			var remErr *engineerror.InvalidRemainderError
			require.ErrorAs(t, err, &remErr)
		})
	}
}

// Running the 99%/50%/100% action list against 0.01 exhausts the remainder
// on the first action; the second must fail with the zero remainder in the
// message.
func TestCalculate_PennySplitSequence(t *testing.T) {
	first := models.RuleAction{SplitPercentage: decP(t, "99")}
	result, err := Calculate(first, dec(t, "0.01"), false)
	require.NoError(t, err)
	assert.True(t, dec(t, "0.01").Equal(result.Amount))
	assert.True(t, result.NewRemainder.IsZero())

	second := models.RuleAction{SplitPercentage: decP(t, "50")}
	_, err = Calculate(second, result.NewRemainder, false)
	require.Error(t, err)
	assert.EqualError(t, err, "invalid remainder on split: 0")
}

func TestCalculate_NewRemainderIsExact(t *testing.T) {
	action := models.RuleAction{SplitPercentage: decP(t, "33.33")}
	remainder := dec(t, "55.55")

	result, err := Calculate(action, remainder, false)

	require.NoError(t, err)
	assert.True(t, remainder.Sub(result.Amount).Equal(result.NewRemainder))
}
