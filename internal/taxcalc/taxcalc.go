// Package taxcalc provides the default tax calculator used when attaching
// postings to tax entities. Rates are tax-inclusive percentages: the tax
// portion is carved out of the gross amount rather than added on top.
package taxcalc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Calculator derives net and tax portions from a gross amount and an
// inclusive percentage rate.
type Calculator struct{}

// New creates a Calculator.
func New() *Calculator {
	return &Calculator{}
}

// CalcTax splits the gross amount into tax and net portions. Both results
// are magnitudes; the caller applies the sign of the gross.
func (c *Calculator) CalcTax(gross, rate decimal.Decimal) (tax, net decimal.Decimal) {
	abs := gross.Abs()
	if rate.IsZero() {
		return decimal.Zero, abs
	}
	tax = abs.Mul(rate).Div(hundred.Add(rate)).Round(2)
	net = abs.Sub(tax)
	return tax, net
}
