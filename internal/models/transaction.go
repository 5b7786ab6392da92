// Package models provides the data structures shared by the rule engine.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a bank transaction handed to the engine per batch call.
// The engine enriches it in place: AccountsPostings and PredictedActions
// are append-only and everything else is read-only to the engine.
type Transaction struct {
	TransactionID        string            `csv:"TransactionId" yaml:"transactionId" json:"transactionId"`
	TransactionNarrative string            `csv:"Narrative" yaml:"transactionNarrative" json:"transactionNarrative"`
	TransactionAmount    decimal.Decimal   `csv:"Amount" yaml:"transactionAmount" json:"transactionAmount"`
	Currency             string            `csv:"Currency" yaml:"currency" json:"currency"`
	CheckNum             string            `csv:"CheckNum" yaml:"checkNum" json:"checkNum"`
	DatePosted           time.Time         `csv:"DatePosted" yaml:"datePosted" json:"datePosted"`
	TransactionType      string            `csv:"TransactionType" yaml:"transactionType" json:"transactionType"`
	Extra                map[string]any    `csv:"-" yaml:"extra,omitempty" json:"extra,omitempty"`
	AccountsPostings     []Posting         `csv:"-" yaml:"accountsPostings" json:"accountsPostings"`
	PredictedActions     []PredictedAction `csv:"-" yaml:"predictedActions" json:"predictedActions"`
}

// Field resolves a matchable field by its condition name. Unknown names
// fall through to the Extra map. The second return is false when the field
// does not exist at all.
func (t *Transaction) Field(name string) (any, bool) {
	switch name {
	case "transactionId":
		return t.TransactionID, true
	case "transactionNarrative":
		return t.TransactionNarrative, true
	case "transactionAmount":
		return t.TransactionAmount, true
	case "currency":
		return t.Currency, true
	case "checkNum":
		return t.CheckNum, true
	case "datePosted":
		return t.DatePosted, true
	case "transactionType":
		return t.TransactionType, true
	default:
		v, ok := t.Extra[name]
		return v, ok
	}
}

// ParseAmount converts a string amount to a decimal, tolerating common
// currency symbols and separators found in bank exports.
func ParseAmount(amountStr string) decimal.Decimal {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, ",", ".")
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "'", "")
	for _, sym := range []string{"GBP", "EUR", "USD", "£", "$", "€"} {
		amount = strings.ReplaceAll(amount, sym, "")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}
