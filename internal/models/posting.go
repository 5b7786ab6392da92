package models

import "github.com/shopspring/decimal"

// PostingInstruction is one resolved target of a posting. Status is present
// only when the entity defines one; Value only for tax entities.
type PostingInstruction struct {
	Type   string           `yaml:"type" json:"type"`
	Code   string           `yaml:"code" json:"code"`
	Name   string           `yaml:"name" json:"name"`
	Status *string          `yaml:"status,omitempty" json:"status,omitempty"`
	Value  *decimal.Decimal `yaml:"value,omitempty" json:"value,omitempty"`
}

// Posting is one accounting entry attached to a transaction by the engine.
// Postings are never mutated after creation.
type Posting struct {
	CreatedBy           string               `yaml:"createdBy" json:"createdBy"`
	GrossAmount         decimal.Decimal      `yaml:"grossAmount" json:"grossAmount"`
	NetAmount           decimal.Decimal      `yaml:"netAmount" json:"netAmount"`
	TaxAmount           decimal.Decimal      `yaml:"taxAmount" json:"taxAmount"`
	AccountantNarrative string               `yaml:"accountantNarrative" json:"accountantNarrative"`
	PostingInstructions []PostingInstruction `yaml:"postingInstructions" json:"postingInstructions"`
}
