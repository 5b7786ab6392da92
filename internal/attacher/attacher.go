// Package attacher builds and attaches accounting postings for one
// (transaction, rule) pair. Attachment is all-or-nothing: the transaction
// is only mutated after every action of the rule has produced a posting.
package attacher

import (
	"github.com/shopspring/decimal"

	"github.com/sofcal/posting-rules/internal/engineerror"
	"github.com/sofcal/posting-rules/internal/logging"
	"github.com/sofcal/posting-rules/internal/models"
	"github.com/sofcal/posting-rules/internal/split"
)

// TaxCalculator computes the tax and net portions of a gross amount for a
// given rate. Implementations return magnitudes; the attacher applies the
// sign of the gross.
type TaxCalculator interface {
	CalcTax(gross, rate decimal.Decimal) (tax, net decimal.Decimal)
}

// Attacher attaches postings to transactions.
type Attacher struct {
	tax    TaxCalculator
	logger logging.Logger
}

// New creates an Attacher with the given tax calculator and logger.
func New(tax TaxCalculator, logger logging.Logger) *Attacher {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(nil)
	}
	return &Attacher{tax: tax, logger: logger}
}

// TryAttachPostings validates the rule against the transaction, resolves
// every referenced entity and appends one posting per rule action.
//
// It returns (true, nil) when postings were attached, (false, nil) when the
// rule carries an incomplete posting descriptor (a silent skip, not an
// error) and (false, err) on any applicability, entity-resolution or
// split-consistency violation. On any failure the transaction is left
// untouched.
func (a *Attacher) TryAttachPostings(tx *models.Transaction, rule *models.Rule, entities models.EntityLookup) (bool, error) {
	if rule.TargetType != models.TargetTypeTransaction {
		return false, &engineerror.InvalidTargetTypeError{RuleName: rule.RuleName, TargetType: rule.TargetType}
	}
	if rule.Status != models.StatusActive {
		return false, &engineerror.RuleInactiveError{RuleName: rule.RuleName, Status: rule.Status}
	}

	postings := make([]models.Posting, 0, len(rule.RuleActions))
	remainder := tx.TransactionAmount

	for i := range rule.RuleActions {
		action := rule.RuleActions[i]
		isLast := i == len(rule.RuleActions)-1

		// A descriptor without type or code makes the whole rule a no-op.
		for _, d := range action.AccountsPostings {
			if d.Type == "" || d.Code == "" {
				a.logger.WithField("rule", rule.RuleName).Debug("Skipping rule with incomplete posting descriptor")
				return false, nil
			}
		}

		resolved := make([]models.Entity, 0, len(action.AccountsPostings))
		for _, d := range action.AccountsPostings {
			entity, ok := entities.Find(d.Type, d.Code)
			if !ok {
				return false, &engineerror.EntityNotFoundError{Type: d.Type, Code: d.Code}
			}
			resolved = append(resolved, entity)
		}

		result, err := split.Calculate(action, remainder, isLast)
		if err != nil {
			return false, err
		}
		remainder = result.NewRemainder

		postings = append(postings, a.buildPosting(rule, action, result.Amount, resolved))
	}

	tx.AccountsPostings = append(tx.AccountsPostings, postings...)
	return true, nil
}

func (a *Attacher) buildPosting(rule *models.Rule, action models.RuleAction, gross decimal.Decimal, resolved []models.Entity) models.Posting {
	net := gross
	taxAmount := decimal.Zero

	instructions := make([]models.PostingInstruction, 0, len(resolved))
	taxed := false
	for _, entity := range resolved {
		instr := models.PostingInstruction{
			Type: entity.EntityType,
			Code: entity.EntityCode,
			Name: entity.EntityName,
		}
		if entity.EntityStatus != nil {
			status := *entity.EntityStatus
			instr.Status = &status
		}
		if entity.IsTax() {
			if entity.EntityValue != nil {
				value := *entity.EntityValue
				instr.Value = &value
			}
			// The first tax instruction supplies the rate; one gross can
			// only be tax-split once.
			if !taxed {
				taxed = true
				rate := decimal.Zero
				if entity.EntityValue != nil {
					rate = *entity.EntityValue
				}
				tax, netPart := a.tax.CalcTax(gross, rate)
				if gross.IsNegative() {
					tax = tax.Abs().Neg()
					netPart = netPart.Abs().Neg()
				} else {
					tax = tax.Abs()
					netPart = netPart.Abs()
				}
				taxAmount = tax
				net = netPart
			}
		}
		instructions = append(instructions, instr)
	}

	return models.Posting{
		CreatedBy:           models.CreatedByPrefix + rule.RuleName,
		GrossAmount:         gross,
		NetAmount:           net,
		TaxAmount:           taxAmount,
		AccountantNarrative: action.AccountantNarrative,
		PostingInstructions: instructions,
	}
}
