// Package engine orchestrates rule evaluation over a batch of transactions.
// Transactions are processed strictly sequentially and rules strictly in
// rank order; the engine mutates the caller-owned slices in place and
// callers must not invoke it concurrently over overlapping inputs.
package engine

import (
	"unicode"

	"github.com/google/uuid"

	"github.com/sofcal/posting-rules/internal/attacher"
	"github.com/sofcal/posting-rules/internal/logging"
	"github.com/sofcal/posting-rules/internal/matcher"
	"github.com/sofcal/posting-rules/internal/models"
)

// Engine applies ranked rules to transactions and records audit data.
type Engine struct {
	attacher *attacher.Attacher
	logger   logging.Logger
	newID    func() string
}

// New creates an Engine using the given tax calculator and logger.
func New(tax attacher.TaxCalculator, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(nil)
	}
	return &Engine{
		attacher: attacher.New(tax, logger),
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// ProcessRules evaluates every rule against every transaction and attaches
// postings for the first rule that matches and commits. The transactions
// slice is returned as-is with its elements mutated.
//
// Processing is skipped entirely when there are no transactions, no rules,
// or the entity table is known to be empty. An unknown entity table (the
// caller could not supply one) is logged with count -1 and does not block.
func (e *Engine) ProcessRules(transactions []*models.Transaction, rules []models.Rule, entities models.EntityList, clientMode bool) []*models.Transaction {
	counts := []logging.Field{
		logging.F("entityCount", entities.Count()),
		logging.F("ruleCount", len(rules)),
		logging.F("transactionCount", len(transactions)),
	}

	if len(transactions) == 0 || len(rules) == 0 || (entities.Known() && entities.Count() == 0) {
		msg := "Rules processing skipped"
		if clientMode {
			msg = "Client rules processing skipped"
		}
		e.logger.Info(msg, counts...)
		return transactions
	}

	e.logger.Info("Rules processing started", counts...)

	models.SortRulesByRank(rules)
	lookup := entities.Lookup()

	for _, tx := range transactions {
		e.processTransaction(tx, rules, lookup, clientMode)
	}

	e.logger.Info("Rules processing complete", counts...)
	return transactions
}

// processTransaction scans the sorted rules and stops at the first
// successful attachment. A failing rule never aborts the transaction.
func (e *Engine) processTransaction(tx *models.Transaction, rules []models.Rule, lookup models.EntityLookup, clientMode bool) {
	for i := range rules {
		rule := &rules[i]
		if !matcher.Matches(tx, rule) {
			continue
		}

		attached, err := e.attacher.TryAttachPostings(tx, rule, lookup)
		if err != nil {
			e.logger.WithError(err).WithFields(
				logging.F("rule", rule.RuleName),
				logging.F("transaction", tx.TransactionID),
			).Warn("Rule application failed")
			continue
		}
		if !attached {
			continue
		}

		tx.PredictedActions = append(tx.PredictedActions, e.buildPrediction(tx, rule, clientMode))
		return
	}
}

func (e *Engine) buildPrediction(tx *models.Transaction, rule *models.Rule, clientMode bool) models.PredictedAction {
	additional := rule.RuleAdditionalFields
	if additional == nil {
		additional = []models.AdditionalField{}
	}

	// The attacher appended exactly one posting per rule action, so the
	// rule's postings are the tail of the transaction's list.
	n := len(rule.RuleActions)
	postings := make([]models.Posting, n)
	copy(postings, tx.AccountsPostings[len(tx.AccountsPostings)-n:])

	return models.PredictedAction{
		PredictionID: e.newID(),
		Action: models.PredictedActionDetail{
			AccountsPostings:     postings,
			Reference:            rule.RuleName,
			Type:                 models.ActionTypeAccountsPostings,
			RuleAdditionalFields: additional,
		},
		Rules: []models.RuleRef{{
			RuleID:   rule.RuleID,
			RuleRank: rule.RuleRank,
			Match:    models.MatchFull,
		}},
		Score:  100,
		Source: SourceLabel(rule.RuleType, clientMode),
	}
}

// SourceLabel derives the audit source from a rule type. In client mode
// feedback rules are labelled User, since client-side feedback rules
// originate from user corrections.
func SourceLabel(ruleType string, clientMode bool) string {
	if clientMode && ruleType == models.RuleTypeFeedback {
		return "User"
	}
	return capitalize(ruleType)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
