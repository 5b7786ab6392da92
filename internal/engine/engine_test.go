package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofcal/posting-rules/internal/logging"
	"github.com/sofcal/posting-rules/internal/models"
	"github.com/sofcal/posting-rules/internal/taxcalc"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func intP(v int) *int {
	return &v
}

func newTestEngine(log *logging.MockLogger) *Engine {
	e := New(taxcalc.New(), log)
	seq := 0
	e.newID = func() string {
		seq++
		return fmt.Sprintf("prediction-%d", seq)
	}
	return e
}

func rentTransaction(t *testing.T) *models.Transaction {
	return &models.Transaction{
		TransactionID:        "tx-rent",
		TransactionNarrative: "MONTHLY RENT STANDING ORDER",
		TransactionAmount:    dec(t, "-650"),
		DatePosted:           time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func rentRule(rank *int) models.Rule {
	return models.Rule{
		RuleID:     "rule-rent",
		RuleName:   "rent payments",
		RuleRank:   rank,
		TargetType: models.TargetTypeTransaction,
		RuleType:   models.RuleTypeUser,
		Status:     models.StatusActive,
		RuleConditions: []models.RuleCondition{
			{RuleField: "transactionNarrative", RuleOperation: models.OpContainsWords, RuleCriteria: "RENT"},
		},
		RuleActions: []models.RuleAction{
			{
				AccountantNarrative: "rent",
				AccountsPostings:    []models.PostingDescriptor{{Type: models.EntityTypeNominal, Code: "7100"}},
			},
		},
	}
}

func testEntities() models.EntityList {
	return models.Entities([]models.Entity{
		{EntityType: models.EntityTypeNominal, EntityCode: "7100", EntityName: "Rent"},
		{EntityType: models.EntityTypeNominal, EntityCode: "7500", EntityName: "Office costs"},
	})
}

func TestProcessRules_AttachesAndRecordsPrediction(t *testing.T) {
	log := logging.NewMockLogger()
	e := newTestEngine(log)
	tx := rentTransaction(t)

	out := e.ProcessRules([]*models.Transaction{tx}, []models.Rule{rentRule(intP(1))}, testEntities(), false)

	require.Len(t, out, 1)
	require.Len(t, tx.AccountsPostings, 1)
	assert.Equal(t, "auto: rent payments", tx.AccountsPostings[0].CreatedBy)
	assert.True(t, dec(t, "-650").Equal(tx.AccountsPostings[0].GrossAmount))

	require.Len(t, tx.PredictedActions, 1)
	pa := tx.PredictedActions[0]
	assert.Equal(t, "prediction-1", pa.PredictionID)
	assert.Equal(t, 100, pa.Score)
	assert.Equal(t, "User", pa.Source)
	assert.Equal(t, "rent payments", pa.Action.Reference)
	assert.Equal(t, models.ActionTypeAccountsPostings, pa.Action.Type)
	assert.NotNil(t, pa.Action.RuleAdditionalFields)
	require.Len(t, pa.Action.AccountsPostings, 1)
	assert.Equal(t, tx.AccountsPostings[0], pa.Action.AccountsPostings[0])
	require.Len(t, pa.Rules, 1)
	assert.Equal(t, "rule-rent", pa.Rules[0].RuleID)
	assert.Equal(t, models.MatchFull, pa.Rules[0].Match)
	require.NotNil(t, pa.Rules[0].RuleRank)
	assert.Equal(t, 1, *pa.Rules[0].RuleRank)

	assert.Len(t, log.EntriesWithMessage("Rules processing started"), 1)
	assert.Len(t, log.EntriesWithMessage("Rules processing complete"), 1)
}

func TestProcessRules_FirstMatchingRuleWins(t *testing.T) {
	e := newTestEngine(logging.NewMockLogger())
	tx := rentTransaction(t)

	second := rentRule(intP(2))
	second.RuleID = "rule-late"
	second.RuleName = "late rule"

	first := rentRule(intP(1))

	// Supplied out of rank order on purpose.
	e.ProcessRules([]*models.Transaction{tx}, []models.Rule{second, first}, testEntities(), false)

	require.Len(t, tx.PredictedActions, 1)
	assert.Equal(t, "rule-rent", tx.PredictedActions[0].Rules[0].RuleID)
	assert.Len(t, tx.AccountsPostings, 1)
}

func TestProcessRules_UnrankedRuleSortsLast(t *testing.T) {
	e := newTestEngine(logging.NewMockLogger())
	tx := rentTransaction(t)

	unranked := rentRule(nil)
	unranked.RuleID = "rule-unranked"
	ranked := rentRule(intP(5))

	e.ProcessRules([]*models.Transaction{tx}, []models.Rule{unranked, ranked}, testEntities(), false)

	require.Len(t, tx.PredictedActions, 1)
	assert.Equal(t, "rule-rent", tx.PredictedActions[0].Rules[0].RuleID)
}

func TestProcessRules_FailingRuleDoesNotAbortTransaction(t *testing.T) {
	log := logging.NewMockLogger()
	e := newTestEngine(log)
	tx := rentTransaction(t)

	broken := rentRule(intP(1))
	broken.RuleID = "rule-broken"
	broken.RuleActions[0].AccountsPostings[0].Code = "9999" // not in the entity table

	good := rentRule(intP(2))

	e.ProcessRules([]*models.Transaction{tx}, []models.Rule{broken, good}, testEntities(), false)

	require.Len(t, tx.PredictedActions, 1)
	assert.Equal(t, "rule-rent", tx.PredictedActions[0].Rules[0].RuleID)
	assert.Len(t, tx.AccountsPostings, 1)

	failures := log.EntriesWithMessage("Rule application failed")
	require.Len(t, failures, 1)
	assert.Error(t, failures[0].Err)
	assert.Equal(t, "rent payments", failures[0].Fields["rule"])
}

func TestProcessRules_NonMatchingRuleLeavesTransactionUntouched(t *testing.T) {
	e := newTestEngine(logging.NewMockLogger())
	tx := rentTransaction(t)

	rule := rentRule(intP(1))
	rule.RuleConditions[0].RuleCriteria = "PAYROLL"

	e.ProcessRules([]*models.Transaction{tx}, []models.Rule{rule}, testEntities(), false)

	assert.Empty(t, tx.AccountsPostings)
	assert.Empty(t, tx.PredictedActions)
}

func TestProcessRules_ShortCircuits(t *testing.T) {
	tx := func() []*models.Transaction { return []*models.Transaction{rentTransaction(t)} }
	rules := func() []models.Rule { return []models.Rule{rentRule(intP(1))} }

	tests := []struct {
		name            string
		transactions    []*models.Transaction
		rules           []models.Rule
		entities        models.EntityList
		wantEntityCount int
	}{
		{
			name:            "NoTransactions",
			transactions:    nil,
			rules:           rules(),
			entities:        testEntities(),
			wantEntityCount: 2,
		},
		{
			name:            "NoRules",
			transactions:    tx(),
			rules:           nil,
			entities:        testEntities(),
			wantEntityCount: 2,
		},
		{
			name:            "KnownEmptyEntityTable",
			transactions:    tx(),
			rules:           rules(),
			entities:        models.Entities(nil),
			wantEntityCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := logging.NewMockLogger()
			e := newTestEngine(log)

			out := e.ProcessRules(tt.transactions, tt.rules, tt.entities, false)

			for _, txn := range out {
				assert.Empty(t, txn.AccountsPostings)
				assert.Empty(t, txn.PredictedActions)
			}

			skipped := log.EntriesWithMessage("Rules processing skipped")
			require.Len(t, skipped, 1)
			assert.Equal(t, tt.wantEntityCount, skipped[0].Fields["entityCount"])
			assert.Empty(t, log.EntriesWithMessage("Rules processing started"))
		})
	}
}

// An unknown entity table is reported with count -1 but does not block
// processing; no-rule short circuits still fire first.
func TestProcessRules_UnknownEntityTable(t *testing.T) {
	log := logging.NewMockLogger()
	e := newTestEngine(log)

	e.ProcessRules([]*models.Transaction{rentTransaction(t)}, nil, models.UnknownEntities(), false)

	skipped := log.EntriesWithMessage("Rules processing skipped")
	require.Len(t, skipped, 1)
	assert.Equal(t, -1, skipped[0].Fields["entityCount"])
}

func TestProcessRules_ClientModeSkipMessage(t *testing.T) {
	log := logging.NewMockLogger()
	e := newTestEngine(log)

	e.ProcessRules(nil, nil, models.UnknownEntities(), true)

	assert.Len(t, log.EntriesWithMessage("Client rules processing skipped"), 1)
	assert.Empty(t, log.EntriesWithMessage("Rules processing skipped"))
}

func TestSourceLabel(t *testing.T) {
	tests := []struct {
		name       string
		ruleType   string
		clientMode bool
		want       string
	}{
		{name: "User", ruleType: models.RuleTypeUser, want: "User"},
		{name: "Accountant", ruleType: models.RuleTypeAccountant, want: "Accountant"},
		{name: "Global", ruleType: models.RuleTypeGlobal, want: "Global"},
		{name: "Feedback", ruleType: models.RuleTypeFeedback, want: "Feedback"},
		{name: "FeedbackInClientMode", ruleType: models.RuleTypeFeedback, clientMode: true, want: "User"},
		{name: "UserInClientMode", ruleType: models.RuleTypeUser, clientMode: true, want: "User"},
		{name: "Empty", ruleType: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SourceLabel(tt.ruleType, tt.clientMode))
		})
	}
}
