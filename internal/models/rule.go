package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RuleCondition is one field test of a rule. All conditions of a rule must
// match for the rule to apply.
//
// RuleField names a transaction field (e.g. "transactionNarrative",
// "transactionAmount", "checkNum"). Date fields accept a mode suffix:
// "datePosted" compares the calendar date, "datePosted.day" the day of
// month and "datePosted.weekday" the 1-based weekday (1=Sunday).
type RuleCondition struct {
	RuleField     string `yaml:"ruleField" json:"ruleField"`
	RuleOperation string `yaml:"ruleOperation" json:"ruleOperation"`
	RuleCriteria  string `yaml:"ruleCriteria" json:"ruleCriteria"`
}

// PostingDescriptor references a target entity by type and code.
type PostingDescriptor struct {
	Type string `yaml:"type" json:"type"`
	Code string `yaml:"code" json:"code"`
}

// RuleAction describes one split of the transaction amount. SplitPercentage
// and SplitAmount are mutually exclusive; with neither set the action
// consumes the full remainder.
type RuleAction struct {
	SplitPercentage     *decimal.Decimal    `yaml:"splitPercentage,omitempty" json:"splitPercentage,omitempty"`
	SplitAmount         *decimal.Decimal    `yaml:"splitAmount,omitempty" json:"splitAmount,omitempty"`
	AccountantNarrative string              `yaml:"accountantNarrative" json:"accountantNarrative"`
	AccountsPostings    []PostingDescriptor `yaml:"accountsPostings" json:"accountsPostings"`
}

// AdditionalField is an opaque name/value pair carried from the rule into
// the audit record.
type AdditionalField struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// Rule is a stored matching-and-action definition. Rules are created and
// validated upstream; the engine treats them as read-only.
type Rule struct {
	RuleID               string            `yaml:"ruleId" json:"ruleId"`
	RuleName             string            `yaml:"ruleName" json:"ruleName"`
	RuleRank             *int              `yaml:"ruleRank,omitempty" json:"ruleRank,omitempty"`
	TargetType           string            `yaml:"targetType" json:"targetType"`
	RuleType             string            `yaml:"ruleType" json:"ruleType"`
	Status               string            `yaml:"status" json:"status"`
	RuleConditions       []RuleCondition   `yaml:"ruleConditions" json:"ruleConditions"`
	RuleActions          []RuleAction      `yaml:"ruleActions" json:"ruleActions"`
	RuleAdditionalFields []AdditionalField `yaml:"ruleAdditionalFields,omitempty" json:"ruleAdditionalFields,omitempty"`
}

// SortRulesByRank stable-sorts rules ascending by rank. Rank is the sole
// sort key; rules without a rank sort after all ranked rules.
func SortRulesByRank(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		ri, rj := rules[i].RuleRank, rules[j].RuleRank
		switch {
		case ri == nil:
			return false
		case rj == nil:
			return true
		default:
			return *ri < *rj
		}
	})
}

// FeatureFlags captures which rule sources are enabled for a bank account.
type FeatureFlags struct {
	UserRules       bool
	AccountantRules bool
	FeedbackRules   bool
	GlobalRules     bool
}

// DefaultFeatureFlags enables every rule source.
func DefaultFeatureFlags() FeatureFlags {
	return FeatureFlags{UserRules: true, AccountantRules: true, FeedbackRules: true, GlobalRules: true}
}

// RuleTypesToProcess returns the rule types the engine should evaluate
// given a bank account's feature flags.
func RuleTypesToProcess(flags FeatureFlags) []string {
	var types []string
	if flags.UserRules {
		types = append(types, RuleTypeUser)
	}
	if flags.AccountantRules {
		types = append(types, RuleTypeAccountant)
	}
	if flags.FeedbackRules {
		types = append(types, RuleTypeFeedback)
	}
	if flags.GlobalRules {
		types = append(types, RuleTypeGlobal)
	}
	return types
}

// FilterRulesByType returns the subset of rules whose type is in types,
// preserving order.
func FilterRulesByType(rules []Rule, types []string) []Rule {
	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}
	var out []Rule
	for _, r := range rules {
		if allowed[r.RuleType] {
			out = append(out, r)
		}
	}
	return out
}
