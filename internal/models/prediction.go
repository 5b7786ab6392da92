package models

// RuleRef records which rule produced a prediction and how it matched.
type RuleRef struct {
	RuleID   string `yaml:"ruleId" json:"ruleId"`
	RuleRank *int   `yaml:"ruleRank,omitempty" json:"ruleRank,omitempty"`
	Match    string `yaml:"match" json:"match"`
}

// PredictedActionDetail describes the accounting action a rule produced.
type PredictedActionDetail struct {
	AccountsPostings     []Posting         `yaml:"accountsPostings" json:"accountsPostings"`
	Reference            string            `yaml:"reference" json:"reference"`
	Type                 string            `yaml:"type" json:"type"`
	RuleAdditionalFields []AdditionalField `yaml:"ruleAdditionalFields" json:"ruleAdditionalFields"`
}

// PredictedAction is the audit record appended to a transaction when a rule
// matched and its postings were attached.
type PredictedAction struct {
	PredictionID string                `yaml:"predictionId" json:"predictionId"`
	Action       PredictedActionDetail `yaml:"action" json:"action"`
	Rules        []RuleRef             `yaml:"rules" json:"rules"`
	Score        int                   `yaml:"score" json:"score"`
	Source       string                `yaml:"source" json:"source"`
}
