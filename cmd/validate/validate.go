// Package validate implements the validate command, a static lint over a
// rule file before it is handed to the engine.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sofcal/posting-rules/cmd/root"
	"github.com/sofcal/posting-rules/internal/logging"
	"github.com/sofcal/posting-rules/internal/models"
	"github.com/sofcal/posting-rules/internal/store"
)

var rulesFile string

// Cmd is the validate command
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a rules file",
	Long: `Validate checks every rule in a rules file for problems the engine would
silently skip or reject at run time: wrong target types, unknown statuses
and operations, conflicting split fields and incomplete posting
descriptors.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "Rules file (YAML, default from config)")
}

var knownOperations = map[string]bool{
	models.OpEqual:              true,
	models.OpLessThan:           true,
	models.OpGreaterThan:        true,
	models.OpLessThanOrEqual:    true,
	models.OpGreaterThanOrEqual: true,
	models.OpContains:           true,
	models.OpContainsWords:      true,
	models.OpDoesNotContain:     true,
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	path := rulesFile
	if path == "" && root.Cfg != nil {
		path = root.Cfg.Data.RulesFile
	}
	if path == "" {
		return fmt.Errorf("rules file is required (use --rules)")
	}

	st := store.New(path, "", logger)
	rules, err := st.LoadRules()
	if err != nil {
		return err
	}

	issues := 0
	for i := range rules {
		for _, issue := range CheckRule(&rules[i]) {
			issues++
			logger.WithFields(
				logging.F("rule", rules[i].RuleName),
				logging.F("issue", issue),
			).Warn("Rule validation issue")
		}
	}

	if issues > 0 {
		return fmt.Errorf("%d validation issue(s) in %d rule(s)", issues, len(rules))
	}
	logger.WithField("count", len(rules)).Info("All rules valid")
	return nil
}

// CheckRule returns the list of problems found in one rule.
func CheckRule(rule *models.Rule) []string {
	var issues []string

	if rule.TargetType != models.TargetTypeTransaction {
		issues = append(issues, fmt.Sprintf("target type must be %q, got %q", models.TargetTypeTransaction, rule.TargetType))
	}
	if rule.Status != models.StatusActive && rule.Status != models.StatusInactive {
		issues = append(issues, fmt.Sprintf("unknown status %q", rule.Status))
	}

	for i, cond := range rule.RuleConditions {
		if cond.RuleField == "" {
			issues = append(issues, fmt.Sprintf("condition %d has no field", i))
		}
		if !knownOperations[cond.RuleOperation] {
			issues = append(issues, fmt.Sprintf("condition %d has unknown operation %q", i, cond.RuleOperation))
		}
	}

	if len(rule.RuleActions) == 0 {
		issues = append(issues, "rule has no actions")
	}
	for i, action := range rule.RuleActions {
		if action.SplitPercentage != nil && action.SplitAmount != nil {
			issues = append(issues, fmt.Sprintf("action %d sets both splitPercentage and splitAmount", i))
		}
		for j, d := range action.AccountsPostings {
			if d.Type == "" || d.Code == "" {
				issues = append(issues, fmt.Sprintf("action %d posting %d has an incomplete descriptor", i, j))
			}
		}
	}

	return issues
}
