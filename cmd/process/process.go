// Package process implements the process command, which applies a rule set
// to a batch of transactions and writes the enriched results.
package process

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sofcal/posting-rules/cmd/root"
	"github.com/sofcal/posting-rules/internal/camtingest"
	"github.com/sofcal/posting-rules/internal/engine"
	"github.com/sofcal/posting-rules/internal/logging"
	"github.com/sofcal/posting-rules/internal/models"
	"github.com/sofcal/posting-rules/internal/store"
	"github.com/sofcal/posting-rules/internal/suggester"
	"github.com/sofcal/posting-rules/internal/taxcalc"
)

var (
	rulesFile    string
	entitiesFile string
	clientMode   bool
	suggest      bool
)

// Cmd is the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Apply posting rules to a batch of transactions",
	Long: `Process loads a transaction batch (CSV or CAMT XML), evaluates the rule
set in rank order against each transaction and attaches postings for the
first matching rule. Results are written as JSON.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "Rules file (YAML, default from config)")
	Cmd.Flags().StringVarP(&entitiesFile, "entities", "e", "", "Entities file (YAML, default from config)")
	Cmd.Flags().BoolVar(&clientMode, "client-mode", false, "Process as a client batch")
	Cmd.Flags().BoolVar(&suggest, "suggest", false, "Ask the AI for category suggestions on unmatched transactions")
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	input := root.SharedFlags.Input
	if input == "" {
		return fmt.Errorf("input file is required (use --input)")
	}

	rulesPath, entitiesPath := rulesFile, entitiesFile
	isClientMode := clientMode
	if root.Cfg != nil {
		if rulesPath == "" {
			rulesPath = root.Cfg.Data.RulesFile
		}
		if entitiesPath == "" {
			entitiesPath = root.Cfg.Data.EntitiesFile
		}
		isClientMode = isClientMode || root.Cfg.Engine.ClientMode
	}

	loader := camtingest.NewLoader(logger)
	transactions, err := loader.Load(input)
	if err != nil {
		return err
	}

	st := store.New(rulesPath, entitiesPath, logger)
	rules, err := st.LoadRules()
	if err != nil {
		return err
	}
	rules = models.FilterRulesByType(rules, models.RuleTypesToProcess(models.DefaultFeatureFlags()))

	entities, err := st.LoadEntities()
	if err != nil {
		return err
	}

	eng := engine.New(taxcalc.New(), logger)
	processed := eng.ProcessRules(transactions, rules, entities, isClientMode)

	if suggest {
		suggestForUnmatched(cmd.Context(), logger, processed)
	}

	if root.SharedFlags.Output != "" {
		if err := store.WriteResults(root.SharedFlags.Output, processed); err != nil {
			return err
		}
		logger.WithField("file", root.SharedFlags.Output).Info("Results written")
	}

	matched := 0
	for _, tx := range processed {
		if len(tx.PredictedActions) > 0 {
			matched++
		}
	}
	logger.WithFields(
		logging.F("transactions", len(processed)),
		logging.F("matched", matched),
	).Info("Processing finished")
	return nil
}

// suggestForUnmatched logs an AI category suggestion for each transaction
// no rule matched. Suggestions are advisory and never change the batch.
func suggestForUnmatched(ctx context.Context, logger logging.Logger, transactions []*models.Transaction) {
	if root.Cfg == nil || !root.Cfg.AI.Enabled {
		logger.Warn("AI suggestions requested but AI is not enabled")
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var s suggester.Suggester = suggester.NewGeminiSuggester(root.Cfg.AI.APIKey, root.Cfg.AI.Model, logger)
	for _, tx := range transactions {
		if len(tx.PredictedActions) > 0 {
			continue
		}
		category, err := s.Suggest(ctx, tx)
		if err != nil {
			logger.WithError(err).WithField("transaction", tx.TransactionID).Warn("AI suggestion failed")
			continue
		}
		logger.WithFields(
			logging.F("transaction", tx.TransactionID),
			logging.F("narrative", tx.TransactionNarrative),
			logging.F("suggestedCategory", category),
		).Info("Suggested category for unmatched transaction")
	}
}
