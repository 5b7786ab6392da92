// Package store loads rule sets and entity tables from YAML files and
// writes processed transactions out as JSON.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sofcal/posting-rules/internal/logging"
	"github.com/sofcal/posting-rules/internal/models"
)

// RulesFile is the on-disk shape of a rule set.
type RulesFile struct {
	Rules []models.Rule `yaml:"rules"`
}

// EntitiesFile is the on-disk shape of an entity table.
type EntitiesFile struct {
	Entities []models.Entity `yaml:"entities"`
}

// Store resolves and reads the engine's data files.
type Store struct {
	RulesPath    string
	EntitiesPath string
	logger       logging.Logger
}

// New creates a Store over the given file paths.
func New(rulesPath, entitiesPath string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(nil)
	}
	return &Store{
		RulesPath:    rulesPath,
		EntitiesPath: entitiesPath,
		logger:       logger,
	}
}

// LoadRules reads the rule set. A missing file is a warning, not an error:
// an empty rule set simply short-circuits processing.
func (s *Store) LoadRules() ([]models.Rule, error) {
	data, err := os.ReadFile(s.RulesPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField("file", s.RulesPath).Warn("Rules file not found")
			return []models.Rule{}, nil
		}
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing rules file: %w", err)
	}

	s.logger.WithFields(
		logging.F("file", s.RulesPath),
		logging.F("count", len(file.Rules)),
	).Debug("Loaded rules")
	return file.Rules, nil
}

// LoadEntities reads the entity table. A missing file means the entity
// count is unknown; an empty file is an explicitly empty table.
func (s *Store) LoadEntities() (models.EntityList, error) {
	data, err := os.ReadFile(s.EntitiesPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField("file", s.EntitiesPath).Warn("Entities file not found")
			return models.UnknownEntities(), nil
		}
		return models.EntityList{}, fmt.Errorf("error reading entities file: %w", err)
	}

	var file EntitiesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return models.EntityList{}, fmt.Errorf("error parsing entities file: %w", err)
	}

	s.logger.WithFields(
		logging.F("file", s.EntitiesPath),
		logging.F("count", len(file.Entities)),
	).Debug("Loaded entities")
	return models.Entities(file.Entities), nil
}

// WriteResults writes the processed transactions as indented JSON.
func WriteResults(path string, transactions []*models.Transaction) error {
	data, err := json.MarshalIndent(transactions, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling results: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing results: %w", err)
	}
	return nil
}
