// Package categorizer assigns each transaction a category and counterparty
// using an ordered rule table evaluated top to bottom, first match wins.
// Classification is a pure function of the normalized description plus the
// direction of money movement: the same input always yields the same
// result, independent of transaction position or statement history.
package categorizer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mpesalytics/engine/internal/logging"
	"mpesalytics/engine/internal/models"
	"mpesalytics/engine/internal/textutils"
)

// KeywordRule is one user-supplied override rule loaded from YAML. It is
// evaluated before the built-in table, so users can pin descriptions their
// statements print in an unusual template.
type KeywordRule struct {
	Category models.Category `yaml:"category"`
	Keywords []string        `yaml:"keywords"`
}

// RulesConfig is the structure of the optional rules YAML file.
type RulesConfig struct {
	Rules []KeywordRule `yaml:"rules"`
}

// Categorizer evaluates the override rules followed by the built-in rule
// table. The zero value uses only the built-in table.
type Categorizer struct {
	overrides []KeywordRule
	logger    logging.Logger
}

// New creates a Categorizer with the built-in rule table only.
func New(logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Categorizer{logger: logger}
}

// NewWithRulesFile creates a Categorizer that layers the keyword rules
// from the given YAML file before the built-in table. A missing file is
// not an error; the built-in table alone is used.
func NewWithRulesFile(rulesFile string, logger logging.Logger) (*Categorizer, error) {
	c := New(logger)
	if rulesFile == "" {
		return c, nil
	}

	data, err := os.ReadFile(rulesFile)
	if err != nil {
		if os.IsNotExist(err) {
			c.logger.Warn("Rules file not found, using built-in rules only",
				logging.Field{Key: "file", Value: rulesFile})
			return c, nil
		}
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	var cfg RulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", rulesFile, err)
	}

	for _, r := range cfg.Rules {
		if !r.Category.IsValid() {
			c.logger.Warn("Skipping rule with unknown category",
				logging.Field{Key: "category", Value: string(r.Category)})
			continue
		}
		c.overrides = append(c.overrides, r)
	}

	c.logger.Debug("Loaded keyword override rules",
		logging.Field{Key: "count", Value: len(c.overrides)})
	return c, nil
}

// Categorize classifies a transaction description given the direction of
// money movement. It never fails: descriptions no rule recognizes fall
// back to Uncategorized with the normalized description as counterparty,
// so the row stays visible instead of silently disappearing.
func (c *Categorizer) Categorize(description string, direction models.Direction) models.Classification {
	norm := textutils.Normalize(description)
	typePart, entity := textutils.SplitDetails(norm)
	in := ruleInput{
		Norm:      norm,
		TypePart:  typePart,
		Entity:    entity,
		Direction: direction,
	}

	for _, o := range c.overrides {
		for _, kw := range o.Keywords {
			if kw != "" && strings.Contains(norm, textutils.Normalize(kw)) {
				return models.Classification{
					Category:     o.Category,
					Counterparty: entity,
				}
			}
		}
	}

	for _, r := range builtinRules {
		if r.matches(in) {
			return r.apply(in)
		}
	}

	// Fallback on uncertainty: the user can still see and manually
	// interpret the row, never a blank unexplained entry.
	return models.Classification{
		Category:     models.CategoryUncategorized,
		Subcategory:  "unknown",
		Counterparty: norm,
	}
}

// Classify enriches a parsed transaction in place with its category,
// subcategory, counterparty, and charge flag.
func (c *Categorizer) Classify(tx *models.Transaction) {
	result := c.Categorize(tx.Description, tx.Direction())
	tx.Category = result.Category
	tx.Subcategory = result.Subcategory
	tx.Counterparty = result.Counterparty
	tx.AccountNo = result.AccountNo
	tx.IsCharge = result.IsCharge
}

// ClassifyAll enriches every transaction of a statement.
func (c *Categorizer) ClassifyAll(txs []models.Transaction) {
	for i := range txs {
		c.Classify(&txs[i])
	}
}
