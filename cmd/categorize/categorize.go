// Package categorize handles ad-hoc description categorization commands
package categorize

import (
	"context"
	"time"

	"mpesalytics/engine/cmd/root"
	"mpesalytics/engine/internal/categorizer"
	"mpesalytics/engine/internal/config"
	"mpesalytics/engine/internal/logging"
	"mpesalytics/engine/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single transaction description",
	Long: `Categorize a transaction description using the built-in rule table.
When USE_AI_CATEGORIZATION is enabled and the rules leave the description
uncategorized, the Gemini model is consulted as a fallback.`,
	Run: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Description, "description", "d", "", "Transaction description to categorize")
	Cmd.Flags().BoolVarP(&root.Received, "received", "R", false, "Whether money was received (default: sent)")
	if err := Cmd.MarkFlagRequired("description"); err != nil {
		root.Log.Warnf("Failed to mark description flag required: %v", err)
	}
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Categorize command called")

	config.LoadEnv()

	direction := models.DirectionOut
	if root.Received {
		direction = models.DirectionIn
	}

	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	cat, err := categorizer.NewWithRulesFile(root.RulesFile(), logger)
	if err != nil {
		root.Log.Fatalf("Error loading rules: %v", err)
	}

	result := cat.Categorize(root.Description, direction)

	cfg := config.GetGlobalConfig()
	if result.Category == models.CategoryUncategorized &&
		(cfg.AI.Enabled || config.IsAICategorizationEnabled()) {
		result = askGemini(cfg, logger, direction, result)
	}

	root.Log.Infof("Category: %s", result.Category)
	if result.Subcategory != "" {
		root.Log.Infof("Subcategory: %s", result.Subcategory)
	}
	if result.Counterparty != "" {
		root.Log.Infof("Counterparty: %s", result.Counterparty)
	}
	if result.AccountNo != "" {
		root.Log.Infof("Account: %s", result.AccountNo)
	}
}

// askGemini consults the optional AI fallback using the configured model
// and timeout. Any failure keeps the rule table's result so the command
// still answers.
func askGemini(cfg *config.Config, logger logging.Logger, direction models.Direction, fallback models.Classification) models.Classification {
	apiKey := cfg.AI.APIKey
	if apiKey == "" {
		apiKey = config.GetGeminiAPIKey()
	}
	if apiKey == "" {
		root.Log.Warn("AI categorization is enabled but GEMINI_API_KEY is not set")
		return fallback
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.AI.TimeoutSeconds)*time.Second)
	defer cancel()

	gemini, err := categorizer.NewGeminiFallback(ctx, apiKey, cfg.AI.Model, logger)
	if err != nil {
		root.Log.Warnf("AI fallback unavailable: %v", err)
		return fallback
	}
	defer func() {
		if err := gemini.Close(); err != nil {
			root.Log.Warnf("Failed to close Gemini client: %v", err)
		}
	}()

	category, err := gemini.Categorize(ctx, root.Description, direction)
	if err != nil {
		root.Log.Warnf("AI categorization failed: %v", err)
		return fallback
	}

	fallback.Category = category
	return fallback
}
