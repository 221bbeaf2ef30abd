package categorizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"mpesalytics/engine/internal/logging"
	"mpesalytics/engine/internal/models"
)

// GeminiFallback asks the Gemini model to pick a category for descriptions
// the rule table could not classify. It is strictly optional: the engine
// pipeline never calls it (classification there must stay a pure function
// of the description), only the interactive categorize command does, and
// only when USE_AI_CATEGORIZATION is switched on and an API key is set.
type GeminiFallback struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

// NewGeminiFallback creates a fallback categorizer backed by the given
// model name (e.g. "gemini-2.0-flash").
func NewGeminiFallback(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiFallback, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("no API key supplied for AI categorization")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiFallback{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}, nil
}

// Close releases the underlying API client.
func (g *GeminiFallback) Close() error {
	return g.client.Close()
}

// Categorize asks the model to assign one category from the closed set.
// Responses outside the set degrade to Uncategorized.
func (g *GeminiFallback) Categorize(ctx context.Context, description string, direction models.Direction) (models.Category, error) {
	names := make([]string, len(models.AllCategories))
	for i, c := range models.AllCategories {
		names[i] = string(c)
	}

	prompt := fmt.Sprintf(`Categorize the following mobile-money transaction:
Description: %s
Direction: %s

Assign it to exactly one of the following categories:
%s

Respond with only the category name.`,
		description, direction, strings.Join(names, ", "))

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.CategoryUncategorized, fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return models.CategoryUncategorized, fmt.Errorf("no response from Gemini API")
	}

	answer := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	category := models.Category(answer)
	if !category.IsValid() {
		g.logger.Warn("Gemini returned a category outside the fixed set",
			logging.Field{Key: "answer", Value: answer})
		return models.CategoryUncategorized, nil
	}

	g.logger.Debug("Gemini categorized description",
		logging.Field{Key: "category", Value: answer})
	return category, nil
}
