package suggester

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/sofcal/posting-rules/internal/logging"
	"github.com/sofcal/posting-rules/internal/models"
)

// GeminiSuggester implements Suggester against the Google Gemini API.
type GeminiSuggester struct {
	apiKey    string
	modelName string
	logger    logging.Logger

	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiSuggester creates a suggester for the given API key and model.
// The API client is created lazily on first use.
func NewGeminiSuggester(apiKey, modelName string, logger logging.Logger) *GeminiSuggester {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(nil)
	}
	return &GeminiSuggester{
		apiKey:    apiKey,
		modelName: modelName,
		logger:    logger,
	}
}

func (s *GeminiSuggester) ensureClient(ctx context.Context) error {
	if s.client != nil {
		return nil
	}
	if s.apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}

	s.client = client
	s.model = client.GenerativeModel(s.modelName)
	return nil
}

// Suggest asks Gemini for a category suitable for a new rule covering the
// transaction.
func (s *GeminiSuggester) Suggest(ctx context.Context, tx *models.Transaction) (string, error) {
	if err := s.ensureClient(ctx); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Suggest an accounting category for the following bank transaction:
Narrative: %s
Amount: %s
Date: %s

Respond in this format:
Category: [Category Name]`,
		tx.TransactionNarrative,
		tx.TransactionAmount.StringFixed(2),
		tx.DatePosted.Format("2006-01-02"))

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	category := extractCategory(responseText)

	s.logger.WithFields(
		logging.F("transaction", tx.TransactionID),
		logging.F("category", category),
	).Debug("Gemini suggested category")
	return category, nil
}

// extractCategory parses the "Category:" line from a Gemini response,
// falling back to the whole trimmed response.
func extractCategory(response string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Category:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
		}
	}
	return strings.TrimSpace(response)
}
