package suggester

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofcal/posting-rules/internal/logging"
	"github.com/sofcal/posting-rules/internal/models"
)

func TestExtractCategory(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "CategoryLine",
			response: "Category: Office Supplies",
			want:     "Office Supplies",
		},
		{
			name:     "CategoryLineAmongOthers",
			response: "Here is my suggestion.\nCategory: Travel\nHope that helps.",
			want:     "Travel",
		},
		{
			name:     "IndentedCategoryLine",
			response: "  Category:  Rent  ",
			want:     "Rent",
		},
		{
			name:     "NoCategoryLineFallsBack",
			response: "  Utilities  ",
			want:     "Utilities",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCategory(tt.response))
		})
	}
}

func TestGeminiSuggester_RequiresAPIKey(t *testing.T) {
	s := NewGeminiSuggester("", "gemini-2.0-flash", logging.NewMockLogger())

	_, err := s.Suggest(context.Background(), &models.Transaction{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestMockSuggester(t *testing.T) {
	m := &MockSuggester{Category: "Groceries"}
	tx := &models.Transaction{TransactionID: "tx-1"}

	category, err := m.Suggest(context.Background(), tx)

	require.NoError(t, err)
	assert.Equal(t, "Groceries", category)
	require.Len(t, m.Asked, 1)
	assert.Same(t, tx, m.Asked[0])
}
