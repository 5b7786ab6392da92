package suggester

import (
	"context"

	"github.com/sofcal/posting-rules/internal/models"
)

// MockSuggester returns a fixed suggestion and records what it was asked.
// For tests only.
type MockSuggester struct {
	Category string
	Err      error
	Asked    []*models.Transaction
}

func (m *MockSuggester) Suggest(_ context.Context, tx *models.Transaction) (string, error) {
	m.Asked = append(m.Asked, tx)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Category, nil
}
