// Package suggester proposes rule categories for transactions no rule
// matched, using the Gemini API as a fallback. Suggestions are advisory
// only; the engine never applies them.
package suggester

import (
	"context"

	"github.com/sofcal/posting-rules/internal/models"
)

// Suggester proposes a category for an unmatched transaction.
type Suggester interface {
	Suggest(ctx context.Context, tx *models.Transaction) (string, error)
}
