package fieldmatch

import (
	"github.com/sofcal/posting-rules/internal/models"
)

// MatchText compares a text field against a wildcard criteria. The
// operation selects the anchoring mode: eq anchors both ends, contains is
// unanchored, containsWords bounds the match on word boundaries and
// doesNotContain negates contains.
func MatchText(field, criteria, op string) bool {
	switch op {
	case models.OpEqual:
		return compileAndMatch(field, criteria, AnchorExact)
	case models.OpContains:
		return compileAndMatch(field, criteria, AnchorUnanchored)
	case models.OpContainsWords:
		return compileAndMatch(field, criteria, AnchorWordBounded)
	case models.OpDoesNotContain:
		return !compileAndMatch(field, criteria, AnchorUnanchored)
	default:
		return false
	}
}

func compileAndMatch(field, criteria string, anchor AnchorMode) bool {
	p, err := CompilePattern(criteria, anchor)
	if err != nil {
		return false
	}
	return p.Match(field)
}
