package fieldmatch

import (
	"regexp"
	"strings"
)

// AnchorMode controls how a compiled pattern attaches to the field value.
type AnchorMode int

const (
	// AnchorExact requires the pattern to match the entire value.
	AnchorExact AnchorMode = iota
	// AnchorUnanchored lets the pattern match any substring.
	AnchorUnanchored
	// AnchorWordBounded matches a substring whose ends sit on word
	// boundaries (non-alphanumeric characters or string edges). A pattern
	// edge that is itself a '*' drops the boundary on that side, which
	// deliberately permits attachment to adjacent content.
	AnchorWordBounded
)

// Pattern is a compiled wildcard criteria. '*' matches any run of
// characters including the empty run, '?' matches exactly one character.
// Matching is case-sensitive.
type Pattern struct {
	re *regexp.Regexp
}

const wordBoundaryClass = "[^0-9A-Za-z]"

// CompilePattern translates a glob criteria into a matcher with the given
// anchoring mode.
func CompilePattern(glob string, anchor AnchorMode) (*Pattern, error) {
	var sb strings.Builder
	sb.WriteString("(?s)")

	switch anchor {
	case AnchorExact:
		sb.WriteString("^")
	case AnchorWordBounded:
		if !strings.HasPrefix(glob, "*") {
			sb.WriteString("(?:^|" + wordBoundaryClass + ")")
		}
	}

	for _, r := range glob {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	switch anchor {
	case AnchorExact:
		sb.WriteString("$")
	case AnchorWordBounded:
		if !strings.HasSuffix(glob, "*") {
			sb.WriteString("(?:" + wordBoundaryClass + "|$)")
		}
	}

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, err
	}
	return &Pattern{re: re}, nil
}

// Match reports whether the value satisfies the pattern.
func (p *Pattern) Match(value string) bool {
	return p.re.MatchString(value)
}
