// Package fieldmatch classifies transaction field values and compares them
// against rule condition criteria. Comparators are pure functions; a value
// that classifies as unsupported never matches.
package fieldmatch

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the comparator family a field value belongs to.
type Kind int

const (
	KindNumber Kind = iota
	KindDate
	KindText
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindText:
		return "text"
	default:
		return "unsupported"
	}
}

// Classify resolves a field value to its comparator family. Nil values,
// collections and anything else without a comparator classify as
// unsupported.
func Classify(value any) Kind {
	switch value.(type) {
	case decimal.Decimal, float64, float32, int, int32, int64:
		return KindNumber
	case time.Time:
		return KindDate
	case string:
		return KindText
	default:
		return KindUnsupported
	}
}

// NumberValue converts a value classified as KindNumber to a decimal.
func NumberValue(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt32(v), true
	case int64:
		return decimal.NewFromInt(v), true
	default:
		return decimal.Decimal{}, false
	}
}
