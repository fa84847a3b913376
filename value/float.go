package value

import (
	"math"
	"strconv"
	"strings"
)

// FloatFormatter renders a float component of a literal.
type FloatFormatter func(float64) string

// DefaultFloatFormat renders the shortest decimal that reads back as the same
// float64. The result always contains a '.', so whole numbers keep their float
// kind (1 is written as 1.0). Non-finite values are written as nan, inf and
// -inf, which read back as RawString.
func DefaultFloatFormat(f float64) string {
	if s, ok := nonFinite(f); ok {
		return s
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FixedFloatFormat returns a FloatFormatter that always writes prec digits
// after the decimal point. prec values below 1 are treated as 1.
func FixedFloatFormat(prec int) FloatFormatter {
	if prec < 1 {
		prec = 1
	}
	return func(f float64) string {
		if s, ok := nonFinite(f); ok {
			return s
		}
		return strconv.FormatFloat(f, 'f', prec, 64)
	}
}

func nonFinite(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "nan", true
	case math.IsInf(f, 1):
		return "inf", true
	case math.IsInf(f, -1):
		return "-inf", true
	}
	return "", false
}
