package value

import (
	"strconv"
	"strings"
)

// rule recognizes one literal kind. It reports false when s is not of its kind.
type rule func(s string) (Value, bool)

// rules are tried in order; the first match wins. The array rules parse
// their items with Parse, so the slice is filled in init.
var rules []rule

func init() {
	rules = []rule{
		parseString,
		parseBool,
		parseNull,
		parseInt,
		parseFloat,
		parseColor,
		parseVector2,
		parseExtResource,
		parseTypedArray,
		parseUntypedArray,
	}
}

// Parse converts literal text into a Value. Surrounding whitespace is
// ignored. Text that matches no literal kind is returned as a RawString, so
// Parse never fails.
func Parse(literal string) Value {
	s := strings.TrimSpace(literal)
	for _, r := range rules {
		if v, ok := r(s); ok {
			return v
		}
	}
	return RawString(s)
}

func parseString(s string) (Value, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return nil, false
	}
	return String(s[1 : len(s)-1]), true
}

func parseBool(s string) (Value, bool) {
	switch s {
	case "true":
		return Bool(true), true
	case "false":
		return Bool(false), true
	}
	return nil, false
}

func parseNull(s string) (Value, bool) {
	if s != "null" {
		return nil, false
	}
	return Null{}, true
}

func parseInt(s string) (Value, bool) {
	if !isInteger(s) {
		return nil, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, false
	}
	return Int(n), true
}

func parseFloat(s string) (Value, bool) {
	whole, frac, ok := strings.Cut(s, ".")
	if !ok || !isInteger(whole) || !isDigits(frac) {
		return nil, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return Float(f), true
}

func parseColor(s string) (Value, bool) {
	fs, ok := parseFloatCall(s, "Color", 4)
	if !ok {
		return nil, false
	}
	return Color(fs), true
}

func parseVector2(s string) (Value, bool) {
	fs, ok := parseFloatCall(s, "Vector2", 2)
	if !ok {
		return nil, false
	}
	return Vector2(fs), true
}

func parseExtResource(s string) (Value, bool) {
	id, ok := cutAround(s, `ExtResource("`, `")`)
	if !ok || id == "" || strings.Contains(id, `"`) {
		return nil, false
	}
	return ExtResourceRef(id), true
}

func parseTypedArray(s string) (Value, bool) {
	rest, ok := strings.CutPrefix(s, "Array[")
	if !ok {
		return nil, false
	}
	elemType, rest, ok := strings.Cut(rest, "]")
	if !ok || !isWord(elemType) {
		return nil, false
	}
	items, ok := cutAround(rest, "([", "])")
	if !ok {
		return nil, false
	}
	return TypedArray{ElementType: elemType, Items: parseItems(items)}, true
}

func parseUntypedArray(s string) (Value, bool) {
	items, ok := cutAround(s, "[", "]")
	if !ok {
		return nil, false
	}
	return UntypedArray(parseItems(items)), true
}

func parseItems(s string) []Value {
	parts := SplitTopLevel(s)
	items := make([]Value, 0, len(parts))
	for _, p := range parts {
		items = append(items, Parse(p))
	}
	return items
}

// parseFloatCall parses name(f, f, ...) with exactly n numeric arguments.
func parseFloatCall(s, name string, n int) ([]float64, bool) {
	args, ok := cutAround(s, name+"(", ")")
	if !ok || args == "" || strings.Contains(args, ")") {
		return nil, false
	}
	parts := strings.Split(args, ",")
	if len(parts) != n {
		return nil, false
	}
	fs := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, false
		}
		fs[i] = f
	}
	return fs, true
}

// cutAround returns s without prefix and suffix, which must both be present
// and must not overlap.
func cutAround(s, prefix, suffix string) (string, bool) {
	if len(s) < len(prefix)+len(suffix) || !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, suffix) {
		return "", false
	}
	return s[len(prefix) : len(s)-len(suffix)], true
}

func isInteger(s string) bool {
	return isDigits(strings.TrimPrefix(s, "-"))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isDigit(c) && !('a' <= c && c <= 'z') && !('A' <= c && c <= 'Z') && c != '_' {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
