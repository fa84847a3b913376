package value

import (
	"strings"
	"unicode"
)

// SplitTopLevel splits the text between the brackets of an array literal into
// its items. Commas nested inside (), [] or a quoted string do not separate
// items, so `Color(1, 0, 0, 1), ExtResource("2_x")` yields two items. Items
// are trimmed and empty items are dropped.
//
// Strings carry no escapes, so a quote only starts a string at the beginning
// of an item or call argument, and only ends it when the next non-blank
// character is a comma, a closing bracket or the end of s. A string whose
// text contains a quote followed by one of those characters cannot be told
// apart from two items and is split there.
func SplitTopLevel(s string) []string {
	var (
		items []string
		depth int
		start int
	)
	emit := func(end int) {
		if item := strings.TrimSpace(s[start:end]); item != "" {
			items = append(items, item)
		}
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			if opensString(s, i) {
				if end := closingQuote(s, i); end > 0 {
					i = end
				}
			}
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				emit(i)
				start = i + 1
			}
		}
	}
	emit(len(s))
	return items
}

// opensString reports whether the quote at i begins an item or an argument.
func opensString(s string, i int) bool {
	prev := strings.TrimRightFunc(s[:i], unicode.IsSpace)
	return prev == "" || strings.IndexByte(",([", prev[len(prev)-1]) >= 0
}

// closingQuote returns the index of the quote that ends the string opened at
// i, or -1 when the string is not terminated.
func closingQuote(s string, i int) int {
	for j := i + 1; j < len(s); j++ {
		if s[j] != '"' {
			continue
		}
		next := strings.TrimLeftFunc(s[j+1:], unicode.IsSpace)
		if next == "" || strings.IndexByte(",)]", next[0]) >= 0 {
			return j
		}
	}
	return -1
}
