package lexer

import (
	"bufio"
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/KimNorgaard/go-tres/internal/token"
)

// Lexer holds the state for tokenizing a single directive line.
type Lexer struct {
	r      *bufio.Reader
	buf    bytes.Buffer
	ch     rune
	column int
}

// New creates and returns a new Lexer for the directive text in line.
func New(line string) *Lexer {
	l := &Lexer{
		r:      bufio.NewReader(strings.NewReader(line)),
		column: 1,
	}
	l.readRune()
	return l
}

// NextToken scans the input and returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	tok := token.Token{Column: l.column}
	switch l.ch {
	case '[', ']', '=':
		tok.Type = token.Type(l.ch)
		tok.Literal = string(l.ch)
	case '"':
		lit, ok := l.readString()
		if !ok {
			tok.Type = token.ILLEGAL
		} else {
			tok.Type = token.STRING
		}
		tok.Literal = lit
		return tok
	case -1:
		tok.Type = token.EOF
		tok.Literal = ""
		return tok
	default:
		if isDigit(l.ch) || (l.ch == '-' && isDigit(l.peekRune())) {
			literal := l.readNumber()
			if typ, ok := ParseAsNumber(literal); ok {
				tok.Type = typ
			} else {
				tok.Type = token.ILLEGAL
			}
			tok.Literal = literal
			return tok
		}
		if isIdentifierChar(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			return tok
		}
		tok.Type = token.ILLEGAL
		if l.ch == utf8.RuneError {
			tok.Literal = "invalid utf-8"
		} else {
			tok.Literal = string(l.ch)
		}
	}
	l.advance()
	return tok
}

func (l *Lexer) readRune() {
	r, _, err := l.r.ReadRune()
	if err != nil {
		l.ch = -1
		return
	}
	l.ch = r
}

func (l *Lexer) advance() {
	l.readRune()
	l.column++
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.advance()
	}
}

func (l *Lexer) readIdentifier() string {
	l.buf.Reset()
	for isIdentifierChar(l.ch) {
		l.buf.WriteRune(l.ch)
		l.advance()
	}
	return l.buf.String()
}

func (l *Lexer) readNumber() string {
	l.buf.Reset()
	for isIdentifierChar(l.ch) || l.ch == '.' || l.ch == '-' {
		l.buf.WriteRune(l.ch)
		l.advance()
	}
	return l.buf.String()
}

// readString reads a double-quoted attribute value. Attribute values carry
// no escape sequences; the string ends at the next quote.
func (l *Lexer) readString() (string, bool) {
	l.advance() // consume opening quote
	l.buf.Reset()
	for {
		switch l.ch {
		case '"':
			l.advance() // consume closing quote
			return l.buf.String(), true
		case -1, '\n':
			return "unterminated string", false
		case utf8.RuneError:
			return "invalid utf-8 sequence in string", false
		}
		l.buf.WriteRune(l.ch)
		l.advance()
	}
}

func (l *Lexer) peekRune() rune {
	// Prioritize the returned slice, as Peek can return both bytes and an error
	bytes, _ := l.r.Peek(utf8.UTFMax)
	if len(bytes) == 0 {
		return 0
	}
	r, _ := utf8.DecodeRune(bytes)
	return r
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentifierChar(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || isDigit(ch) || ch == '_'
}

func consumeDigits(s string, i int) int {
	for i < len(s) && isDigit(rune(s[i])) {
		i++
	}
	return i
}

// ParseAsNumber reports whether s is an attribute number, -?[0-9]+ or
// -?[0-9]+.[0-9]+, and which token type it is.
func ParseAsNumber(s string) (token.Type, bool) {
	i := 0
	if strings.HasPrefix(s, "-") {
		i++
	}
	start := i
	i = consumeDigits(s, i)
	if i == start {
		return token.ILLEGAL, false
	}
	if i == len(s) {
		return token.INT, true
	}
	if s[i] != '.' {
		return token.ILLEGAL, false
	}
	i++
	fraction := i
	i = consumeDigits(s, i)
	if i == fraction || i != len(s) {
		return token.ILLEGAL, false
	}
	return token.FLOAT, true
}
