package parser

import (
	"fmt"
	"strings"

	"github.com/KimNorgaard/go-tres/internal/ast"
	"github.com/KimNorgaard/go-tres/internal/lexer"
	"github.com/KimNorgaard/go-tres/internal/token"
	"github.com/KimNorgaard/go-tres/value"
)

// Parser turns the text of a resource document into an ast.Document.
type Parser struct {
	lines  []string
	errors Diagnostics

	sawHeader  bool
	inResource bool
}

// New creates a new parser for src.
func New(src []byte) *Parser {
	return &Parser{lines: strings.Split(string(src), "\n")}
}

// Errors returns the diagnostics collected during parsing.
func (p *Parser) Errors() Diagnostics {
	return p.errors
}

// Parse parses the document. It never fails: malformed headers leave the
// header fields empty, and lines that cannot be understood are skipped and
// reported through Errors.
func (p *Parser) Parse() *ast.Document {
	doc := ast.NewDocument()
	for i, raw := range p.lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if p.inResource {
			p.parsePropertyLine(doc, line, lineNo)
			continue
		}
		if !isDirectiveLine(line) {
			continue
		}
		d, err := ParseDirective(line)
		if err != nil {
			p.errorf(lineNo, "%s", err)
			continue
		}
		d.Line = lineNo
		p.parseDirective(doc, d)
	}
	return doc
}

func (p *Parser) parseDirective(doc *ast.Document, d *ast.Directive) {
	switch d.Token.Type {
	case token.HEADER:
		if p.sawHeader {
			p.errorf(d.Line, "duplicate %s directive ignored", token.HeaderKeyword)
			return
		}
		p.sawHeader = true
		doc.Header = p.parseHeader(d)
	case token.EXT_RESOURCE:
		p.parseExtResource(doc, d)
	case token.RESOURCE:
		p.inResource = true
	case token.SUB_RESOURCE:
		// Embedded sub-resources are not part of the entity model.
	default:
		p.errorf(d.Line, "unknown directive %q ignored", d.Keyword)
	}
}

func (p *Parser) parseHeader(d *ast.Directive) ast.Header {
	typ, okType := d.Attr("type")
	uid, okUID := d.Attr("uid")
	if !okType || !okUID {
		p.errorf(d.Line, "malformed %s directive: type and uid are required", token.HeaderKeyword)
		return ast.Header{}
	}
	class, _ := d.Attr("script_class")
	return ast.Header{Type: typ, ScriptClass: class, UID: uid}
}

func (p *Parser) parseExtResource(doc *ast.Document, d *ast.Directive) {
	var ext ast.ExtResource
	var id string
	var missing []string
	for _, f := range []struct {
		name string
		dst  *string
	}{{"type", &ext.Type}, {"path", &ext.Path}, {"id", &id}} {
		v, ok := d.Attr(f.name)
		if !ok {
			missing = append(missing, f.name)
			continue
		}
		*f.dst = v
	}
	if len(missing) > 0 {
		p.errorf(d.Line, "%s directive missing %s", token.ExtResourceKeyword, strings.Join(missing, ", "))
		return
	}
	ext.UID, _ = d.Attr("uid")
	doc.ExtResources.Set(id, ext)
}

func (p *Parser) parsePropertyLine(doc *ast.Document, line string, lineNo int) {
	if line == "" || isComment(line) {
		return
	}
	prop, ok := ParseProperty(line)
	if !ok {
		p.errorf(lineNo, "skipped line %q: not a key = value assignment", line)
		return
	}
	doc.Properties.Set(prop.Key, prop.Value)
}

func (p *Parser) errorf(line int, format string, args ...any) {
	p.errors = append(p.errors, Diagnostic{Line: line, Message: fmt.Sprintf(format, args...)})
}

// ParseProperty parses a trimmed `key = value` line.
func ParseProperty(line string) (*ast.Property, bool) {
	i := 0
	for i < len(line) && isKeyChar(line[i]) {
		i++
	}
	if i == 0 {
		return nil, false
	}
	key := line[:i]
	rest := strings.TrimLeft(line[i:], " \t")
	rest, ok := strings.CutPrefix(rest, "=")
	if !ok {
		return nil, false
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, false
	}
	return &ast.Property{Key: key, Value: value.Parse(rest)}, true
}

// ParseDirective parses a single bracketed directive line.
func ParseDirective(line string) (*ast.Directive, error) {
	l := lexer.New(line)
	tok := l.NextToken()
	if tok.Type != token.LBRACK {
		return nil, fmt.Errorf("expected '[' got %s", tok.Type)
	}

	tok = l.NextToken()
	if !isName(tok.Type) {
		return nil, fmt.Errorf("expected directive keyword, got %s ('%s')", tok.Type, tok.Literal)
	}
	d := &ast.Directive{Token: tok, Keyword: tok.Literal}

	for {
		tok = l.NextToken()
		if tok.Type == token.RBRACK {
			break
		}
		if !isName(tok.Type) {
			return nil, fmt.Errorf("expected attribute name at column %d, got %s ('%s')", tok.Column, tok.Type, tok.Literal)
		}
		attr := ast.Attr{Name: tok.Literal}
		if tok = l.NextToken(); tok.Type != token.ASSIGN {
			return nil, fmt.Errorf("expected '=' after %s, got %s", attr.Name, tok.Type)
		}
		tok = l.NextToken()
		switch tok.Type {
		case token.STRING:
			attr.Quoted = true
		case token.INT, token.FLOAT, token.IDENT:
		default:
			return nil, fmt.Errorf("invalid value for %s at column %d: %s ('%s')", attr.Name, tok.Column, tok.Type, tok.Literal)
		}
		attr.Value = tok.Literal
		d.Attrs = append(d.Attrs, attr)
	}

	if tok = l.NextToken(); tok.Type != token.EOF {
		return nil, fmt.Errorf("unexpected %s ('%s') after ']'", tok.Type, tok.Literal)
	}
	return d, nil
}

func isName(t token.Type) bool {
	switch t {
	case token.IDENT, token.HEADER, token.EXT_RESOURCE, token.SUB_RESOURCE, token.RESOURCE:
		return true
	}
	return false
}

func isDirectiveLine(line string) bool {
	return strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]")
}

func isComment(line string) bool {
	return line[0] == '#' || line[0] == ';'
}

// IsKey reports whether s can be read back as a property name.
func IsKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isKeyChar(s[i]) {
			return false
		}
	}
	return true
}

func isKeyChar(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || c == '_'
}
