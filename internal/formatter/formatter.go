package formatter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-tres/internal/ast"
	"github.com/KimNorgaard/go-tres/internal/parser"
	"github.com/KimNorgaard/go-tres/internal/token"
	"github.com/KimNorgaard/go-tres/value"
)

const (
	// FormatVersion is the format attribute written in every header.
	FormatVersion = 3

	// ScriptRefID is the reserved reference id of the script that defines an
	// entity's type. Every entity implicitly refers to its script under this id.
	ScriptRefID = "1_script"

	// ScriptProperty is the property that holds the script reference. It is
	// written as ExtResource(ScriptRefID) when a document does not set it.
	ScriptProperty = "script"
)

var (
	// ErrInvalidKey is returned for a property name other than letters,
	// digits and underscores.
	ErrInvalidKey = errors.New("invalid property name")

	// ErrNoLiteral is returned for a value that cannot be written on one line
	// and read back: text with a line break, or raw text that reads back as
	// another kind or not at all.
	ErrNoLiteral = errors.New("value has no one-line literal")
)

// Formatter writes a resource document to an output stream.
type Formatter struct {
	w      io.Writer
	floats value.FloatFormatter
	colors *Colors
}

// New returns a new formatter that writes to w. A nil ff selects
// value.DefaultFloatFormat.
func New(w io.Writer, ff value.FloatFormatter) *Formatter {
	if ff == nil {
		ff = value.DefaultFloatFormat
	}
	return &Formatter{w: w, floats: ff}
}

// WithColors makes the formatter highlight its output with c.
func (f *Formatter) WithColors(c *Colors) *Formatter {
	f.colors = c
	return f
}

// LoadSteps is the load_steps header value of doc: one step for the script
// plus one per reference.
func LoadSteps(doc *ast.Document) int {
	return 1 + doc.ExtResources.Len()
}

// Format writes doc. The header's load_steps is derived from the reference
// table, and a script property is synthesized when doc has none. Nothing is
// written when a property cannot be.
func (f *Formatter) Format(doc *ast.Document) error {
	if err := checkDocument(doc); err != nil {
		return err
	}
	if err := f.writeLine(f.directive(headerDirective(doc))); err != nil {
		return err
	}
	if err := f.writeLine(""); err != nil {
		return err
	}

	for id, ext := range doc.ExtResources.All() {
		if err := f.writeLine(f.directive(extResourceDirective(id, ext))); err != nil {
			return err
		}
	}
	if doc.ExtResources.Len() > 0 {
		if err := f.writeLine(""); err != nil {
			return err
		}
	}

	if err := f.writeLine(f.directive(&ast.Directive{Keyword: token.ResourceKeyword})); err != nil {
		return err
	}
	if !doc.Properties.Has(ScriptProperty) {
		if err := f.writeLine(f.property(ScriptProperty, value.ExtResourceRef(ScriptRefID))); err != nil {
			return err
		}
	}
	for key, v := range doc.Properties.All() {
		if err := f.writeLine(f.property(key, v)); err != nil {
			return err
		}
	}
	return nil
}

// checkDocument reports the first property of doc that cannot be written.
func checkDocument(doc *ast.Document) error {
	for key, v := range doc.Properties.All() {
		if !parser.IsKey(key) {
			return fmt.Errorf("property %q: %w", key, ErrInvalidKey)
		}
		if err := checkValue(v); err != nil {
			return fmt.Errorf("property %q: %w", key, err)
		}
	}
	return nil
}

func checkValue(v value.Value) error {
	switch v := v.(type) {
	case value.String:
		if strings.Contains(string(v), "\n") {
			return fmt.Errorf("%w: string contains a line break", ErrNoLiteral)
		}
	case value.ExtResourceRef:
		if strings.Contains(string(v), "\n") {
			return fmt.Errorf("%w: reference id contains a line break", ErrNoLiteral)
		}
	case value.RawString:
		if strings.Contains(string(v), "\n") || !value.Equal(v, value.Parse(string(v))) {
			return fmt.Errorf("%w: raw text %q", ErrNoLiteral, string(v))
		}
	case value.TypedArray:
		return checkItems(v.Items)
	case value.UntypedArray:
		return checkItems(v)
	}
	return nil
}

func checkItems(items []value.Value) error {
	for _, item := range items {
		if err := checkValue(item); err != nil {
			return err
		}
	}
	return nil
}

func headerDirective(doc *ast.Document) *ast.Directive {
	d := &ast.Directive{Keyword: token.HeaderKeyword}
	d.Attrs = append(d.Attrs, ast.Attr{Name: "type", Value: doc.Header.Type, Quoted: true})
	if doc.Header.ScriptClass != "" {
		d.Attrs = append(d.Attrs, ast.Attr{Name: "script_class", Value: doc.Header.ScriptClass, Quoted: true})
	}
	d.Attrs = append(d.Attrs,
		ast.Attr{Name: "load_steps", Value: strconv.Itoa(LoadSteps(doc))},
		ast.Attr{Name: "format", Value: strconv.Itoa(FormatVersion)},
		ast.Attr{Name: "uid", Value: doc.Header.UID, Quoted: true},
	)
	return d
}

func extResourceDirective(id string, ext ast.ExtResource) *ast.Directive {
	d := &ast.Directive{Keyword: token.ExtResourceKeyword}
	d.Attrs = append(d.Attrs, ast.Attr{Name: "type", Value: ext.Type, Quoted: true})
	if ext.UID != "" {
		d.Attrs = append(d.Attrs, ast.Attr{Name: "uid", Value: ext.UID, Quoted: true})
	}
	d.Attrs = append(d.Attrs,
		ast.Attr{Name: "path", Value: ext.Path, Quoted: true},
		ast.Attr{Name: "id", Value: id, Quoted: true},
	)
	return d
}

func (f *Formatter) directive(d *ast.Directive) string {
	if f.colors == nil {
		return d.String()
	}
	return f.colors.directive(d)
}

func (f *Formatter) property(key string, v value.Value) string {
	lit := value.Format(v, f.floats)
	if f.colors == nil {
		return key + " = " + lit
	}
	return f.colors.property(key, v, lit)
}

func (f *Formatter) writeLine(s string) error {
	if _, err := io.WriteString(f.w, s); err != nil {
		return err
	}
	_, err := io.WriteString(f.w, "\n")
	return err
}
