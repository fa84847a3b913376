package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/KimNorgaard/go-tres/internal/ast"
	"github.com/KimNorgaard/go-tres/value"
)

// Colors highlights the parts of a document for terminal display.
type Colors struct {
	Bracket func(string, ...any) string
	Keyword func(string, ...any) string
	Attr    func(string, ...any) string
	Key     func(string, ...any) string
	Sep     func(string, ...any) string
	Values  map[value.Kind]func(string, ...any) string
	Default func(string, ...any) string
}

// NewColors returns the default palette.
func NewColors() *Colors {
	number := color.RGB(128, 216, 236).SprintfFunc()
	ref := color.RGB(196, 128, 196).SprintfFunc()
	return &Colors{
		Bracket: color.RGB(96, 96, 96).SprintfFunc(),
		Keyword: color.RGB(74, 92, 138).SprintfFunc(),
		Attr:    color.RGB(196, 96, 16).SprintfFunc(),
		Key:     color.RGB(128, 168, 196).SprintfFunc(),
		Sep:     color.RGB(255, 0, 196).SprintfFunc(),
		Values: map[value.Kind]func(string, ...any) string{
			value.NullKind:           color.RGB(168, 0, 196).SprintfFunc(),
			value.BoolKind:           color.CyanString,
			value.IntKind:            number,
			value.FloatKind:          number,
			value.StringKind:         color.RGB(8, 196, 16).SprintfFunc(),
			value.ColorKind:          color.RGB(198, 198, 46).SprintfFunc(),
			value.Vector2Kind:        color.RGB(198, 198, 46).SprintfFunc(),
			value.ExtResourceRefKind: ref,
			value.TypedArrayKind:     ref,
			value.UntypedArrayKind:   color.WhiteString,
		},
		Default: colorDefault,
	}
}

func colorDefault(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func (c *Colors) value(k value.Kind) func(string, ...any) string {
	if fn, ok := c.Values[k]; ok {
		return fn
	}
	return c.Default
}

func (c *Colors) directive(d *ast.Directive) string {
	var out strings.Builder
	out.WriteString(c.Bracket("["))
	out.WriteString(c.Keyword("%s", d.Keyword))
	for _, a := range d.Attrs {
		out.WriteString(" ")
		out.WriteString(c.Attr("%s", a.Name))
		out.WriteString(c.Sep("="))
		if a.Quoted {
			out.WriteString(c.value(value.StringKind)(`"%s"`, a.Value))
		} else {
			out.WriteString(c.value(value.IntKind)("%s", a.Value))
		}
	}
	out.WriteString(c.Bracket("]"))
	return out.String()
}

func (c *Colors) property(key string, v value.Value, lit string) string {
	return c.Key("%s", key) + " " + c.Sep("=") + " " + c.value(value.KindOf(v))("%s", lit)
}
