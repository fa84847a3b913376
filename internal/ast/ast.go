package ast

import (
	"strings"

	"github.com/KimNorgaard/go-tres/internal/token"
	"github.com/KimNorgaard/go-tres/ordered"
	"github.com/KimNorgaard/go-tres/value"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// String returns the text form of the node as it appears in a document.
	String() string
}

// Attr is a name=value pair of a directive.
type Attr struct {
	Name  string
	Value string
	// Quoted is set for string values, which are written inside quotes.
	Quoted bool
}

func (a Attr) String() string {
	if a.Quoted {
		return a.Name + `="` + a.Value + `"`
	}
	return a.Name + "=" + a.Value
}

// Directive is a bracketed line such as [ext_resource type="Script" id="1"].
type Directive struct {
	Token   token.Token // the keyword token
	Keyword string
	Attrs   []Attr
	Line    int
}

// Attr returns the value of the first attribute called name.
func (d *Directive) Attr(name string) (string, bool) {
	for _, a := range d.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (d *Directive) String() string {
	var out strings.Builder
	out.WriteString("[")
	out.WriteString(d.Keyword)
	for _, a := range d.Attrs {
		out.WriteString(" ")
		out.WriteString(a.String())
	}
	out.WriteString("]")
	return out.String()
}

// Header holds the retained fields of the gd_resource directive.
type Header struct {
	Type        string
	ScriptClass string
	UID         string
}

// ExtResource is one entry of the reference table.
type ExtResource struct {
	Type string
	UID  string
	Path string
}

// Property is a key = value line of the property block.
type Property struct {
	Key   string
	Value value.Value
	Line  int
}

func (p *Property) String() string {
	return p.Key + " = " + value.Format(p.Value, nil)
}

// Document is the root node of a resource document.
type Document struct {
	Header       Header
	ExtResources *ordered.Map[ExtResource]
	Properties   *ordered.Map[value.Value]
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		ExtResources: ordered.New[ExtResource](),
		Properties:   ordered.New[value.Value](),
	}
}
