package tres

import (
	"github.com/KimNorgaard/go-tres/internal/ast"
	"github.com/KimNorgaard/go-tres/internal/formatter"
	"github.com/KimNorgaard/go-tres/ordered"
	"github.com/KimNorgaard/go-tres/value"
)

const (
	// ScriptRefID is the reserved reference id under which every entity refers
	// to the script that defines its type.
	ScriptRefID = formatter.ScriptRefID

	// ScriptProperty is the property holding ExtResource(ScriptRefID). The
	// writer adds it when a resource does not set it.
	ScriptProperty = formatter.ScriptProperty

	// FormatVersion is the format attribute written in every header.
	FormatVersion = formatter.FormatVersion
)

// ExtResource is an entry of a resource's reference table.
type ExtResource struct {
	Type string
	// UID is empty when the reference carries no uid attribute.
	UID  string
	Path string
}

// Resource is a parsed or newly built resource document.
//
// ExtResources and Properties keep insertion order, which is the order they
// are written in.
type Resource struct {
	Type         string
	ScriptClass  string
	UID          string
	ExtResources *ordered.Map[ExtResource]
	Properties   *ordered.Map[value.Value]

	// FilePath is the backing file. It is empty until the resource is saved.
	FilePath string
}

// NewResource returns an empty resource of the given type and script class.
func NewResource(resourceType, scriptClass, uid string) *Resource {
	return &Resource{
		Type:         resourceType,
		ScriptClass:  scriptClass,
		UID:          uid,
		ExtResources: ordered.New[ExtResource](),
		Properties:   ordered.New[value.Value](),
	}
}

// Get returns the property called key.
func (r *Resource) Get(key string) (value.Value, bool) {
	return r.Properties.Get(key)
}

// Set stores a property, keeping the position of an existing key. Writing
// fails with ErrInvalidKey or ErrNoLiteral when the property cannot be read
// back, for instance a key with spaces, a string with a line break or an
// empty value.RawString.
func (r *Resource) Set(key string, v value.Value) {
	if r.Properties == nil {
		r.Properties = ordered.New[value.Value]()
	}
	r.Properties.Set(key, v)
}

// LoadSteps is the load_steps value written for r.
func (r *Resource) LoadSteps() int {
	return 1 + r.ExtResources.Len()
}

func fromDocument(doc *ast.Document) *Resource {
	r := NewResource(doc.Header.Type, doc.Header.ScriptClass, doc.Header.UID)
	for id, ext := range doc.ExtResources.All() {
		r.ExtResources.Set(id, ExtResource(ext))
	}
	r.Properties = doc.Properties
	return r
}

func (r *Resource) document() *ast.Document {
	doc := ast.NewDocument()
	doc.Header = ast.Header{Type: r.Type, ScriptClass: r.ScriptClass, UID: r.UID}
	for id, ext := range r.ExtResources.All() {
		doc.ExtResources.Set(id, ast.ExtResource(ext))
	}
	if r.Properties != nil {
		doc.Properties = r.Properties
	}
	return doc
}
