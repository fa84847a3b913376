// Package value implements the typed literals that appear on the right-hand
// side of property assignments in resource documents.
//
// Every literal kind has its own Go type implementing Value. Consumers are
// expected to switch over the concrete types:
//
//	switch v := v.(type) {
//	case value.Int:
//		...
//	case value.TypedArray:
//		...
//	}
//
// Parse converts literal text into a Value and Format converts it back.
package value

import (
	"strconv"
	"strings"
)

// Value is a parsed literal. The set of implementations is closed.
type Value interface {
	// String returns the literal form of the value using DefaultFloatFormat.
	String() string
	valueNode()
}

// Kind names the literal kind of a Value.
type Kind string

const (
	NullKind           Kind = "null"
	BoolKind           Kind = "bool"
	IntKind            Kind = "int"
	FloatKind          Kind = "float"
	StringKind         Kind = "string"
	ColorKind          Kind = "Color"
	Vector2Kind        Kind = "Vector2"
	ExtResourceRefKind Kind = "ExtResource"
	TypedArrayKind     Kind = "Array"
	UntypedArrayKind   Kind = "array"
	RawStringKind      Kind = "raw"
)

// Null is the null literal.
type Null struct{}

// Bool is a true/false literal.
type Bool bool

// Int is a signed 64-bit integer literal.
type Int int64

// Float is a double precision literal such as 1.5.
type Float float64

// String is a double-quoted literal. Quotes are not part of the value and
// no escape sequences are interpreted.
type String string

// Color is a Color(r, g, b, a) literal.
type Color [4]float64

// Vector2 is a Vector2(x, y) literal.
type Vector2 [2]float64

// ExtResourceRef is an ExtResource("id") literal. The id points into the
// reference table of the document the value was read from.
type ExtResourceRef string

// TypedArray is an Array[ElementType]([...]) literal.
type TypedArray struct {
	ElementType string
	Items       []Value
}

// UntypedArray is a plain [...] literal.
type UntypedArray []Value

// RawString holds literal text that matched no other kind. It is written back
// verbatim.
type RawString string

func (Null) valueNode()           {}
func (Bool) valueNode()           {}
func (Int) valueNode()            {}
func (Float) valueNode()          {}
func (String) valueNode()         {}
func (Color) valueNode()          {}
func (Vector2) valueNode()        {}
func (ExtResourceRef) valueNode() {}
func (TypedArray) valueNode()     {}
func (UntypedArray) valueNode()   {}
func (RawString) valueNode()      {}

func (v Null) String() string           { return Format(v, nil) }
func (v Bool) String() string           { return Format(v, nil) }
func (v Int) String() string            { return Format(v, nil) }
func (v Float) String() string          { return Format(v, nil) }
func (v String) String() string         { return Format(v, nil) }
func (v Color) String() string          { return Format(v, nil) }
func (v Vector2) String() string        { return Format(v, nil) }
func (v ExtResourceRef) String() string { return Format(v, nil) }
func (v TypedArray) String() string     { return Format(v, nil) }
func (v UntypedArray) String() string   { return Format(v, nil) }
func (v RawString) String() string      { return Format(v, nil) }

// KindOf returns the kind of v. A nil Value reports NullKind.
func KindOf(v Value) Kind {
	switch v.(type) {
	case nil, Null:
		return NullKind
	case Bool:
		return BoolKind
	case Int:
		return IntKind
	case Float:
		return FloatKind
	case String:
		return StringKind
	case Color:
		return ColorKind
	case Vector2:
		return Vector2Kind
	case ExtResourceRef:
		return ExtResourceRefKind
	case TypedArray:
		return TypedArrayKind
	case UntypedArray:
		return UntypedArrayKind
	case RawString:
		return RawStringKind
	}
	return RawStringKind
}

// Format returns the literal form of v, rendering floats with ff.
// A nil ff selects DefaultFloatFormat and a nil v is written as null.
func Format(v Value, ff FloatFormatter) string {
	if ff == nil {
		ff = DefaultFloatFormat
	}
	switch v := v.(type) {
	case nil, Null:
		return "null"
	case Bool:
		if v {
			return "true"
		}
		return "false"
	case Int:
		return strconv.FormatInt(int64(v), 10)
	case Float:
		return ff(float64(v))
	case String:
		return `"` + string(v) + `"`
	case Color:
		return "Color(" + joinFloats(v[:], ff) + ")"
	case Vector2:
		return "Vector2(" + joinFloats(v[:], ff) + ")"
	case ExtResourceRef:
		return `ExtResource("` + string(v) + `")`
	case TypedArray:
		return "Array[" + v.ElementType + "]([" + joinItems(v.Items, ff) + "])"
	case UntypedArray:
		return "[" + joinItems(v, ff) + "]"
	case RawString:
		return string(v)
	}
	return ""
}

func joinFloats(fs []float64, ff FloatFormatter) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = ff(f)
	}
	return strings.Join(parts, ", ")
}

func joinItems(items []Value, ff FloatFormatter) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = Format(item, ff)
	}
	return strings.Join(parts, ", ")
}

// Equal reports whether a and b are the same literal. Arrays compare element
// by element, and a nil item list equals an empty one.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case TypedArray:
		y, ok := b.(TypedArray)
		return ok && x.ElementType == y.ElementType && equalItems(x.Items, y.Items)
	case UntypedArray:
		y, ok := b.(UntypedArray)
		return ok && equalItems(x, y)
	}
	switch b.(type) {
	case TypedArray, UntypedArray:
		return false
	}
	return a == b
}

func equalItems(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
