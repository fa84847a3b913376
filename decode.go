package tres

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/KimNorgaard/go-tres/internal/mapper"
	"github.com/KimNorgaard/go-tres/value"
)

// Decode stores the properties of r in the struct pointed to by v.
//
// Fields are matched by their `tres:"name"` tag or, when untagged, by field
// name. Properties without a field and fields without a property are left
// alone. Ints and floats convert to Go numeric kinds, strings, raw strings
// and reference ids to string, Color to [4]float64 and Vector2 to
// [2]float64, and arrays to slices. A field of type value.Value, or of the
// property's own value type, receives the property unchanged. Fields of
// embedded structs are matched as if declared in v, and nil embedded
// pointers are allocated when one of their fields has a property. A property
// that does not fit its field yields a *DecodeError.
func Decode(r *Resource, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("tres: Decode(non-pointer %T or nil)", v)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("tres: Decode into non-struct %s", rv.Type())
	}

	for _, f := range mapper.CachedFields(rv.Type()) {
		prop, ok := r.Get(f.Name)
		if !ok {
			continue
		}
		fv, ok := mapper.FieldByIndex(rv, f.Index, true)
		if !ok {
			return &DecodeError{Key: f.Name, Kind: value.KindOf(prop), Type: rv.Type().FieldByIndex(f.Index).Type, Err: errUnsettable}
		}
		if err := decodeValue(prop, fv); err != nil {
			return &DecodeError{Key: f.Name, Kind: value.KindOf(prop), Type: fv.Type(), Err: err}
		}
	}
	return nil
}

func decodeValue(v value.Value, rv reflect.Value) error { //nolint:gocyclo
	if rv.Kind() == reflect.Interface && rv.NumMethod() == 0 {
		if nv := nativeValue(v); nv != nil {
			rv.Set(reflect.ValueOf(nv))
		} else {
			rv.Set(reflect.Zero(rv.Type()))
		}
		return nil
	}
	if v != nil {
		if vt := reflect.TypeOf(v); vt.AssignableTo(rv.Type()) {
			rv.Set(reflect.ValueOf(v))
			return nil
		}
	}
	if _, isNull := v.(value.Null); isNull || v == nil {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}

	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return decodeValue(v, rv.Elem())
	}

	switch v := v.(type) {
	case value.Bool:
		if rv.Kind() == reflect.Bool {
			rv.SetBool(bool(v))
			return nil
		}
	case value.Int:
		return decodeInt(int64(v), rv)
	case value.Float:
		if isFloatKind(rv.Kind()) {
			return setFloat(float64(v), rv)
		}
	case value.String:
		return decodeString(string(v), rv)
	case value.RawString:
		return decodeString(string(v), rv)
	case value.ExtResourceRef:
		return decodeString(string(v), rv)
	case value.Color:
		return decodeFloats(v[:], rv)
	case value.Vector2:
		return decodeFloats(v[:], rv)
	case value.TypedArray:
		return decodeItems(v.Items, rv)
	case value.UntypedArray:
		return decodeItems(v, rv)
	}
	return errMismatch
}

var (
	errMismatch   = errors.New("type mismatch")
	errUnsettable = errors.New("nil pointer to unexported embedded struct")
)

func decodeInt(n int64, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(n) {
			return fmt.Errorf("integer value %d overflows Go value of type %s", n, rv.Type())
		}
		rv.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n < 0 || rv.OverflowUint(uint64(n)) {
			return fmt.Errorf("integer value %d overflows Go value of type %s", n, rv.Type())
		}
		rv.SetUint(uint64(n))
		return nil
	case reflect.Float32, reflect.Float64:
		return setFloat(float64(n), rv)
	}
	return errMismatch
}

func setFloat(f float64, rv reflect.Value) error {
	if rv.OverflowFloat(f) {
		return fmt.Errorf("float value %g overflows Go value of type %s", f, rv.Type())
	}
	rv.SetFloat(f)
	return nil
}

func decodeString(s string, rv reflect.Value) error {
	if rv.Kind() != reflect.String {
		return errMismatch
	}
	rv.SetString(s)
	return nil
}

func decodeFloats(fs []float64, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Array:
		if rv.Len() != len(fs) {
			return fmt.Errorf("cannot decode %d components into Go array of length %d", len(fs), rv.Len())
		}
	case reflect.Slice:
		rv.Set(reflect.MakeSlice(rv.Type(), len(fs), len(fs)))
	default:
		return errMismatch
	}
	if !isFloatKind(rv.Type().Elem().Kind()) {
		return errMismatch
	}
	for i, f := range fs {
		if err := setFloat(f, rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func decodeItems(items []value.Value, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Slice:
		s := reflect.MakeSlice(rv.Type(), len(items), len(items))
		for i, item := range items {
			if err := decodeValue(item, s.Index(i)); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		rv.Set(s)
		return nil
	case reflect.Array:
		if rv.Len() != len(items) {
			return fmt.Errorf("cannot decode array of length %d into Go array of length %d", len(items), rv.Len())
		}
		for i, item := range items {
			if err := decodeValue(item, rv.Index(i)); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	}
	return errMismatch
}

// nativeValue converts scalars to plain Go values for `any` fields. Composite
// literals keep their value type.
func nativeValue(v value.Value) any {
	switch v := v.(type) {
	case nil, value.Null:
		return nil
	case value.Bool:
		return bool(v)
	case value.Int:
		return int64(v)
	case value.Float:
		return float64(v)
	case value.String:
		return string(v)
	case value.RawString:
		return string(v)
	}
	return v
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
