package marshaler

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/KimNorgaard/go-tres/value"
)

// ErrUnsupported is returned for Go values that have no literal form.
var ErrUnsupported = errors.New("unsupported type")

var valueType = reflect.TypeFor[value.Value]()

// Marshal converts a Go value into a literal value.
func Marshal(v any) (value.Value, error) {
	m := &marshaler{}
	return m.marshal(reflect.ValueOf(v))
}

// MarshalValue is Marshal for a reflect.Value.
func MarshalValue(v reflect.Value) (value.Value, error) {
	m := &marshaler{}
	return m.marshal(v)
}

type marshaler struct{}

// IsEmptyValue reports whether the value v is empty.
// It is equivalent to the `encoding/json` definition of empty:
// false, 0, a nil pointer, a nil interface value, and any empty array,
// slice, map, or string.
func IsEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

func (m *marshaler) marshal(v reflect.Value) (value.Value, error) {
	if !v.IsValid() {
		return value.Null{}, nil
	}
	// Literal types are their own encoding.
	if v.Type().Implements(valueType) && v.CanInterface() {
		if v.Kind() == reflect.Interface && v.IsNil() {
			return value.Null{}, nil
		}
		return v.Interface().(value.Value), nil
	}

	// Follow pointers and interfaces to find the concrete value.
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return value.Null{}, nil
		}
		v = v.Elem()
		if v.Type().Implements(valueType) {
			return v.Interface().(value.Value), nil
		}
	}

	switch v.Kind() {
	case reflect.String:
		return value.String(v.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		val := v.Uint()
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("cannot marshal %s %d (overflows int64)", v.Type(), val)
		}
		return value.Int(int64(val)), nil
	case reflect.Float32, reflect.Float64:
		return value.Float(v.Float()), nil
	case reflect.Bool:
		return value.Bool(v.Bool()), nil
	case reflect.Array:
		if isFloatKind(v.Type().Elem().Kind()) {
			switch v.Len() {
			case 4:
				return value.Color{v.Index(0).Float(), v.Index(1).Float(), v.Index(2).Float(), v.Index(3).Float()}, nil
			case 2:
				return value.Vector2{v.Index(0).Float(), v.Index(1).Float()}, nil
			}
		}
		return m.marshalItems(v)
	case reflect.Slice:
		if v.IsNil() {
			return value.UntypedArray{}, nil
		}
		return m.marshalItems(v)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, v.Type())
}

func (m *marshaler) marshalItems(v reflect.Value) (value.Value, error) {
	items := make(value.UntypedArray, v.Len())
	for i := 0; i < v.Len(); i++ {
		item, err := m.marshal(v.Index(i))
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
