package tres

import (
	"fmt"
	"reflect"

	"github.com/KimNorgaard/go-tres/internal/mapper"
	"github.com/KimNorgaard/go-tres/internal/marshaler"
	"github.com/KimNorgaard/go-tres/value"
)

// Encode stores the fields of the struct v, or of the struct v points to, as
// properties of r.
//
// Existing properties keep their position and new ones are appended in field
// order. Fields of embedded structs are encoded as if declared in v, except
// those behind a nil embedded pointer. Fields tagged omitempty are skipped
// when empty. A slice stored over
// a typed array keeps the array's element type. Fields whose type has no
// literal form, such as maps and structs, yield an *EncodeError.
func Encode(v any, r *Resource) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return fmt.Errorf("tres: Encode(nil %T)", v)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("tres: Encode of non-struct %T", v)
	}

	for _, f := range mapper.CachedFields(rv.Type()) {
		fv, ok := mapper.FieldByIndex(rv, f.Index, false)
		if !ok {
			continue
		}
		if f.OmitEmpty && marshaler.IsEmptyValue(fv) {
			continue
		}
		val, err := marshaler.MarshalValue(fv)
		if err != nil {
			return &EncodeError{Key: f.Name, Type: fv.Type(), Err: err}
		}
		if items, ok := val.(value.UntypedArray); ok {
			if prev, ok := r.Get(f.Name); ok {
				if typed, ok := prev.(value.TypedArray); ok {
					val = value.TypedArray{ElementType: typed.ElementType, Items: items}
				}
			}
		}
		r.Set(f.Name, val)
	}
	return nil
}
