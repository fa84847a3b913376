package mapper

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Field represents a cached struct field.
type Field struct {
	Name      string
	Index     []int
	Tagged    bool
	OmitEmpty bool
}

// fieldCache caches the fields of a struct type, in declaration order.
var fieldCache sync.Map

// CachedFields uses reflection to parse a struct's tags and returns its
// mappable fields in declaration order. Results are cached per type.
// It skips unexported fields and fields tagged with `tres:"-"`.
//
// The fields of untagged embedded structs, or pointers to structs, are
// promoted as if declared in the outer struct. When several fields share a
// name the least nested one wins, then a tagged one; if that leaves more than
// one, none of them is mapped.
func CachedFields(t reflect.Type) []Field {
	if f, ok := fieldCache.Load(t); ok {
		return f.([]Field)
	}

	fields := dominantFields(typeFields(t, nil, make(map[reflect.Type]bool)))
	fieldCache.Store(t, fields)
	return fields
}

// typeFields lists the fields of t and of the structs it embeds, depth first.
// visiting holds the embedded types on the current path.
func typeFields(t reflect.Type, index []int, visiting map[reflect.Type]bool) []Field {
	visiting[t] = true
	defer delete(visiting, t)

	var fields []Field
	for i := range t.NumField() {
		sf := t.Field(i)
		tag := sf.Tag.Get("tres")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		idx := append(slices.Clone(index), i)

		if sf.Anonymous {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if name == "" && ft.Kind() == reflect.Struct {
				if !visiting[ft] {
					fields = append(fields, typeFields(ft, idx, visiting)...)
				}
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		f := Field{Index: idx}
		if name != "" {
			f.Name = name
			f.Tagged = true
		} else {
			f.Name = sf.Name
		}

		for opts != "" {
			var opt string
			opt, opts, _ = strings.Cut(opts, ",")
			if opt == "omitempty" {
				f.OmitEmpty = true
			}
		}
		fields = append(fields, f)
	}
	return fields
}

// dominantFields keeps, in order, the one field that wins each name.
func dominantFields(fields []Field) []Field {
	byName := make(map[string][]int)
	for i, f := range fields {
		byName[f.Name] = append(byName[f.Name], i)
	}

	keep := make([]bool, len(fields))
	for _, candidates := range byName {
		if i, ok := dominant(fields, candidates); ok {
			keep[i] = true
		}
	}

	var out []Field
	for i, f := range fields {
		if keep[i] {
			out = append(out, f)
		}
	}
	return out
}

func dominant(fields []Field, candidates []int) (int, bool) {
	best, tied := -1, false
	for _, i := range candidates {
		switch {
		case best < 0 || outranks(fields[i], fields[best]):
			best, tied = i, false
		case !outranks(fields[best], fields[i]):
			tied = true
		}
	}
	return best, !tied
}

func outranks(a, b Field) bool {
	if len(a.Index) != len(b.Index) {
		return len(a.Index) < len(b.Index)
	}
	return a.Tagged && !b.Tagged
}

// FieldByIndex returns the field of the struct v at index. Nil embedded
// pointers on the way are allocated when alloc is set. It reports false when
// a nil pointer is in the way and cannot be allocated.
func FieldByIndex(v reflect.Value, index []int, alloc bool) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !alloc || !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}
