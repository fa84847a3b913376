package mapper

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type base struct {
	Shared int
}

type sample struct {
	base
	Name    string `tres:"unit_name"`
	HP      int    `tres:"max_hp,omitempty"`
	Speed   int
	Ignored string `tres:"-"`
	hidden  bool
}

func TestCachedFields(t *testing.T) {
	fields := CachedFields(reflect.TypeOf(sample{}))
	require.Equal(t, []Field{
		{Name: "Shared", Index: []int{0, 0}},
		{Name: "unit_name", Index: []int{1}, Tagged: true},
		{Name: "max_hp", Index: []int{2}, Tagged: true, OmitEmpty: true},
		{Name: "Speed", Index: []int{3}},
	}, fields)

	again := CachedFields(reflect.TypeOf(sample{}))
	require.Equal(t, fields, again)
}

type Stats struct {
	MaxHP  int `tres:"max_hp"`
	Attack int `tres:"attack"`
	Range  int
}

type Extra struct {
	Range int
	Notes string `tres:"notes"`
}

type Tier int

type node struct {
	*node
	Value int `tres:"value"`
}

func TestCachedFields_Embedded(t *testing.T) {
	tests := []struct {
		name     string
		typ      reflect.Type
		expected []Field
	}{
		{
			name: "outer field hides a promoted one",
			typ: reflect.TypeOf(struct {
				Stats
				Attack int `tres:"attack"`
			}{}),
			expected: []Field{
				{Name: "max_hp", Index: []int{0, 0}, Tagged: true},
				{Name: "Range", Index: []int{0, 2}},
				{Name: "attack", Index: []int{1}, Tagged: true},
			},
		},
		{
			name: "conflict at the same depth drops both",
			typ: reflect.TypeOf(struct {
				Stats
				Extra
			}{}),
			expected: []Field{
				{Name: "max_hp", Index: []int{0, 0}, Tagged: true},
				{Name: "attack", Index: []int{0, 1}, Tagged: true},
				{Name: "notes", Index: []int{1, 1}, Tagged: true},
			},
		},
		{
			name: "embedded pointer",
			typ: reflect.TypeOf(struct {
				*Extra
				Name string `tres:"unit_name"`
			}{}),
			expected: []Field{
				{Name: "Range", Index: []int{0, 0}},
				{Name: "notes", Index: []int{0, 1}, Tagged: true},
				{Name: "unit_name", Index: []int{1}, Tagged: true},
			},
		},
		{
			name: "tagged embedded struct is a plain field",
			typ: reflect.TypeOf(struct {
				Stats `tres:"stats"`
			}{}),
			expected: []Field{
				{Name: "stats", Index: []int{0}, Tagged: true},
			},
		},
		{
			name: "embedded non-struct",
			typ: reflect.TypeOf(struct {
				Tier
			}{}),
			expected: []Field{
				{Name: "Tier", Index: []int{0}},
			},
		},
		{
			name:     "recursive embedding",
			typ:      reflect.TypeOf(node{}),
			expected: []Field{{Name: "value", Index: []int{1}, Tagged: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, CachedFields(tt.typ))
		})
	}
}

func TestFieldByIndex(t *testing.T) {
	var v struct {
		*Extra
		Name string
	}
	rv := reflect.ValueOf(&v).Elem()

	_, ok := FieldByIndex(rv, []int{0, 1}, false)
	require.False(t, ok)
	require.Nil(t, v.Extra)

	f, ok := FieldByIndex(rv, []int{0, 1}, true)
	require.True(t, ok)
	f.SetString("hello")
	require.Equal(t, "hello", v.Notes)

	f, ok = FieldByIndex(rv, []int{1}, false)
	require.True(t, ok)
	require.Equal(t, reflect.String, f.Kind())
}
