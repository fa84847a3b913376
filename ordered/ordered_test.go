package ordered_test

import (
	"testing"

	"github.com/KimNorgaard/go-tres/ordered"
	"github.com/stretchr/testify/require"
)

func TestMap_InsertionOrder(t *testing.T) {
	m := ordered.New[int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)
	require.Equal(t, []string{"b", "a", "c"}, m.Keys())

	t.Run("overwrite keeps position", func(t *testing.T) {
		m.Set("b", 10)
		require.Equal(t, []string{"b", "a", "c"}, m.Keys())
		v, ok := m.Get("b")
		require.True(t, ok)
		require.Equal(t, 10, v)
	})

	t.Run("delete", func(t *testing.T) {
		require.True(t, m.Delete("a"))
		require.False(t, m.Delete("a"))
		require.Equal(t, []string{"b", "c"}, m.Keys())
		require.Equal(t, 2, m.Len())
	})

	t.Run("all", func(t *testing.T) {
		var keys []string
		var sum int
		for k, v := range m.All() {
			keys = append(keys, k)
			sum += v
		}
		require.Equal(t, []string{"b", "c"}, keys)
		require.Equal(t, 13, sum)
	})
}

func TestMap_ZeroValue(t *testing.T) {
	var m ordered.Map[string]
	require.Equal(t, 0, m.Len())
	require.False(t, m.Has("x"))
	m.Set("x", "y")
	require.True(t, m.Has("x"))

	var nilMap *ordered.Map[string]
	require.Equal(t, 0, nilMap.Len())
	require.Nil(t, nilMap.Keys())
}

func TestMap_Clone(t *testing.T) {
	m := ordered.New[string]()
	m.Set("one", "1")
	c := m.Clone()
	c.Set("two", "2")
	require.Equal(t, 1, m.Len())
	require.Equal(t, []string{"one", "two"}, c.Keys())
}
