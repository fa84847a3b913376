package tres_test

import (
	"errors"
	"testing"

	"github.com/KimNorgaard/go-tres"
	"github.com/KimNorgaard/go-tres/internal/testutil"
	"github.com/KimNorgaard/go-tres/value"
	"github.com/stretchr/testify/require"
)

type unitData struct {
	Script     value.ExtResourceRef `tres:"script"`
	Name       string               `tres:"unit_name"`
	ID         string               `tres:"unit_id"`
	Stars      uint8                `tres:"star_rating"`
	MaxHP      int                  `tres:"max_hp"`
	Attack     int32                `tres:"attack"`
	CritChance float64              `tres:"crit_chance"`
	AbilityIDs []string             `tres:"abilities"`
	Portrait   [4]float64           `tres:"portrait_color"`
	Offset     value.Vector2        `tres:"sprite_offset"`
	Tags       []string             `tres:"tags"`
	Raw        value.Value          `tres:"element"`
	Speed      *int                 `tres:"speed"`
	Defense    any                  `tres:"defense"`
	Ignored    string               `tres:"-"`

	Abilities   []value.ExtResourceRef
	notExported int
}

func TestDecode_Unit(t *testing.T) {
	r, _ := tres.Parse(testutil.MustReadTestData("unit_kael.tres"))

	u := unitData{Ignored: "keep"}
	require.NoError(t, tres.Decode(r, &u))

	require.Equal(t, value.ExtResourceRef("1_script"), u.Script)
	require.Equal(t, "Kael", u.Name)
	require.Equal(t, "kael_001", u.ID)
	require.Equal(t, uint8(4), u.Stars)
	require.Equal(t, 120, u.MaxHP)
	require.Equal(t, int32(24), u.Attack)
	require.InDelta(t, 0.15, u.CritChance, 1e-9)
	require.Nil(t, u.Abilities, "untagged fields match the Go field name")
	require.Equal(t, []string{"2_ability", "3_ability"}, u.AbilityIDs)
	require.Equal(t, [4]float64{1, 0.4, 0.2, 1}, u.Portrait)
	require.Equal(t, value.Vector2{0, -8}, u.Offset)
	require.Equal(t, []string{"melee", "starter"}, u.Tags)
	require.Equal(t, value.String("fire"), u.Raw)
	require.NotNil(t, u.Speed)
	require.Equal(t, 9, *u.Speed)
	require.Equal(t, int64(12), u.Defense)
	require.Equal(t, "keep", u.Ignored)
}

func TestDecode_Conversions(t *testing.T) {
	r := tres.NewResource("Resource", "", "uid://x")
	r.Set("whole", value.Int(3))
	r.Set("nothing", value.Null{})
	r.Set("raw", value.RawString(`SubResource("A")`))
	r.Set("list", value.UntypedArray{value.Float(1.5), value.Int(2)})
	r.Set("pair", value.Vector2{1, 2})

	var dst struct {
		Whole   float32   `tres:"whole"`
		Nothing *string   `tres:"nothing"`
		Raw     string    `tres:"raw"`
		List    []float64 `tres:"list"`
		Pair    []float32 `tres:"pair"`
		Missing int       `tres:"missing"`
	}
	s := "set"
	dst.Nothing = &s
	dst.Missing = 7

	require.NoError(t, tres.Decode(r, &dst))
	require.Equal(t, float32(3), dst.Whole)
	require.Nil(t, dst.Nothing, "null clears the field")
	require.Equal(t, `SubResource("A")`, dst.Raw)
	require.Equal(t, []float64{1.5, 2}, dst.List)
	require.Equal(t, []float32{1, 2}, dst.Pair)
	require.Equal(t, 7, dst.Missing, "fields without a property are left alone")
}

func TestDecode_Errors(t *testing.T) {
	r := tres.NewResource("Resource", "", "uid://x")
	r.Set("name", value.String("Aria"))
	r.Set("big", value.Int(300))
	r.Set("neg", value.Int(-1))
	r.Set("tint", value.Color{1, 1, 1, 1})
	r.Set("items", value.UntypedArray{value.Int(1), value.String("two")})

	testCases := []struct {
		name string
		dst  any
		key  string
		kind value.Kind
	}{
		{"String into int", &struct {
			Name int `tres:"name"`
		}{}, "name", value.StringKind},
		{"Overflow", &struct {
			Big int8 `tres:"big"`
		}{}, "big", value.IntKind},
		{"Negative into uint", &struct {
			Neg uint `tres:"neg"`
		}{}, "neg", value.IntKind},
		{"Color into two floats", &struct {
			Tint [2]float64 `tres:"tint"`
		}{}, "tint", value.ColorKind},
		{"Mixed items", &struct {
			Items []int `tres:"items"`
		}{}, "items", value.UntypedArrayKind},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tres.Decode(r, tc.dst)
			require.Error(t, err)

			var de *tres.DecodeError
			require.True(t, errors.As(err, &de), "expected *DecodeError, got %T", err)
			require.Equal(t, tc.key, de.Key)
			require.Equal(t, tc.kind, de.Kind)
			require.Contains(t, err.Error(), "tres: cannot decode")
		})
	}
}

func TestDecode_InvalidTarget(t *testing.T) {
	r := tres.NewResource("Resource", "", "uid://x")
	var u unitData
	require.Error(t, tres.Decode(r, u))
	require.Error(t, tres.Decode(r, (*unitData)(nil)))
	n := 1
	require.Error(t, tres.Decode(r, &n))
}

type CombatStats struct {
	MaxHP  int   `tres:"max_hp"`
	Attack int32 `tres:"attack"`
}

type combatStats struct {
	MaxHP int `tres:"max_hp"`
}

func TestDecode_Embedded(t *testing.T) {
	r, _ := tres.Parse(testutil.MustReadTestData("unit_kael.tres"))

	var byValue struct {
		CombatStats
		Name string `tres:"unit_name"`
	}
	require.NoError(t, tres.Decode(r, &byValue))
	require.Equal(t, "Kael", byValue.Name)
	require.Equal(t, 120, byValue.MaxHP)
	require.Equal(t, int32(24), byValue.Attack)

	var byPointer struct {
		*CombatStats
		Attack int `tres:"attack"`
	}
	require.NoError(t, tres.Decode(r, &byPointer))
	require.NotNil(t, byPointer.CombatStats, "embedded pointers are allocated")
	require.Equal(t, 120, byPointer.MaxHP)
	require.Equal(t, 24, byPointer.Attack)
	require.Zero(t, byPointer.CombatStats.Attack, "the outer field wins")

	var untouched struct {
		*CombatStats
	}
	require.NoError(t, tres.Decode(tres.NewResource("Resource", "", "uid://x"), &untouched))
	require.Nil(t, untouched.CombatStats, "nothing to decode, nothing allocated")

	var unexported struct {
		*combatStats
	}
	err := tres.Decode(r, &unexported)
	var de *tres.DecodeError
	require.True(t, errors.As(err, &de), "expected *DecodeError, got %T", err)
	require.Equal(t, "max_hp", de.Key)
}
