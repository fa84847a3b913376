package tres_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KimNorgaard/go-tres"
	"github.com/KimNorgaard/go-tres/internal/testutil"
	"github.com/KimNorgaard/go-tres/value"
	"github.com/stretchr/testify/require"
)

func TestParse_UnitScenario(t *testing.T) {
	r, diags := tres.Parse(testutil.MustReadTestData("unit_aria.tres"))
	require.Empty(t, diags)

	require.Equal(t, "Resource", r.Type)
	require.Equal(t, "UnitData", r.ScriptClass)
	require.Equal(t, "uid://abc123", r.UID)
	require.Equal(t, 1, r.ExtResources.Len())

	script, ok := r.ExtResources.Get(tres.ScriptRefID)
	require.True(t, ok)
	require.Equal(t, tres.ExtResource{Type: "Script", Path: "res://scripts/data/unit_data.gd"}, script)

	require.Equal(t, []string{"script", "unit_name", "max_hp", "abilities"}, r.Properties.Keys())
	name, _ := r.Get("unit_name")
	require.Equal(t, value.String("Aria"), name)
	hp, _ := r.Get("max_hp")
	require.Equal(t, value.Int(100), hp)
	abilities, _ := r.Get("abilities")
	require.Equal(t, value.TypedArray{
		ElementType: "Resource",
		Items:       []value.Value{value.ExtResourceRef("2_ability")},
	}, abilities)
}

func TestParse_Empty(t *testing.T) {
	r, diags := tres.Parse(nil)
	require.Empty(t, diags)
	require.Empty(t, r.Type)
	require.Equal(t, 0, r.ExtResources.Len())
	require.Equal(t, 0, r.Properties.Len())
	require.Equal(t, 1, r.LoadSteps())
}

func TestParse_Diagnostics(t *testing.T) {
	_, diags := tres.Parse(testutil.MustReadTestData("messy.tres"))
	require.Len(t, diags, 6)
	require.ErrorContains(t, diags, "tres: line 1")
	require.ErrorContains(t, diags, "(and 5 more)")
}

func TestMarshal_RoundTrip(t *testing.T) {
	for _, name := range []string{"unit_aria.tres", "unit_kael.tres", "ability_fire_slash.tres", "messy.tres"} {
		t.Run(name, func(t *testing.T) {
			first, _ := tres.Parse(testutil.MustReadTestData(name))
			out, err := tres.Marshal(first)
			require.NoError(t, err)

			second, diags := tres.Parse(out)
			require.Empty(t, diags, "written documents parse cleanly")
			requireSameResource(t, first, second)

			again, err := tres.Marshal(second)
			require.NoError(t, err)
			require.Equal(t, string(out), string(again), "writing is idempotent")
		})
	}
}

func TestMarshal_ScriptSynthesized(t *testing.T) {
	r := tres.NewResource("Resource", "GearData", "uid://gear_1")
	r.ExtResources.Set(tres.ScriptRefID, tres.ExtResource{Type: "Script", Path: "res://scripts/data/gear_data.gd"})
	r.Set("gear_name", value.String("Sword"))

	out, err := tres.Marshal(r)
	require.NoError(t, err)

	lines := strings.Split(string(out), "\n")
	i := indexOf(lines, "[resource]")
	require.GreaterOrEqual(t, i, 0)
	require.Equal(t, `script = ExtResource("1_script")`, lines[i+1])
	require.Equal(t, `gear_name = "Sword"`, lines[i+2])
	require.True(t, strings.HasPrefix(lines[0], `[gd_resource type="Resource" script_class="GearData" load_steps=2 format=3`))
}

func TestMarshal_LoadStepsRecomputed(t *testing.T) {
	r, _ := tres.Parse(testutil.MustReadTestData("unit_kael.tres"))
	r.ExtResources.Delete("3_ability")

	out, err := tres.Marshal(r)
	require.NoError(t, err)
	require.Contains(t, string(out), "load_steps=3 format=3")
}

func TestMarshal_FloatFormat(t *testing.T) {
	r := tres.NewResource("Resource", "", "uid://x")
	r.Set("speed", value.Float(1.5))
	r.Set("tint", value.Color{1, 0, 0, 1})

	out, err := tres.Marshal(r, tres.FloatFormat(value.FixedFloatFormat(2)))
	require.NoError(t, err)
	require.Contains(t, string(out), "speed = 1.50\n")
	require.Contains(t, string(out), "tint = Color(1.00, 0.00, 0.00, 1.00)\n")

	_, err = tres.Marshal(r, tres.FloatFormat(nil))
	require.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aria.tres")
	src := testutil.MustReadTestData("unit_aria.tres")
	r, _ := tres.Parse(src)

	require.NoError(t, tres.WriteFile(r, path))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(src), string(got))
	require.Empty(t, r.FilePath, "WriteFile does not adopt the path")

	back, err := tres.ParseFile(path)
	require.NoError(t, err)
	require.Equal(t, path, back.FilePath)
	requireSameResource(t, r, back)
}

func TestWriteFile_FailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aria.tres")
	original := []byte("previous content\n")
	require.NoError(t, os.WriteFile(path, original, 0o600))

	r := tres.NewResource("Resource", "UnitData", "uid://unit_1")
	err := tres.WriteFile(r, path, tres.Extension("bad"))
	require.Error(t, err)

	// A target whose directory does not exist cannot be written.
	err = tres.WriteFile(r, filepath.Join(dir, "missing", "aria.tres"))
	require.Error(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, original, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files are left behind")
}

func TestWriteFile_KeepsPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aria.tres")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	require.NoError(t, tres.WriteFile(tres.NewResource("Resource", "", "uid://a"), path))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestWrite_Colors(t *testing.T) {
	r, _ := tres.Parse(testutil.MustReadTestData("unit_aria.tres"))
	var plain, colored bytes.Buffer
	require.NoError(t, tres.Write(&plain, r))
	require.NoError(t, tres.Write(&colored, r, tres.Colors(false)))
	require.Equal(t, plain.String(), colored.String())
}

func TestWriteFile_RejectsUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unit.tres")
	r := tres.Scaffold(tres.Units)
	r.Set("empty_raw", value.RawString(""))

	err := tres.WriteFile(r, path)
	require.ErrorIs(t, err, tres.ErrNoLiteral)
	require.NoFileExists(t, path)

	r.Properties.Delete("empty_raw")
	r.Set("bio", value.String("line one\nline two"))
	_, err = tres.Marshal(r)
	require.ErrorIs(t, err, tres.ErrNoLiteral)

	r.Properties.Delete("bio")
	r.Set("max hp", value.Int(10))
	_, err = tres.Marshal(r)
	require.ErrorIs(t, err, tres.ErrInvalidKey)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := tres.ParseFile(filepath.Join(t.TempDir(), "nope.tres"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFile_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary.tres")
	require.NoError(t, os.WriteFile(path, []byte("\xff\xfe\x00garbage\x80\x81"), 0o644))

	r, err := tres.ParseFile(path)
	require.ErrorIs(t, err, tres.ErrInvalidUTF8)
	require.ErrorContains(t, err, path)
	require.Nil(t, r)
}

func TestGenerateUID(t *testing.T) {
	seen := make(map[string]bool)
	for range 10000 {
		uid := tres.GenerateUID("unit")
		require.Regexp(t, `^uid://unit_[0-9a-f]{12}$`, uid)
		require.False(t, seen[uid], "duplicate uid %s", uid)
		seen[uid] = true
	}
}

func requireSameResource(t *testing.T, want, got *tres.Resource) {
	t.Helper()
	require.Equal(t, want.Type, got.Type)
	require.Equal(t, want.ScriptClass, got.ScriptClass)
	require.Equal(t, want.UID, got.UID)
	require.Equal(t, want.ExtResources.Keys(), got.ExtResources.Keys())
	for id, ext := range want.ExtResources.All() {
		other, _ := got.ExtResources.Get(id)
		require.Equal(t, ext, other)
	}

	wantKeys := want.Properties.Keys()
	if !want.Properties.Has(tres.ScriptProperty) {
		wantKeys = append([]string{tres.ScriptProperty}, wantKeys...)
	}
	require.Equal(t, wantKeys, got.Properties.Keys())
	for key, v := range want.Properties.All() {
		other, _ := got.Get(key)
		require.True(t, value.Equal(v, other), "property %s: %v != %v", key, v, other)
	}
}

func indexOf(lines []string, s string) int {
	for i, l := range lines {
		if l == s {
			return i
		}
	}
	return -1
}
