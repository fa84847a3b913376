package tres

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KimNorgaard/go-tres/ordered"
	"github.com/KimNorgaard/go-tres/value"
)

// Category describes one kind of game entity and where it is stored.
type Category struct {
	// Name is the singular name, also used as uid prefix.
	Name string
	// Dir is the directory under resources/.
	Dir string
	// Chaptered categories keep their documents in one subdirectory per chapter.
	Chaptered   bool
	ScriptClass string
	ScriptPath  string
}

var (
	Units     = Category{Name: "unit", Dir: "units", ScriptClass: "UnitData", ScriptPath: "res://scripts/data/unit_data.gd"}
	Abilities = Category{Name: "ability", Dir: "abilities", ScriptClass: "AbilityData", ScriptPath: "res://scripts/data/ability_data.gd"}
	Gear      = Category{Name: "gear", Dir: "gear", ScriptClass: "GearData", ScriptPath: "res://scripts/data/gear_data.gd"}
	Stages    = Category{Name: "stage", Dir: "stages", Chaptered: true, ScriptClass: "StageData", ScriptPath: "res://scripts/data/stage_data.gd"}
	Dungeons  = Category{Name: "dungeon", Dir: "dungeons", ScriptClass: "DungeonData", ScriptPath: "res://scripts/data/dungeon_data.gd"}
)

// Categories lists the known categories.
var Categories = []Category{Units, Abilities, Gear, Stages, Dungeons}

// LookupCategory finds a category by directory or singular name.
func LookupCategory(name string) (Category, error) {
	for _, c := range Categories {
		if c.Dir == name || c.Name == name {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("tres: unknown category %q", name)
}

// Scaffold returns a new, unsaved resource of category c with a fresh uid
// and the script reference and property every entity carries.
func Scaffold(c Category) *Resource {
	r := NewResource("Resource", c.ScriptClass, GenerateUID(c.Name))
	r.ExtResources.Set(ScriptRefID, ExtResource{Type: "Script", Path: c.ScriptPath})
	r.Set(ScriptProperty, value.ExtResourceRef(ScriptRefID))
	return r
}

// Create scaffolds a resource of category c, sets props on it in their order,
// gives it the file name <name><extension> in the category directory and
// saves it. For chaptered
// categories chapter selects the subdirectory; it is ignored otherwise.
func (l *Loader) Create(c Category, chapter, name string, props *ordered.Map[value.Value]) (*Resource, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("tres: invalid resource name %q", name)
	}
	dir := l.CategoryDir(c.Dir)
	if c.Chaptered {
		if chapter == "" {
			return nil, fmt.Errorf("tres: category %s needs a chapter", c.Dir)
		}
		dir = filepath.Join(dir, chapter)
	}

	r := Scaffold(c)
	for k, v := range props.All() {
		r.Set(k, v)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("tres: %w", err)
	}
	r.FilePath = filepath.Join(dir, name+l.opts.extension)
	if err := l.Save(r); err != nil {
		return nil, err
	}
	return r, nil
}
