/*
Package tres reads and writes the text resource documents (.tres) a Godot
game stores its data entities in: units, abilities, gear, stages and
dungeons. The API mirrors the shape of the standard `encoding/json` package
where it can.

The package offers three workflows depending on the use case:

1. Document Round Trips

Parse turns a document into a Resource: the header fields, the reference
table (ext_resource entries keyed by id) and the ordered properties of the
[resource] section, each held as a value.Value. Parsing is lenient. Lines it
cannot understand are skipped and reported as Diagnostics rather than
failing the parse. Marshal and Write produce the canonical document form,
with load_steps recomputed from the reference table.

	r, diags := tres.Parse(data)
	if len(diags) > 0 {
		log.Printf("lossy parse: %v", diags)
	}
	r.Set("max_hp", value.Int(120))
	out, err := tres.Marshal(r)

2. Struct Mapping

Decode and Encode move properties in and out of Go structs using `tres`
field tags, much like `json` tags:

	type Unit struct {
		Name  string     `tres:"unit_name"`
		MaxHP int        `tres:"max_hp"`
		Tint  [4]float64 `tres:"portrait_color"`
		Tags  []string   `tres:"tags,omitempty"`
	}

	var u Unit
	if err := tres.Decode(r, &u); err != nil {
		// handle error
	}
	u.MaxHP += 10
	if err := tres.Encode(u, r); err != nil {
		// handle error
	}

3. Project Loading

A Loader reads whole categories from the resources/ directory of a game
project, resolves references between entities, scaffolds new entities
with fresh uids and saves them back atomically:

	l, err := tres.NewLoader("path/to/game")
	if err != nil {
		// handle error
	}
	units, err := l.Units()
	abilities, err := l.Abilities()
	first, ok := tres.Resolve(units[0], "2_ability", abilities)
*/
package tres
