package cli

import (
	"bytes"

	"github.com/KimNorgaard/go-tres"
	"github.com/KimNorgaard/go-tres/value"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// object is a JSON or YAML mapping that keeps its key order.
type object []field

type field struct {
	Key   string
	Value any
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o object) MarshalYAML() (any, error) {
	ms := make(yaml.MapSlice, len(o))
	for i, f := range o {
		ms[i] = yaml.MapItem{Key: f.Key, Value: f.Value}
	}
	return ms, nil
}

// exportResource converts r to plain data for JSON and YAML output.
func exportResource(r *tres.Resource) object {
	refs := object{}
	for id, ext := range r.ExtResources.All() {
		entry := object{{"type", ext.Type}}
		if ext.UID != "" {
			entry = append(entry, field{"uid", ext.UID})
		}
		entry = append(entry, field{"path", ext.Path})
		refs = append(refs, field{id, entry})
	}
	props := object{}
	for key, v := range r.Properties.All() {
		props = append(props, field{key, exportValue(v)})
	}
	return object{
		{"type", r.Type},
		{"script_class", r.ScriptClass},
		{"uid", r.UID},
		{"ext_resources", refs},
		{"properties", props},
	}
}

// exportValue converts a literal to plain data. References become their id
// and Color and Vector2 become lists of components.
func exportValue(v value.Value) any {
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
	case value.ExtResourceRef:
		return string(v)
	case value.Color:
		return v[:]
	case value.Vector2:
		return v[:]
	case value.TypedArray:
		return exportItems(v.Items)
	case value.UntypedArray:
		return exportItems(v)
	}
	return v.String()
}

func exportItems(items []value.Value) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = exportValue(item)
	}
	return out
}

// env is the variable set a --where expression is evaluated against.
func env(r *tres.Resource) map[string]any {
	e := make(map[string]any, r.Properties.Len()+3)
	for key, v := range r.Properties.All() {
		e[key] = exportValue(v)
	}
	e["uid"] = r.UID
	e["script_class"] = r.ScriptClass
	e["file"] = r.FilePath
	return e
}
