package cli

import (
	"fmt"
	"io"

	"github.com/KimNorgaard/go-tres"
	"github.com/KimNorgaard/go-tres/value"
	"github.com/ddddddO/gtree"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRefsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refs <file>",
		Short: "Show the resources a resource refers to",
		Long: `Refs resolves every ExtResource reference held by the properties of a
resource against the resources of the project and prints them as a tree.
References that match no loaded resource are marked missing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := g.loader()
			if err != nil {
				return err
			}
			r, err := l.ParseFile(g.resolveFile(args[0]))
			if err != nil {
				return err
			}
			p, err := l.LoadProject()
			if err != nil {
				return err
			}
			return printRefs(cmd.OutOrStdout(), l, r, p.All())
		},
	}
}

func printRefs(w io.Writer, l *tres.Loader, r *tres.Resource, candidates []*tres.Resource) error {
	label := r.FilePath
	if p, err := l.ResPath(r.FilePath); err == nil {
		label = p
	}
	root := gtree.NewRoot(heading(label))

	for key, v := range r.Properties.All() {
		if key == tres.ScriptProperty {
			continue
		}
		ids := refIDs(v)
		if len(ids) == 0 {
			continue
		}
		node := root.Add(key)
		for _, id := range ids {
			node.Add(describeRef(r, id, candidates))
		}
	}

	if err := gtree.OutputFromRoot(w, root); err != nil {
		return fmt.Errorf("error rendering references: %w", err)
	}
	return nil
}

// refIDs lists the distinct reference ids held by v in order of appearance.
func refIDs(v value.Value) []string {
	var ids []string
	seen := make(map[string]bool)
	var walk func(value.Value)
	walk = func(v value.Value) {
		switch v := v.(type) {
		case value.ExtResourceRef:
			if !seen[string(v)] {
				seen[string(v)] = true
				ids = append(ids, string(v))
			}
		case value.TypedArray:
			for _, item := range v.Items {
				walk(item)
			}
		case value.UntypedArray:
			for _, item := range v {
				walk(item)
			}
		}
	}
	walk(v)
	return ids
}

func describeRef(r *tres.Resource, id string, candidates []*tres.Resource) string {
	ext, ok := r.ExtResources.Get(id)
	if !ok {
		return id + " " + color.RedString("(not in reference table)")
	}
	target, ok := tres.Resolve(r, id, candidates)
	if !ok {
		return id + " " + ext.Path + " " + color.RedString("(missing)")
	}
	desc := id + " " + ext.Path
	if target.UID != "" {
		desc += " " + color.HiBlackString(target.UID)
	}
	if ext.UID != "" && ext.UID != target.UID {
		desc += " " + color.YellowString("(uid mismatch)")
	}
	return desc
}
