package cli

import (
	"fmt"
	"strings"

	"github.com/KimNorgaard/go-tres"
	"github.com/KimNorgaard/go-tres/internal/parser"
	"github.com/KimNorgaard/go-tres/ordered"
	"github.com/KimNorgaard/go-tres/value"
	"github.com/spf13/cobra"
)

func newUIDCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "uid <category|prefix>",
		Short: "Generate resource uids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := args[0]
			if c, err := tres.LookupCategory(prefix); err == nil {
				prefix = c.Name
			}
			for range count {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), tres.GenerateUID(prefix)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of uids to generate")
	return cmd
}

func newNewCmd(g *globalOptions) *cobra.Command {
	var (
		chapter string
		sets    []string
	)
	cmd := &cobra.Command{
		Use:   "new <category> <name>",
		Short: "Create a resource with a fresh uid",
		Example: `  tres new units mira --set 'unit_name="Mira"' --set max_hp=90
  tres new stages stage_1_3 --chapter chapter_1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := tres.LookupCategory(args[0])
			if err != nil {
				return err
			}
			props, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			l, err := g.loader()
			if err != nil {
				return err
			}
			r, err := l.Create(c, chapter, args[1], props)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", r.FilePath, r.UID)
			return err
		},
	}
	cmd.Flags().StringVar(&chapter, "chapter", "", "chapter directory, for chaptered categories")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "property assignment key=literal, may be repeated")
	return cmd
}

func newSetCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <file> key=literal...",
		Short: "Set properties of a resource",
		Long: `Set parses each literal as it would appear in a document and stores it,
keeping the position of existing properties. Strings must be quoted.`,
		Example: `  tres set resources/units/kael.tres max_hp=130 'element="ice"'`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			l, err := g.loader()
			if err != nil {
				return err
			}
			r, err := l.ParseFile(g.resolveFile(args[0]))
			if err != nil {
				return err
			}
			for key, v := range props.All() {
				r.Set(key, v)
			}
			return l.Save(r)
		},
	}
}

func newRmCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <file>...",
		Short: "Delete resources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := g.loader()
			if err != nil {
				return err
			}
			for _, arg := range args {
				r, err := l.ParseFile(g.resolveFile(arg))
				if err != nil {
					return err
				}
				if err := l.Remove(r); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// parseAssignments parses key=literal pairs with the rules of a property
// line. A repeated key keeps its first position and its last value.
func parseAssignments(args []string) (*ordered.Map[value.Value], error) {
	props := ordered.New[value.Value]()
	for _, a := range args {
		prop, ok := parser.ParseProperty(strings.TrimSpace(a))
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q: want key=literal", a)
		}
		props.Set(prop.Key, prop.Value)
	}
	return props, nil
}
