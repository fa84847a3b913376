package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-tres"
	"github.com/KimNorgaard/go-tres/value"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func newLsCmd(g *globalOptions) *cobra.Command {
	var (
		where   string
		columns []string
	)
	cmd := &cobra.Command{
		Use:   "ls [category]",
		Short: "List the categories of the project or the resources of one category",
		Example: `  tres ls
  tres ls units --columns unit_name,max_hp
  tres ls units --where 'max_hp > 100 && element == "fire"'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := g.loader()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return listCategories(cmd.OutOrStdout(), l)
			}

			c, err := tres.LookupCategory(args[0])
			if err != nil {
				return err
			}
			resources, err := l.Load(c)
			if err != nil {
				return err
			}
			if where != "" {
				if resources, err = filterResources(resources, where); err != nil {
					return err
				}
			}
			return listResources(cmd.OutOrStdout(), l.CategoryDir(c.Dir), resources, columns)
		},
	}
	cmd.Flags().StringVar(&where, "where", "", "only list resources for which this expression is true")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "properties to show as extra columns")
	return cmd
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off, ShowHeader: tw.On}},
		})))
}

var heading = color.New(color.FgHiBlue, color.Bold).SprintFunc()

func listCategories(w io.Writer, l *tres.Loader) error {
	p, err := l.LoadProject()
	if err != nil {
		return err
	}
	table := newTable(w)
	table.Header(heading("CATEGORY"), "LAYOUT", "COUNT")
	data := make([][]string, 0, len(tres.Categories))
	for _, c := range tres.Categories {
		layout := "flat"
		if c.Chaptered {
			layout = "chaptered"
		}
		data = append(data, []string{c.Dir, layout, strconv.Itoa(len(p[c.Dir]))})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("error rendering categories: %w", err)
	}
	return table.Render()
}

func listResources(w io.Writer, dir string, resources []*tres.Resource, columns []string) error {
	if len(resources) == 0 {
		_, err := fmt.Fprintln(w, color.YellowString("No resources found."))
		return err
	}

	table := newTable(w)
	header := []any{heading("NAME"), "UID", "CLASS"}
	for _, c := range columns {
		header = append(header, strings.ToUpper(c))
	}
	table.Header(header...)

	data := make([][]string, len(resources))
	for i, r := range resources {
		row := []string{resourceName(dir, r.FilePath), r.UID, r.ScriptClass}
		for _, c := range columns {
			cell := ""
			if v, ok := r.Get(c); ok {
				cell = value.Format(v, nil)
			}
			row = append(row, cell)
		}
		data[i] = row
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("error rendering resources: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("error rendering resources: %w", err)
	}
	_, err := fmt.Fprintf(w, "%s %d resources\n", color.YellowString("Total:"), len(resources))
	return err
}

// resourceName is the file name of path without extension, relative to the
// category directory so chapters stay visible.
func resourceName(dir, path string) string {
	name := path
	if rel, err := filepath.Rel(dir, path); err == nil {
		name = rel
	}
	return strings.TrimSuffix(filepath.ToSlash(name), filepath.Ext(name))
}

func compileWhere(src string) (*vm.Program, error) {
	program, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("invalid --where expression: %w", err)
	}
	return program, nil
}

func filterResources(resources []*tres.Resource, where string) ([]*tres.Resource, error) {
	program, err := compileWhere(where)
	if err != nil {
		return nil, err
	}
	var kept []*tres.Resource
	for _, r := range resources {
		out, err := expr.Run(program, env(r))
		if err != nil {
			return nil, fmt.Errorf("evaluating --where for %s: %w", r.FilePath, err)
		}
		if ok, _ := out.(bool); ok {
			kept = append(kept, r)
		}
	}
	return kept, nil
}
