package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/KimNorgaard/go-tres"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

func newShowCmd(g *globalOptions) *cobra.Command {
	var (
		output string
		query  string
	)
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print a resource as a document, JSON or YAML",
		Example: `  tres show resources/units/kael.tres
  tres show res://resources/units/kael.tres -o yaml
  tres show resources/units/kael.tres --query properties.abilities.0`,
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
			w := cmd.OutOrStdout()
			if query != "" {
				return printQuery(w, r, query)
			}
			return printResource(w, r, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	cmd.Flags().StringVarP(&query, "query", "q", "", "print only the JSON value at this path")
	return cmd
}

func printResource(w io.Writer, r *tres.Resource, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "text":
		return tres.Write(w, r, tres.Colors(!color.NoColor))
	case "json":
		if data, err = marshalJSON(r); err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("json indent: %w", err)
		}
		data = buf.Bytes()
	case "yaml":
		if data, err = yaml.Marshal(exportResource(r)); err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func marshalJSON(r *tres.Resource) ([]byte, error) {
	return json.Marshal(exportResource(r))
}

func printQuery(w io.Writer, r *tres.Resource, query string) error {
	data, err := marshalJSON(r)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	res := gjson.GetBytes(data, query)
	if !res.Exists() {
		return fmt.Errorf("no value at %q", query)
	}
	out := res.String()
	if res.IsObject() || res.IsArray() {
		out = res.Raw
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
