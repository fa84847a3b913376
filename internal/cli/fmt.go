package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KimNorgaard/go-tres"
	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

type fmtOptions struct {
	list  bool
	diff  bool
	write bool
}

func newFmtCmd(g *globalOptions) *cobra.Command {
	opts := &fmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Rewrite resources in canonical form",
		Long: `Fmt parses each file and writes it back in canonical form: load_steps
recomputed, references in table order and every property on one line.
Without arguments it formats every resource of the project.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := g.loader()
			if err != nil {
				return err
			}
			var paths []string
			if len(args) == 0 {
				p, err := l.LoadProject()
				if err != nil {
					return err
				}
				for _, r := range p.All() {
					paths = append(paths, r.FilePath)
				}
			}
			for _, arg := range args {
				paths = append(paths, g.resolveFile(arg))
			}
			for _, path := range paths {
				if err := formatFile(cmd.OutOrStdout(), l, path, opts); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list files whose formatting differs")
	cmd.Flags().BoolVarP(&opts.diff, "diff", "d", false, "display diffs instead of rewriting files")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the result back to the file")
	return cmd
}

func formatFile(w io.Writer, l *tres.Loader, path string, opts *fmtOptions) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tres: %w", err)
	}
	r, _ := tres.Parse(src)
	r.FilePath = path

	var buf bytes.Buffer
	if err := tres.Write(&buf, r); err != nil {
		return err
	}
	out := buf.Bytes()
	changed := !bytes.Equal(src, out)

	if !opts.list && !opts.diff && !opts.write {
		_, err := w.Write(out)
		return err
	}
	if !changed {
		return nil
	}
	if opts.list {
		if _, err := fmt.Fprintln(w, path); err != nil {
			return err
		}
	}
	if opts.diff {
		if _, err := fmt.Fprintf(w, "diff %s\n%s", path, lineDiff(string(src), string(out))); err != nil {
			return err
		}
	}
	if opts.write {
		return l.Save(r)
	}
	return nil
}

// lineDiff renders the line-level changes from a to b with -/+ markers.
func lineDiff(a, b string) string {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		var prefix string
		paint := fmt.Sprint
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, paint = "-", color.New(color.FgRed).Sprint
		case diffpatch.DiffInsert:
			prefix, paint = "+", color.New(color.FgGreen).Sprint
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(paint(prefix + strings.TrimSuffix(line, "\n")))
			out.WriteString("\n")
		}
	}
	return out.String()
}
