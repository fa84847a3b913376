// Package cli implements the tres command line tool.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/KimNorgaard/go-tres"
	"github.com/KimNorgaard/go-tres/internal/logging"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// RootEnv is the environment variable that sets the default game root.
const RootEnv = "TRES_ROOT"

type globalOptions struct {
	root     string
	logLevel string
	logFile  string
	color    string

	closer io.Closer
}

// NewRootCmd returns the tres command tree.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}
	root := &cobra.Command{
		Use:           "tres",
		Short:         "Inspect and edit the .tres resources of a game project",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyColorMode(g.color, cmd.OutOrStdout()); err != nil {
				return err
			}
			_, closer, err := logging.Setup(logging.Config{
				Level:   g.logLevel,
				File:    g.logFile,
				NoColor: color.NoColor,
			})
			g.closer = closer
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if g.closer == nil {
				return nil
			}
			return g.closer.Close()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	defaultRoot := os.Getenv(RootEnv)
	if defaultRoot == "" {
		defaultRoot = "."
	}
	flags := root.PersistentFlags()
	flags.StringVar(&g.root, "root", defaultRoot, "game project root (env "+RootEnv+")")
	flags.StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.StringVar(&g.logFile, "log-file", "", "write logs to this file instead of stderr")
	flags.StringVar(&g.color, "color", "auto", "colorize output: auto, always or never")

	root.AddCommand(
		newLsCmd(g),
		newShowCmd(g),
		newFmtCmd(g),
		newRefsCmd(g),
		newUIDCmd(),
		newNewCmd(g),
		newSetCmd(g),
		newRmCmd(g),
	)
	return root
}

// Start runs the command line and exits with status 1 on failure.
func Start() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func (g *globalOptions) loader() (*tres.Loader, error) {
	return tres.NewLoader(g.root, tres.Logger(slog.Default()))
}

// resolveFile returns arg when it names an existing file and arg joined to
// the game root otherwise. res:// paths are always taken from the root.
func (g *globalOptions) resolveFile(arg string) string {
	if rel, ok := strings.CutPrefix(arg, tres.ResPrefix); ok {
		return filepath.Join(g.root, filepath.FromSlash(rel))
	}
	if _, err := os.Stat(arg); err == nil || filepath.IsAbs(arg) {
		return arg
	}
	return filepath.Join(g.root, arg)
}

func applyColorMode(mode string, w io.Writer) error {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto", "":
		color.NoColor = !isTerminal(w) || os.Getenv("NO_COLOR") != ""
	default:
		return fmt.Errorf("invalid --color %q: want auto, always or never", mode)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
