// Package cli implements the mermaid-filter command-line interface.
//
// Invoked with a single output format argument, as pandoc does for JSON
// filters, it reads a document from stdin, replaces diagram code blocks
// with rendered images and writes the document to stdout:
//
//	pandoc doc.md --filter mermaid-filter -o doc.pdf
//
// The cache subcommands inspect and clear the diagram directory.
//
// # Logging
//
// Logs go to stderr; stdout carries only the document. --verbose (-v)
// enables debug logging.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mermaid-filter/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "mermaid-filter"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Stdin and Stdout carry the pandoc document.
	Stdin  io.Reader
	Stdout io.Writer

	configPath string
	cacheDir   string
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName + " [format]",
		Short: "Render mermaid diagrams in pandoc documents",
		Long: `mermaid-filter is a pandoc JSON filter. It replaces mermaid code blocks
with images rendered by mmdc and caches them by content in generated_diagrams/.
Blocks that cannot be rendered are kept and preceded by a warning.`,
		Example: `  pandoc doc.md --filter mermaid-filter -o doc.html
  pandoc -t json doc.md | mermaid-filter html | pandoc -f json -o doc.html`,
		Args:         cobra.MaximumNArgs(1),
		Version:      buildinfo.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := ""
			if len(args) > 0 {
				format = args[0]
			}
			return c.runFilter(cmd.Context(), format)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./mermaid-filter.toml if present)")
	root.PersistentFlags().StringVar(&c.cacheDir, "cache-dir", "", "directory for rendered diagrams (overrides config)")

	root.AddCommand(c.cacheCommand())

	return root
}
