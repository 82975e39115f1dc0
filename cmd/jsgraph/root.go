// Package cmd wires the jsgraph CLI's subcommands, grounded on the
// teacher's cmd/root.go.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	// Blank-imported so each handler package's init() registers itself with
	// depgraph's handler registry; the core package never imports
	// tree-sitter/gjson/yaml.v3 directly (see DESIGN.md, handler.go).
	_ "github.com/modulegraph/jsgraph/depgraph/javascript"
	_ "github.com/modulegraph/jsgraph/depgraph/json"
	_ "github.com/modulegraph/jsgraph/depgraph/yaml"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "jsgraph",
	Short: "Build and inspect JavaScript/TypeScript module dependency graphs",
	Long: `jsgraph parses JavaScript and TypeScript source files and builds a
directed graph of their import/export relationships.

Use cases:
- Render a project's module graph with "jsgraph graph"
- Keep a live view while editing with "jsgraph watch"`,
	Version: version,
}

// Execute runs the root command. Called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
