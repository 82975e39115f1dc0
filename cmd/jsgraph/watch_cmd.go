package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/modulegraph/jsgraph/cmd/jsgraph/formatters"
	"github.com/modulegraph/jsgraph/depgraph"
	"github.com/modulegraph/jsgraph/resolve"
	"github.com/spf13/cobra"
)

// debounceInterval matches the teacher's cmd/watch/watcher.go interval: long
// enough to coalesce a save-triggered burst of FS events into one rebuild.
const debounceInterval = 300 * time.Millisecond

// skippedDirs mirrors the teacher's skip set, trimmed to what a JS/TS
// project actually produces (no .dart_tool/build equivalents here).
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	".next":        true,
}

var watchFormat string

var watchCmd = &cobra.Command{
	Use:   "watch [entry files...]",
	Short: "Rebuild and print the module graph on every relevant file change",
	Long: `Watches the directories containing the given entry points (and every
subdirectory below them, except node_modules, .git, dist, build and .next)
and rebuilds the module graph whenever a source file there changes, printing
the new graph to stdout. Imported files outside those directories are not
watched.

Unlike the teacher's watch command this has no git-state polling or live
HTML/WebSocket server (see DESIGN.md) — it is a plain debounced rebuild loop.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter, err := formatters.NewFormatter(watchFormat)
		if err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		defer watcher.Close()

		roots := make(map[string]bool)
		for _, entry := range args {
			roots[filepath.Dir(entry)] = true
		}
		for root := range roots {
			if err := addWatchDirs(watcher, root); err != nil {
				return fmt.Errorf("watching %s: %w", root, err)
			}
		}

		rebuild := func() {
			catalog := resolve.NewDefaultPackageCatalog()
			g := depgraph.NewModuleGraph(resolve.NewDefaultResolver(catalog), catalog)
			for _, entry := range args {
				if _, err := g.LoadModule(entry); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "rebuild failed: %v\n", err)
					return
				}
			}
			out, err := formatter.Format(g, formatters.RenderOptions{})
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "rebuild failed: %v\n", err)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}

		rebuild()

		var debounce *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !isRelevantChange(event) {
					continue
				}
				if debounce == nil {
					debounce = time.AfterFunc(debounceInterval, rebuild)
				} else {
					debounce.Reset(debounceInterval)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
			}
		}
	},
}

// isRelevantChange filters out events on directories, dotfiles, and
// extensions no registered SourceHandler parses.
func isRelevantChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := strings.TrimPrefix(filepath.Ext(event.Name), ".")
	switch ext {
	case "js", "jsx", "ts", "tsx", "mts", "cts", "mjs", "cjs", "json", "jsonc", "json5", "yaml", "yml":
		return true
	default:
		return false
	}
}

// addWatchDirs walks root and registers every directory not in skippedDirs,
// grounded on the teacher's addWatchDirs/addWatchDirsWithAdder.
func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if isMissingPath(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func isMissingPath(err error) bool {
	return strings.Contains(err.Error(), "no such file or directory")
}

func init() {
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "dot", "output format: dot, json, or mermaid")
}
