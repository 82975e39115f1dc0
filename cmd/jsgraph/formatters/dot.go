package formatters

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modulegraph/jsgraph/depgraph"
)

// DotFormatter renders a module graph as Graphviz DOT, the teacher's
// default output format.
type DotFormatter struct{}

func (f *DotFormatter) Format(g *depgraph.ModuleGraph, opts RenderOptions) (string, error) {
	modules := filterModules(sortedModules(g), opts.Only)
	allowed := moduleIdSet(idsOf(modules))

	var sb strings.Builder
	sb.WriteString("digraph modules {\n")
	sb.WriteString("  rankdir=LR;\n")

	for _, m := range modules {
		label := escapeDotLabel(filepath.Base(m.Path))
		style := ""
		if m.IsExternal() {
			style = ` style=dashed`
		}
		sb.WriteString(fmt.Sprintf("  %q [label=%q%s];\n", m.Path, label, style))
	}

	edges, err := g.Edges()
	if err != nil {
		return "", err
	}
	for _, e := range edges {
		if !allowed[e.Source] || !allowed[e.Target] {
			continue
		}
		source, ok := g.Module(e.Source)
		if !ok {
			continue
		}
		target, ok := g.Module(e.Target)
		if !ok {
			continue
		}
		// Export-only edges (a re-export with no matching import of the same
		// target) render dashed, matching the node-level IsExternal dashing.
		style := ""
		if e.IsExport && !e.IsImport {
			style = ` [style=dashed]`
		}
		sb.WriteString(fmt.Sprintf("  %q -> %q%s;\n", source.Path, target.Path, style))
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

func sortedModules(g *depgraph.ModuleGraph) []*depgraph.Module {
	modules := g.Modules()
	sort.Slice(modules, func(i, j int) bool { return modules[i].Path < modules[j].Path })
	return modules
}

func escapeDotLabel(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
