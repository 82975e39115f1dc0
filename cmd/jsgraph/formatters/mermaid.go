package formatters

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modulegraph/jsgraph/depgraph"
)

// MermaidFormatter renders a module graph as a Mermaid.js flowchart,
// simplified from the teacher's stats-annotated version since this graph
// has no git-derived file stats to show (see DESIGN.md).
type MermaidFormatter struct{}

func (f *MermaidFormatter) Format(g *depgraph.ModuleGraph, opts RenderOptions) (string, error) {
	modules := filterModules(sortedModules(g), opts.Only)
	allowed := moduleIdSet(idsOf(modules))

	nodeIDs := make(map[depgraph.ModuleId]string, len(modules))
	for i, m := range modules {
		nodeIDs[m.Id] = fmt.Sprintf("n%d", i)
	}

	var sb strings.Builder
	sb.WriteString("flowchart LR\n")

	for _, m := range modules {
		label := strings.ReplaceAll(filepath.Base(m.Path), `"`, "#quot;")
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", nodeIDs[m.Id], label))
	}

	edges, err := g.Edges()
	if err != nil {
		return "", err
	}
	for _, e := range edges {
		if !allowed[e.Source] || !allowed[e.Target] {
			continue
		}
		// A dotted arrow marks a re-export edge with no matching import of
		// the same target, same convention as the dot formatter's dashing.
		arrow := "-->"
		if e.IsExport && !e.IsImport {
			arrow = "-.->"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", nodeIDs[e.Source], arrow, nodeIDs[e.Target]))
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}
