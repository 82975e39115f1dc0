// Package formatters renders a depgraph.ModuleGraph to one of the output
// formats the graph command supports, grounded on the teacher's
// cmd/graph/formatters package (same Formatter contract and format set,
// adapted from file-level dependency graphs to module-level ones).
package formatters

import (
	"fmt"

	"github.com/modulegraph/jsgraph/depgraph"
)

// Formatter renders a module graph as a string in one output format.
type Formatter interface {
	Format(g *depgraph.ModuleGraph, opts RenderOptions) (string, error)
}

// RenderOptions carries the graph command's rendering restrictions, mirroring
// the teacher's RenderOptions parameter on Formatter.Format.
type RenderOptions struct {
	// Only, when non-empty, restricts rendering to exactly these module ids
	// and the edges between them — the --between flag's filtered view.
	Only []depgraph.ModuleId
}

// filterModules returns the subset of modules whose id is in only, in the
// same order, or modules unchanged if only is empty.
func filterModules(modules []*depgraph.Module, only []depgraph.ModuleId) []*depgraph.Module {
	if len(only) == 0 {
		return modules
	}
	allowed := moduleIdSet(only)
	filtered := make([]*depgraph.Module, 0, len(only))
	for _, m := range modules {
		if allowed[m.Id] {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func moduleIdSet(ids []depgraph.ModuleId) map[depgraph.ModuleId]bool {
	set := make(map[depgraph.ModuleId]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func idsOf(modules []*depgraph.Module) []depgraph.ModuleId {
	ids := make([]depgraph.ModuleId, len(modules))
	for i, m := range modules {
		ids[i] = m.Id
	}
	return ids
}

// NewFormatter looks up a Formatter by name: dot, json, or mermaid.
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case "dot", "":
		return &DotFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "mermaid":
		return &MermaidFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (want dot, json, or mermaid)", name)
	}
}
