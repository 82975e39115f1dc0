package depgraph

import (
	"errors"

	graphlib "github.com/dominikbraun/graph"
)

// EdgeLabel distinguishes why a directed edge exists between two modules.
// A single ordered pair of modules can carry both labels at once (a module
// can both import from and be re-exported through another), which
// dominikbraun/graph does not model natively — see labelSet below.
type EdgeLabel int

const (
	EdgeImport EdgeLabel = iota
	EdgeExport
)

// labelSet is the payload stashed in an edge's Properties.Data. graphlib
// allows exactly one edge per ordered vertex pair, so a second AddEdge call
// between the same two modules must merge into the existing edge rather than
// being rejected outright.
type labelSet map[EdgeLabel]struct{}

func moduleHash(id ModuleId) ModuleId { return id }

// newGraph constructs the directed graph backing a ModuleGraph, keyed by
// ModuleId. Cycles are expected and legal (a CommonJS require cycle is
// ordinary, see spec §8's cycle fixture), so PreventCycles is deliberately
// not used.
func newGraph() graphlib.Graph[ModuleId, ModuleId] {
	return graphlib.New(moduleHash, graphlib.Directed())
}

// addLabeledEdge adds label to the edge from source to target, creating the
// edge if absent and merging into its label set otherwise: graphlib allows
// only one edge per ordered vertex pair, but a module pair can be connected
// by both an import and a re-export at once.
func addLabeledEdge(g graphlib.Graph[ModuleId, ModuleId], source, target ModuleId, label EdgeLabel) error {
	err := g.AddEdge(source, target, graphlib.EdgeData(labelSet{label: {}}))
	if err == nil {
		return nil
	}
	if !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
		return err
	}

	edge, err := g.Edge(source, target)
	if err != nil {
		return err
	}

	set, _ := edge.Properties.Data.(labelSet)
	if set == nil {
		set = labelSet{}
	}
	set[label] = struct{}{}

	return g.UpdateEdge(source, target, graphlib.EdgeData(set))
}

// edgeHasLabel reports whether an edge between source and target carries
// label.
func edgeHasLabel(g graphlib.Graph[ModuleId, ModuleId], source, target ModuleId, label EdgeLabel) bool {
	edge, err := g.Edge(source, target)
	if err != nil {
		return false
	}
	set, ok := edge.Properties.Data.(labelSet)
	if !ok {
		return false
	}
	_, ok = set[label]
	return ok
}
