package depgraph

import (
	"path/filepath"
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// StatCounter is implemented by source handlers that track per-module parse
// diagnostics. Only the javascript handler currently does.
type StatCounter interface {
	ImportStatements() int
	ExportStatements() int
	OtherStatements() int
}

// ModuleGraph is the driver: it owns module identity, the directed graph of
// import/export edges, and recursively loads whatever a module's Imports and
// re-export Exports point at. Mirrors original_source/module_graph.rs's
// ModuleGraph/load_module_at_path.
type ModuleGraph struct {
	graph graphlib.Graph[ModuleId, ModuleId]

	modules    map[ModuleId]*Module
	pathsToIDs map[string]ModuleId
	nextId     ModuleId

	resolver Resolver
	catalog  PackageCatalog
}

// NewModuleGraph constructs an empty graph. resolver and catalog may be nil:
// with no resolver, Import/Export source requests are left unresolved and no
// edges are added (e.g. loading a single file in isolation); with no catalog,
// modules get no PackageName and handlers no manifest.
func NewModuleGraph(resolver Resolver, catalog PackageCatalog) *ModuleGraph {
	return &ModuleGraph{
		graph:      newGraph(),
		modules:    make(map[ModuleId]*Module),
		pathsToIDs: make(map[string]ModuleId),
		resolver:   resolver,
		catalog:    catalog,
	}
}

// Module looks up a previously loaded module by id.
func (g *ModuleGraph) Module(id ModuleId) (*Module, bool) {
	m, ok := g.modules[id]
	return m, ok
}

// Modules returns every loaded module, in no particular order.
func (g *ModuleGraph) Modules() []*Module {
	out := make([]*Module, 0, len(g.modules))
	for _, m := range g.modules {
		out = append(out, m)
	}
	return out
}

// LoadModule loads path as an entry point and transitively loads everything
// it imports or re-exports.
func (g *ModuleGraph) LoadModule(path string) (*Module, error) {
	return g.loadModuleAtPath(path, nil, nil)
}

// loadModuleAtPath is the recursive core. query/fragment are the specifier's
// suffix, if any, carried through from the caller that resolved this path.
func (g *ModuleGraph) loadModuleAtPath(path string, query, fragment *string) (*Module, error) {
	canonical := filepath.Clean(path)

	if id, ok := g.pathsToIDs[canonical]; ok {
		return g.modules[id], nil
	}

	// Register the id and vertex before recursing into this module's own
	// imports: a module that (transitively) imports itself must see its own
	// id already claimed, or loading would never terminate.
	g.nextId++
	id := g.nextId
	g.pathsToIDs[canonical] = id

	module := &Module{
		Id:       id,
		Path:     canonical,
		Query:    query,
		Fragment: fragment,
		Source:   DummyModule{},
	}
	g.modules[id] = module

	if err := g.graph.AddVertex(id); err != nil {
		return nil, err
	}

	if err := g.loadManifestName(module); err != nil {
		return nil, err
	}

	handler := newHandlerForExtension(canonical)
	var manifest *PackageManifest
	if g.catalog != nil {
		if m, _, ok, err := g.catalog.ManifestFor(filepath.Dir(canonical)); err != nil {
			return nil, &PackageJSONError{Path: filepath.Dir(canonical), Cause: err}
		} else if ok {
			manifest = m
		}
	}

	if err := handler.Load(module, manifest); err != nil {
		return nil, &IOError{Path: canonical, Cause: err}
	}
	if err := handler.Parse(module); err != nil {
		return nil, &ParseError{Path: canonical, Cause: err}
	}
	module.Source = handler

	for i := range module.Imports {
		imp := &module.Imports[i]
		if imp.SourceRequest == "" {
			continue
		}
		childId, err := g.resolveAndLoad(string(imp.SourceRequest), canonical)
		if err != nil {
			return nil, err
		}
		if childId == UnresolvedModuleId {
			continue
		}
		imp.ModuleId = childId
		if err := addLabeledEdge(g.graph, id, childId, EdgeImport); err != nil {
			return nil, err
		}
	}

	for i := range module.Exports {
		exp := &module.Exports[i]
		if exp.Source == nil {
			continue
		}
		childId, err := g.resolveAndLoad(string(*exp.Source), canonical)
		if err != nil {
			return nil, err
		}
		if childId == UnresolvedModuleId {
			continue
		}
		exp.ModuleId = &childId
		if err := addLabeledEdge(g.graph, id, childId, EdgeExport); err != nil {
			return nil, err
		}
	}

	return module, nil
}

// resolveAndLoad resolves specifier from importerPath and recursively loads
// the target, returning UnresolvedModuleId (rather than an error) when no
// resolver is configured at all — callers that only care about a single
// module's own Imports/Exports can use ModuleGraph without ever wiring one.
func (g *ModuleGraph) resolveAndLoad(specifier, importerPath string) (ModuleId, error) {
	if g.resolver == nil {
		return UnresolvedModuleId, nil
	}
	result, err := g.resolver.Resolve(specifier, importerPath)
	if err != nil {
		return UnresolvedModuleId, &ResolveFailedError{Specifier: specifier, Importer: importerPath, Cause: err}
	}
	child, err := g.loadModuleAtPath(result.Path, result.Query, result.Fragment)
	if err != nil {
		return UnresolvedModuleId, err
	}
	return child.Id, nil
}

func (g *ModuleGraph) loadManifestName(module *Module) error {
	if g.catalog == nil {
		return nil
	}
	manifest, _, ok, err := g.catalog.ManifestFor(filepath.Dir(module.Path))
	if err != nil {
		return &PackageJSONError{Path: filepath.Dir(module.Path), Cause: err}
	}
	if ok && manifest.Name != "" {
		name := manifest.Name
		module.PackageName = &name
	}
	return nil
}

// Edge is one directed edge in the graph, reporting which of the two labels
// a module pair was connected by (an import can coexist with a re-export
// between the same ordered pair, see graph.go's labelSet).
type Edge struct {
	Source   ModuleId
	Target   ModuleId
	IsImport bool
	IsExport bool
}

// Edges returns every edge in the graph, labeled via the stored Import/
// Export markers rather than re-derived from each Module's Imports/Exports,
// in deterministic (source, then target) order. Renderers that need to tell
// an import edge from a re-export edge should use this instead of walking
// Module.Imports themselves.
func (g *ModuleGraph) Edges() ([]Edge, error) {
	adjacency, err := g.graph.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	sources := make([]ModuleId, 0, len(adjacency))
	for source := range adjacency {
		sources = append(sources, source)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })

	var edges []Edge
	for _, source := range sources {
		targets := make([]ModuleId, 0, len(adjacency[source]))
		for target := range adjacency[source] {
			targets = append(targets, target)
		}
		sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

		for _, target := range targets {
			edges = append(edges, Edge{
				Source:   source,
				Target:   target,
				IsImport: edgeHasLabel(g.graph, source, target, EdgeImport),
				IsExport: edgeHasLabel(g.graph, source, target, EdgeExport),
			})
		}
	}
	return edges, nil
}

// Stats aggregates StatCounter diagnostics across every loaded module whose
// handler reports them (currently javascript only).
type Stats struct {
	ImportStatements int
	ExportStatements int
	OtherStatements  int
}

// Stats sums per-module diagnostics across the graph.
func (g *ModuleGraph) Stats() Stats {
	var total Stats
	for _, m := range g.modules {
		counter, ok := m.Source.(StatCounter)
		if !ok {
			continue
		}
		total.ImportStatements += counter.ImportStatements()
		total.ExportStatements += counter.ExportStatements()
		total.OtherStatements += counter.OtherStatements()
	}
	return total
}

// PathNodes returns the subset of module ids that lie on any directed path
// between any pair of the given targets, traversed bidirectionally (A->B or
// B->A). Generalizes the teacher's FindPathNodes from a file-path adjacency
// map to the labeled module graph.
func (g *ModuleGraph) PathNodes(targets []ModuleId) ([]ModuleId, error) {
	adjacency, err := g.graph.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	forward := make(map[ModuleId][]ModuleId, len(adjacency))
	reverse := make(map[ModuleId][]ModuleId, len(adjacency))
	for node, edges := range adjacency {
		for target := range edges {
			forward[node] = append(forward[node], target)
			reverse[target] = append(reverse[target], node)
		}
	}

	var validTargets []ModuleId
	for _, t := range targets {
		if _, ok := g.modules[t]; ok {
			validTargets = append(validTargets, t)
		}
	}

	keep := make(map[ModuleId]bool, len(validTargets))
	for _, t := range validTargets {
		keep[t] = true
	}

	if len(validTargets) >= 2 {
		for i := 0; i < len(validTargets); i++ {
			for j := i + 1; j < len(validTargets); j++ {
				for node := range pathNodesBetween(forward, reverse, validTargets[i], validTargets[j]) {
					keep[node] = true
				}
				for node := range pathNodesBetween(forward, reverse, validTargets[j], validTargets[i]) {
					keep[node] = true
				}
			}
		}
	}

	out := make([]ModuleId, 0, len(keep))
	for id := range keep {
		out = append(out, id)
	}
	return out, nil
}

func pathNodesBetween(forward, reverse map[ModuleId][]ModuleId, source, target ModuleId) map[ModuleId]bool {
	reachableFromSource := bfsReachable(forward, source)
	canReachTarget := bfsReachable(reverse, target)

	result := make(map[ModuleId]bool)
	for node := range reachableFromSource {
		if canReachTarget[node] {
			result[node] = true
		}
	}
	return result
}

func bfsReachable(adjacency map[ModuleId][]ModuleId, source ModuleId) map[ModuleId]bool {
	reachable := map[ModuleId]bool{source: true}
	queue := []ModuleId{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, neighbor := range adjacency[current] {
			if !reachable[neighbor] {
				reachable[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}
	return reachable
}
