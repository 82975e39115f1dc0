package depgraph

import "strings"

// Module aggregates a file's identity, its extracted Import/Export records,
// and the source-handler instance that produced them. Identity is the
// canonical Path alone; Query and Fragment do not affect deduplication.
//
// A Module is created when the graph first observes its canonical path, is
// mutated exactly once (during ModuleGraph.loadModuleAtPath's single
// load-and-parse step), and is read-only thereafter.
type Module struct {
	Id ModuleId

	Path string

	Query    *string
	Fragment *string

	PackageName *string

	Imports []Import
	Exports []Export

	Source SourceHandler
}

// IsExternal reports whether the module's path runs through a node_modules
// directory, i.e. it is a dependency rather than first-party source.
func (m *Module) IsExternal() bool {
	for _, part := range strings.Split(filepathToSlash(m.Path), "/") {
		if part == "node_modules" {
			return true
		}
	}
	return false
}

func filepathToSlash(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}
