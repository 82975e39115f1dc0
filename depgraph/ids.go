package depgraph

// ModuleId identifies a Module for the lifetime of a ModuleGraph. Zero is
// reserved for the unresolved/default sentinel; real ids start at one and
// are handed out in strictly increasing order by ModuleGraph.
type ModuleId uint32

// UnresolvedModuleId is the sentinel value an Import/Export carries before
// the module it points at has been loaded.
const UnresolvedModuleId ModuleId = 0
