package depgraph

// ResolveResult is what a Resolver produces for one specifier: the absolute,
// canonical filesystem path a module lives at, plus any query/fragment the
// original specifier carried (e.g. `?raw` or `#fragment`), which do not
// affect module identity but are preserved on the Module for diagnostics.
type ResolveResult struct {
	Path     string
	Query    *string
	Fragment *string
}

// Resolver maps an import/export specifier, as written in source, to a
// concrete file on disk. ImporterPath is the absolute path of the module
// that contains the specifier, used to resolve relative specifiers and to
// climb for the nearest package.json when resolving bare specifiers.
type Resolver interface {
	Resolve(specifier string, importerPath string) (ResolveResult, error)
}
