package depgraph

// ImportedKind classifies a single bound symbol on an Import.
type ImportedKind int

const (
	ImportedDefault ImportedKind = iota
	ImportedDefaultType
	ImportedNamespace
	ImportedNamespaceType
	ImportedValue
	ImportedValueType
)

// IsDefault reports whether k binds the module's default export.
func (k ImportedKind) IsDefault() bool {
	return k == ImportedDefault || k == ImportedDefaultType
}

// IsNamespace reports whether k binds the whole module namespace.
func (k ImportedKind) IsNamespace() bool {
	return k == ImportedNamespace || k == ImportedNamespaceType
}

// IsType reports whether k is a type-only binding.
func (k ImportedKind) IsType() bool {
	return k == ImportedDefaultType || k == ImportedNamespaceType || k == ImportedValueType
}

// ImportedSymbol is one local binding introduced by an Import.
type ImportedSymbol struct {
	Kind ImportedKind

	// SourceName is set only when the local binding was renamed from the
	// exporter's name, e.g. `import { a as b }`. Absent for default imports.
	SourceName *AtomStr

	// SymbolId is an opaque binding id from a scope-resolution pass. This
	// system has no such pass (see DESIGN.md), so it is always nil.
	SymbolId *uint32

	Name AtomStr
}

// ImportKind distinguishes the three ways a module can be pulled in.
type ImportKind int

const (
	AsyncStatic  ImportKind = iota // ESM `import`
	AsyncDynamic                  // `import()` expression
	SyncStatic                    // CommonJS `require` and TS `import =`
)

// Import records one import statement, require() call, or import()
// expression, prior to and after resolution (ModuleId is the zero value
// until the driver resolves it).
type Import struct {
	Kind          ImportKind
	ModuleId      ModuleId
	SourceRequest AtomStr
	Span          Span
	Symbols       []ImportedSymbol
	TypeOnly      bool
}

// IsSideEffect reports whether this import was brought in purely for its
// evaluation effects, with no bound symbols.
func (i Import) IsSideEffect() bool {
	return i.SourceRequest != "" && len(i.Symbols) == 0 && i.Kind == AsyncStatic
}
