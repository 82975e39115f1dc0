package depgraph

// Span is a pair of byte offsets into a module's source text, used for
// diagnostics and for deduplicating AST nodes already visited by the
// extractor (see Import/Export dedup rules in the javascript package).
type Span struct {
	Start uint32
	End   uint32
}
