package javascript

// Stats tallies per-module parse diagnostics, mirroring the counters the
// original extractor kept alongside the import/export records themselves.
type Stats struct {
	ImportStatementCount int
	ExportStatementCount int
	OtherStatementCount  int
	RequireCount         int
	DynamicImportCount   int
	ExportsDefault       bool
}

// ImportStatements satisfies depgraph.StatCounter.
func (h *Handler) ImportStatements() int { return h.stats.ImportStatementCount }

// ExportStatements satisfies depgraph.StatCounter.
func (h *Handler) ExportStatements() int { return h.stats.ExportStatementCount }

// OtherStatements satisfies depgraph.StatCounter.
func (h *Handler) OtherStatements() int { return h.stats.OtherStatementCount }

// Stats returns the full diagnostic breakdown for this module, including the
// counters depgraph.StatCounter does not expose.
func (h *Handler) Stats() Stats { return h.stats }
