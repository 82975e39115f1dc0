package json

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modulegraph/jsgraph/depgraph"
)

func TestParseObjectDocument(t *testing.T) {
	h := &Handler{source: []byte(`{"name": "pkg", "version": "1.0.0"}`)}
	module := &depgraph.Module{Path: "package.json"}

	require.NoError(t, h.Parse(module))
	require.Len(t, module.Exports, 1)

	symbols := module.Exports[0].Symbols
	require.Equal(t, depgraph.ExportedDefault, symbols[0].Kind)
	require.Equal(t, depgraph.AtomStr("name"), symbols[1].Name)
	require.Equal(t, depgraph.AtomStr("version"), symbols[2].Name)
}

func TestParseArrayDocumentOnlyHasDefault(t *testing.T) {
	h := &Handler{source: []byte(`[1, 2, 3]`)}
	module := &depgraph.Module{Path: "list.json"}

	require.NoError(t, h.Parse(module))
	require.Len(t, module.Exports[0].Symbols, 1)
}
