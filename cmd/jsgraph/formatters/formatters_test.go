package formatters_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/modulegraph/jsgraph/cmd/jsgraph/formatters"
	"github.com/modulegraph/jsgraph/depgraph"
	_ "github.com/modulegraph/jsgraph/depgraph/javascript"
	"github.com/modulegraph/jsgraph/resolve"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func singleModuleGraph(t *testing.T) *depgraph.ModuleGraph {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.js"), []byte("console.log('hi');\n"), 0o644))

	// Chdir so the module's canonical path is the stable relative "index.js"
	// rather than an unpredictable temp directory, keeping golden output
	// reproducible.
	t.Chdir(dir)

	g := depgraph.NewModuleGraph(nil, nil)
	_, err := g.LoadModule("index.js")
	require.NoError(t, err)
	return g
}

func TestDotFormatterGolden(t *testing.T) {
	g := singleModuleGraph(t)
	f := &formatters.DotFormatter{}
	out, err := f.Format(g, formatters.RenderOptions{})
	require.NoError(t, err)

	gd := goldie.New(t)
	gd.Assert(t, t.Name(), []byte(out))
}

func TestJSONFormatterGolden(t *testing.T) {
	g := singleModuleGraph(t)
	f := &formatters.JSONFormatter{}
	out, err := f.Format(g, formatters.RenderOptions{})
	require.NoError(t, err)

	gd := goldie.New(t)
	gd.Assert(t, t.Name(), []byte(out))
}

func chainGraph(t *testing.T) (*depgraph.ModuleGraph, map[string]depgraph.ModuleId) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.js"), []byte(`require("./b");`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.js"), []byte(`require("./c");`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.js"), []byte(``), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.js"), []byte(``), 0o644))
	t.Chdir(dir)

	catalog := resolve.NewDefaultPackageCatalog()
	g := depgraph.NewModuleGraph(resolve.NewDefaultResolver(catalog), catalog)

	ids := make(map[string]depgraph.ModuleId)
	for _, name := range []string{"a.js", "b.js", "c.js", "unrelated.js"} {
		m, err := g.LoadModule(name)
		require.NoError(t, err)
		ids[name] = m.Id
	}
	return g, ids
}

func TestDotFormatterOnlyRestrictsNodesAndEdges(t *testing.T) {
	g, ids := chainGraph(t)
	f := &formatters.DotFormatter{}

	out, err := f.Format(g, formatters.RenderOptions{Only: []depgraph.ModuleId{ids["a.js"], ids["b.js"], ids["c.js"]}})
	require.NoError(t, err)

	require.Contains(t, out, "a.js")
	require.Contains(t, out, "b.js")
	require.Contains(t, out, "c.js")
	require.NotContains(t, out, "unrelated.js")
}

func TestMermaidFormatterOnlyRestrictsNodesAndEdges(t *testing.T) {
	g, ids := chainGraph(t)
	f := &formatters.MermaidFormatter{}

	out, err := f.Format(g, formatters.RenderOptions{Only: []depgraph.ModuleId{ids["a.js"], ids["c.js"]}})
	require.NoError(t, err)

	// a.js and c.js are both kept, but the only edge between them runs
	// through b.js, which is excluded, so no arrow should appear.
	require.NotContains(t, out, "-->")
	require.NotContains(t, out, "-.->")
}

func TestMermaidFormatterGolden(t *testing.T) {
	g := singleModuleGraph(t)
	f := &formatters.MermaidFormatter{}
	out, err := f.Format(g, formatters.RenderOptions{})
	require.NoError(t, err)

	gd := goldie.New(t)
	gd.Assert(t, t.Name(), []byte(out))
}
